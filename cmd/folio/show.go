package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
	"github.com/aretw0/folio/pkg/render"
)

type shownPost struct {
	core.Post `yaml:",inline"`
	Date      string `json:"date" yaml:"date"`
	HTML      string `json:"html,omitempty" yaml:"html,omitempty"`
}

type neighborLink struct {
	Slug  string `json:"slug" yaml:"slug"`
	Title string `json:"title" yaml:"title"`
}

type neighborPair struct {
	Previous *neighborLink `json:"previous" yaml:"previous"`
	Next     *neighborLink `json:"next" yaml:"next"`
}

func newShowCmd(a *app) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			post, ok := svc.NewCycle().PostBySlug(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, args[0])
			}

			shown := shownPost{
				Post: post,
				Date: dates.NewFormatter(a.logger).Format(post.Metadata.PublishedAt, true),
			}
			if asHTML {
				html, err := render.NewRenderer(a.logger).HTML(post)
				if err != nil {
					return err
				}
				shown.HTML = string(html)
			}

			return a.print(cmd.OutOrStdout(), shown, func(w io.Writer) error {
				body := post.Content
				if asHTML {
					body = shown.HTML
				}
				_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n%s\n", post.Metadata.Title, shown.Date, post.Metadata.Summary, body)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the body to HTML")
	return cmd
}

func link(p *core.Post) *neighborLink {
	if p == nil {
		return nil
	}
	return &neighborLink{Slug: p.Slug, Title: p.Metadata.Title}
}

func newNeighborsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <slug>",
		Short: "Print the chronologically previous and next posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			cycle := svc.NewCycle()
			if _, ok := cycle.PostBySlug(cmd.Context(), args[0]); !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, args[0])
			}
			prev, next := cycle.Neighbors(cmd.Context(), args[0])
			pair := neighborPair{Previous: link(prev), Next: link(next)}

			return a.print(cmd.OutOrStdout(), pair, func(w io.Writer) error {
				for _, n := range []struct {
					label string
					link  *neighborLink
				}{{"previous", pair.Previous}, {"next", pair.Next}} {
					value := "-"
					if n.link != nil {
						value = fmt.Sprintf("%s (%s)", n.link.Slug, n.link.Title)
					}
					if _, err := fmt.Fprintf(w, "%s: %s\n", n.label, value); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
