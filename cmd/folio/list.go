package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
)

type listedPost struct {
	Slug     string        `json:"slug" yaml:"slug"`
	Metadata core.Metadata `json:"metadata" yaml:"metadata"`
	Date     string        `json:"date" yaml:"date"`
}

func newListCmd(a *app) *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			formatter := dates.NewFormatter(a.logger)
			posts := svc.NewCycle().SortedPosts(cmd.Context())
			listed := make([]listedPost, 0, len(posts))
			for _, p := range posts {
				listed = append(listed, listedPost{
					Slug:     p.Slug,
					Metadata: p.Metadata,
					Date:     formatter.Format(p.Metadata.PublishedAt, relative),
				})
			}

			return a.print(cmd.OutOrStdout(), listed, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, p := range listed {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Slug, p.Date, p.Metadata.Title)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&relative, "relative", false, "Append the relative age to dates")
	return cmd
}

func newSlugsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print the slug of every post, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			slugs := svc.NewCycle().Slugs(cmd.Context())
			return a.print(cmd.OutOrStdout(), slugs, func(w io.Writer) error {
				for _, s := range slugs {
					if _, err := fmt.Fprintln(w, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
