package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		meta core.Metadata
		body string
	)

	cmd := &cobra.Command{
		Use:   "new <slug>",
		Short: "Scaffold a new post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			if meta.PublishedAt == "" {
				meta.PublishedAt = time.Now().UTC().Format(time.DateOnly)
			}
			if meta.Title == "" {
				meta.Title = slug
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.CreatePost(cmd.Context(), slug, meta, body); err != nil {
				if errors.Is(err, core.ErrPostExists) {
					return fmt.Errorf("post %q already exists", slug)
				}
				return fmt.Errorf("failed to create post: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post '%s' created in %s.\n", slug, a.cfg.ContentDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&meta.Title, "title", "", "Post title (defaults to the slug)")
	f.StringVar(&meta.Summary, "summary", "", "One-line summary (required)")
	f.StringVar(&meta.PublishedAt, "date", "", "Publication date (defaults to today, UTC)")
	f.StringVar(&meta.Image, "image", "", "Preview image path or URL")
	f.StringVar(&body, "body", "", "Initial body")
	_ = cmd.MarkFlagRequired("summary")
	return cmd
}
