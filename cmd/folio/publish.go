package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/feed"
	"github.com/aretw0/folio/pkg/render"
)

func (a *app) feedOptions() feed.Options {
	return feed.Options{
		Site:        a.site(),
		Description: a.cfg.Description,
		Limit:       a.cfg.FeedLimit,
	}
}

func newSitemapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Write the XML sitemap of the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			posts := svc.NewCycle().SortedPosts(cmd.Context())
			return feed.WriteSitemap(cmd.OutOrStdout(), posts, a.feedOptions())
		},
	}
}

func newFeedCmd(a *app) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Write the RSS feed of the latest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			opts := a.feedOptions()
			if full {
				opts.Renderer = render.NewRenderer(a.logger)
			}
			posts := svc.NewCycle().SortedPosts(cmd.Context())
			return feed.WriteRSS(cmd.OutOrStdout(), posts, opts)
		},
	}

	cmd.Flags().Int("feed-limit", 0, "Maximum number of items (default 20)")
	cmd.Flags().BoolVar(&full, "full", false, "Embed the rendered body of each post")
	return cmd
}
