package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/render"
)

// app carries the state shared by every command of one invocation.
type app struct {
	verbose bool
	cfgFile string
	format  string

	logger *slog.Logger
	cfg    config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Read, preview and publish a flat-file blog",
		Long: `folio loads the posts of a content directory, each a Markdown file with a
frontmatter header, and lists, renders or serves them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is folio.yaml at the site root)")
	pf.StringVarP(&a.format, "format", "f", "text", "Output format: text, json or yaml")
	pf.String("content-dir", "", "Directory holding the posts")
	pf.StringSlice("ext", nil, "Recognized content file extensions")
	pf.String("include", "", "Only read files matching this glob")
	pf.String("base-url", "", "Absolute origin of the site")
	pf.String("posts-path", "", "Route prefix of post pages")
	pf.String("site-title", "", "Title of the site")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSlugsCmd(a),
		newNeighborsCmd(a),
		newSitemapCmd(a),
		newFeedCmd(a),
		newNewCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	switch a.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if root, err := platform.FindRoot(dir); err == nil {
		dir = root
	}

	a.cfg, err = config.Load(config.Options{
		File:   a.cfgFile,
		Dir:    dir,
		Flags:  cmd.Flags(),
		Logger: a.logger,
	})
	return err
}

func (a *app) service() (*core.Service, error) {
	svc, err := folio.New(a.cfg.ContentDir,
		folio.WithExtensions(a.cfg.Extensions...),
		folio.WithInclude(a.cfg.Include),
		folio.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize folio: %w", err)
	}
	return svc, nil
}

func (a *app) site() render.Site {
	return render.Site{
		BaseURL:   a.cfg.BaseURL,
		PostsPath: a.cfg.PostsPath,
		Title:     a.cfg.SiteTitle,
		Author:    a.cfg.Author,
	}
}

// print writes v in the selected structured format, or calls text for the
// plain format.
func (a *app) print(w io.Writer, v any, text func(io.Writer) error) error {
	switch a.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
