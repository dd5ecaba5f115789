package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
)

//go:embed page.html.tmpl
var pageTemplate string

// Renderer converts post bodies to HTML and lays them out as pages.
type Renderer struct {
	md    goldmark.Markdown
	page  *template.Template
	dates *dates.Formatter
}

// NewRenderer creates a Renderer. Invalid dates met while rendering are
// reported to logger.
func NewRenderer(logger *slog.Logger) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		// Inline components embedded in the body are passed through untouched.
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	return &Renderer{
		md:    md,
		page:  template.Must(template.New("page").Parse(pageTemplate)),
		dates: dates.NewFormatter(logger),
	}
}

// HTML renders the body of post.
func (r *Renderer) HTML(post core.Post) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(post.Content), &buf); err != nil {
		return "", fmt.Errorf("failed to render post %s: %w", post.Slug, err)
	}
	return template.HTML(buf.String()), nil
}

// Link is a navigation target.
type Link struct {
	Href  string
	Title string
}

// PageData is what the page template is executed with.
type PageData struct {
	Site     Site
	Meta     Meta
	Post     core.Post
	JSONLD   BlogPosting
	Date     string
	Body     template.HTML
	Previous *Link
	Next     *Link
}

// Page writes the full HTML page of post. prev and next are its older and
// newer neighbors and may be nil.
func (r *Renderer) Page(w io.Writer, site Site, post core.Post, prev, next *core.Post) error {
	body, err := r.HTML(post)
	if err != nil {
		return err
	}

	data := PageData{
		Site:     site,
		Meta:     site.PageMeta(post),
		Post:     post,
		JSONLD:   site.JSONLD(post),
		Date:     r.dates.Format(post.Metadata.PublishedAt, false),
		Body:     body,
		Previous: site.link(prev),
		Next:     site.link(next),
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (s Site) link(p *core.Post) *Link {
	if p == nil {
		return nil
	}
	return &Link{Href: s.PostPath(p.Slug), Title: p.Metadata.Title}
}
