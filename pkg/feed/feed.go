// Package feed builds the sitemap and RSS documents of a site.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/feeds"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
	"github.com/aretw0/folio/pkg/render"
)

// DefaultLimit caps the number of items in a feed.
const DefaultLimit = 20

// Options configures the generated documents.
type Options struct {
	Site        render.Site
	Description string
	// Limit caps the feed items; zero or less means DefaultLimit.
	Limit int
	// Renderer, when set, embeds the rendered body of each feed item.
	Renderer *render.Renderer
	Now      func() time.Time
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// URL is one sitemap entry.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// URLSet is the sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []URL    `xml:"url"`
}

// Sitemap lists the home page and the post index, both modified today, then
// every post with its publication date.
func Sitemap(posts []core.Post, opts Options) URLSet {
	today := opts.now().UTC().Format(time.DateOnly)
	site := opts.Site

	urls := make([]URL, 0, len(posts)+2)
	urls = append(urls,
		URL{Loc: site.URL(""), LastMod: today},
		URL{Loc: site.PostsURL(), LastMod: today},
	)
	for _, p := range posts {
		urls = append(urls, URL{Loc: site.PostURL(p.Slug), LastMod: p.Metadata.PublishedAt})
	}
	return URLSet{URLs: urls}
}

// WriteSitemap encodes the sitemap of posts to w.
func WriteSitemap(w io.Writer, posts []core.Post, opts Options) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(Sitemap(posts, opts)); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return enc.Flush()
}

// RSS builds the feed of posts, which must already be sorted newest first.
func RSS(posts []core.Post, opts Options) (*feeds.Feed, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	site := opts.Site
	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.URL("")},
		Description: opts.Description,
		Created:     opts.now(),
	}
	if site.Author != "" {
		f.Author = &feeds.Author{Name: site.Author}
	}

	for _, p := range posts {
		item := &feeds.Item{
			Id:          site.PostURL(p.Slug),
			Title:       p.Metadata.Title,
			Link:        &feeds.Link{Href: site.PostURL(p.Slug)},
			Description: p.Metadata.Summary,
		}
		// Unparsable dates leave the item undated.
		if t, err := dates.Parse(p.Metadata.PublishedAt); err == nil {
			item.Created = t
		}
		if opts.Renderer != nil {
			body, err := opts.Renderer.HTML(p)
			if err != nil {
				return nil, err
			}
			item.Content = string(body)
		}
		f.Items = append(f.Items, item)
	}

	if len(f.Items) > 0 && !f.Items[0].Created.IsZero() {
		f.Updated = f.Items[0].Created
	}
	return f, nil
}

// WriteRSS encodes the RSS 2.0 feed of posts to w.
func WriteRSS(w io.Writer, posts []core.Post, opts Options) error {
	f, err := RSS(posts, opts)
	if err != nil {
		return err
	}
	if err := f.WriteRss(w); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return nil
}
