// Package render turns posts into HTML pages and the metadata that search
// engines and link previews read.
package render

import (
	"net/url"
	"strings"

	"github.com/aretw0/folio/pkg/core"
)

// DefaultPostsPath is the route prefix under which posts are served.
const DefaultPostsPath = "/blog"

// Site describes where posts are published.
type Site struct {
	// BaseURL is the absolute origin, e.g. "https://example.com".
	BaseURL string
	// PostsPath is the route prefix of post pages, e.g. "/blog".
	PostsPath string
	Title     string
	Author    string
}

func (s Site) base() string {
	return strings.TrimRight(s.BaseURL, "/")
}

// PostsRoute returns the normalized site-relative route of the post index.
func (s Site) PostsRoute() string {
	p := s.PostsPath
	if p == "" {
		p = DefaultPostsPath
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// URL returns the absolute URL of a site route such as "" or "/blog".
func (s Site) URL(route string) string {
	return s.base() + route
}

// PostsURL returns the absolute URL of the post index.
func (s Site) PostsURL() string {
	return s.base() + s.PostsRoute()
}

// PostPath returns the site-relative route of a post.
func (s Site) PostPath(slug string) string {
	return s.PostsRoute() + "/" + url.PathEscape(slug)
}

// PostURL returns the canonical absolute URL of a post.
func (s Site) PostURL(slug string) string {
	return s.base() + s.PostPath(slug)
}

// FallbackImage returns the generated preview image URL for a title.
func (s Site) FallbackImage(title string) string {
	return s.base() + "/og?title=" + escapeComponent(title)
}

// escapeComponent escapes a query value with %20 for spaces.
func escapeComponent(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// Meta is the document metadata of a page.
type Meta struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Canonical   string     `json:"canonical,omitempty"`
	OpenGraph   *OpenGraph `json:"openGraph,omitempty"`
	Twitter     *Twitter   `json:"twitter,omitempty"`
}

// OpenGraph holds the og:* properties of an article.
type OpenGraph struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	PublishedTime string   `json:"publishedTime"`
	URL           string   `json:"url"`
	Images        []string `json:"images"`
}

// Twitter holds the twitter:* card properties.
type Twitter struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// PageMeta builds the metadata of a post page. A post without an image gets
// the generated preview image for its title.
func (s Site) PageMeta(post core.Post) Meta {
	m := post.Metadata
	image := m.Image
	if image == "" {
		image = s.FallbackImage(m.Title)
	}
	link := s.PostURL(post.Slug)

	return Meta{
		Title:       m.Title,
		Description: m.Summary,
		Canonical:   link,
		OpenGraph: &OpenGraph{
			Title:         m.Title,
			Description:   m.Summary,
			Type:          "article",
			PublishedTime: m.PublishedAt,
			URL:           link,
			Images:        []string{image},
		},
		Twitter: &Twitter{
			Card:        "summary_large_image",
			Title:       m.Title,
			Description: m.Summary,
			Images:      []string{image},
		},
	}
}

// NotFoundMeta is the metadata of the page served for an unknown slug.
func NotFoundMeta() Meta {
	return Meta{
		Title:       "Not Found",
		Description: "The page you are looking for does not exist.",
	}
}

// BlogPosting is the schema.org structured data of a post.
type BlogPosting struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	DatePublished string `json:"datePublished"`
	DateModified  string `json:"dateModified"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	URL           string `json:"url"`
	Author        Person `json:"author"`
}

// Person is a schema.org author.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// JSONLD builds the structured data of a post. Site-relative images are made
// absolute.
func (s Site) JSONLD(post core.Post) BlogPosting {
	m := post.Metadata
	image := m.Image
	switch {
	case image == "":
		image = s.FallbackImage(m.Title)
	case strings.HasPrefix(image, "/"):
		image = s.base() + image
	}

	author := s.Author
	if author == "" {
		author = s.Title
	}

	return BlogPosting{
		Context:       "https://schema.org",
		Type:          "BlogPosting",
		Headline:      m.Title,
		DatePublished: m.PublishedAt,
		DateModified:  m.PublishedAt,
		Description:   m.Summary,
		Image:         image,
		URL:           s.PostURL(post.Slug),
		Author:        Person{Type: "Person", Name: author},
	}
}
