package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/feed"
	"github.com/aretw0/folio/pkg/render"
)

// Summary is a post as listed, without its body.
type Summary struct {
	Slug     string        `json:"slug"`
	Metadata core.Metadata `json:"metadata"`
	Date     string        `json:"date"`
}

// PostResponse is the payload of a single post.
type PostResponse struct {
	Post     core.Post          `json:"post"`
	Date     string             `json:"date"`
	Meta     render.Meta        `json:"meta"`
	JSONLD   render.BlogPosting `json:"jsonLd"`
	Previous *Summary           `json:"previous"`
	Next     *Summary           `json:"next"`
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.health)
	r.GET("/sitemap.xml", s.sitemap)
	r.GET("/feed.xml", s.rss)

	api := r.Group("/api/posts")
	api.GET("", s.listPosts)
	api.GET("/:slug", s.getPost)

	r.GET(s.cfg.Site.PostsRoute()+"/:slug", s.postPage)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) summary(p *core.Post) *Summary {
	if p == nil {
		return nil
	}
	return &Summary{
		Slug:     p.Slug,
		Metadata: p.Metadata,
		Date:     s.dates.Format(p.Metadata.PublishedAt, true),
	}
}

func (s *Server) listPosts(c *gin.Context) {
	posts := s.cycle().SortedPosts(c.Request.Context())

	items := make([]Summary, 0, len(posts))
	for i := range posts {
		items = append(items, *s.summary(&posts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": core.ErrNotFound.Error(),
		"meta":  render.NotFoundMeta(),
	})
}

func (s *Server) getPost(c *gin.Context) {
	ctx := c.Request.Context()
	cycle := s.cycle()

	post, ok := cycle.PostBySlug(ctx, c.Param("slug"))
	if !ok {
		notFound(c)
		return
	}
	prev, next := cycle.Neighbors(ctx, post.Slug)

	c.JSON(http.StatusOK, PostResponse{
		Post:     post,
		Date:     s.dates.Format(post.Metadata.PublishedAt, true),
		Meta:     s.cfg.Site.PageMeta(post),
		JSONLD:   s.cfg.Site.JSONLD(post),
		Previous: s.summary(prev),
		Next:     s.summary(next),
	})
}

func (s *Server) postPage(c *gin.Context) {
	ctx := c.Request.Context()
	cycle := s.cycle()

	post, ok := cycle.PostBySlug(ctx, c.Param("slug"))
	if !ok {
		notFound(c)
		return
	}
	prev, next := cycle.Neighbors(ctx, post.Slug)

	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, s.cfg.Site, post, prev, next); err != nil {
		s.logger.Error("failed to render page", "slug", post.Slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) feedOptions() feed.Options {
	return feed.Options{
		Site:        s.cfg.Site,
		Description: s.cfg.Description,
		Limit:       s.cfg.FeedLimit,
		Renderer:    s.renderer,
	}
}

func (s *Server) sitemap(c *gin.Context) {
	posts := s.cycle().SortedPosts(c.Request.Context())

	var buf bytes.Buffer
	if err := feed.WriteSitemap(&buf, posts, s.feedOptions()); err != nil {
		s.logger.Error("failed to build sitemap", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sitemap failed"})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (s *Server) rss(c *gin.Context) {
	posts := s.cycle().SortedPosts(c.Request.Context())

	var buf bytes.Buffer
	if err := feed.WriteRSS(&buf, posts, s.feedOptions()); err != nil {
		s.logger.Error("failed to build feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed failed"})
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", buf.Bytes())
}
