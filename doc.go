// Package folio is the composition root of a flat-file blog.
//
// It wires the content loader (pkg/core) to the filesystem adapter
// (pkg/adapters/fs) and re-exports the options used to configure it.
//
// A content directory holds one file per post. Each file opens with a
// frontmatter block:
//
//	---
//	title: "Hello"
//	publishedAt: 2025-04-27
//	summary: "First post"
//	image: /images/hello.png
//	---
//
//	Body in Markdown.
//
// Posts are read through a load cycle, a snapshot that scans and parses the
// directory once and then answers every query from memory:
//
//	svc, err := folio.New("app/blog/posts", folio.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	cycle := svc.NewCycle()
//	for _, p := range cycle.SortedPosts(ctx) {
//		fmt.Println(p.Slug, folio.FormatDisplayDate(p.Metadata.PublishedAt, true))
//	}
//
// Files that fail to parse are skipped and logged; they never abort a listing.
package folio
