package fs

import (
	"strings"

	"github.com/aretw0/folio/pkg/core"
)

const delimiter = "---"

// ParseFrontmatter splits raw into validated metadata and body.
//
// raw must open with a "---" line and close the header with another "---"
// line. Each header line is split on the first ": "; key and value are
// trimmed and one layer of matching quotes is removed from the value. Lines
// without ": " and unrecognized keys are ignored. name identifies the file
// in returned errors.
func ParseFrontmatter(raw, name string) (core.Metadata, string, error) {
	block, body, ok := splitFrontmatter(strings.TrimPrefix(raw, "\ufeff"))
	if !ok {
		return core.Metadata{}, "", &core.MissingFrontmatterError{File: name}
	}

	var meta core.Metadata
	for _, line := range block {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		value = unquote(strings.TrimSpace(value))

		switch strings.TrimSpace(key) {
		case core.KeyTitle:
			meta.Title = value
		case core.KeyPublishedAt:
			meta.PublishedAt = value
		case core.KeySummary:
			meta.Summary = value
		case core.KeyImage:
			meta.Image = value
		}
	}

	if missing := meta.Missing(); len(missing) > 0 {
		return core.Metadata{}, "", &core.InvalidFrontmatterError{File: name, Missing: missing}
	}
	return meta, strings.TrimSpace(body), nil
}

// splitFrontmatter returns the header lines and whatever follows the closing
// delimiter. ok is false when no complete header block opens the text.
func splitFrontmatter(text string) (block []string, body string, ok bool) {
	line, rest, more := cutLine(text)
	if !isDelimiter(line) || !more {
		return nil, "", false
	}

	for more {
		line, rest, more = cutLine(rest)
		if isDelimiter(line) {
			return block, rest, true
		}
		block = append(block, line)
	}
	return nil, "", false
}

func cutLine(s string) (line, rest string, more bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return strings.TrimSuffix(s, "\r"), "", false
	}
	return strings.TrimSuffix(s[:i], "\r"), s[i+1:], true
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == delimiter
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// FormatFrontmatter renders meta and body in the content file format.
// Values are double-quoted so that ParseFrontmatter restores them exactly.
func FormatFrontmatter(meta core.Metadata, body string) []byte {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	writeField(&b, core.KeyTitle, meta.Title)
	writeField(&b, core.KeyPublishedAt, meta.PublishedAt)
	writeField(&b, core.KeySummary, meta.Summary)
	if meta.Image != "" {
		writeField(&b, core.KeyImage, meta.Image)
	}
	b.WriteString(delimiter + "\n")
	if body = strings.TrimSpace(body); body != "" {
		b.WriteString("\n" + body + "\n")
	}
	return []byte(b.String())
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key + `: "` + value + `"` + "\n")
}
