// Package frontmatter splits a raw post into its key/value header and body.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	delimiter     = "---"
	byteOrderMark = "\uFEFF"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Header maps trimmed field names to trimmed field values.
type Header map[string]string

// Get returns the value for key, or "" when the key is absent.
func (h Header) Get(key string) string { return h[key] }

// Has reports whether key was present in the header block.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Document is a raw post split into header and body.
type Document struct {
	Header Header
	Body   string
}

type state int

const (
	readingHeader state = iota
	readingBody
)

// Split separates raw into a header and a body. It never fails: input without
// a well-formed header block is returned whole as the body together with a
// diagnostic describing why no header was found.
//
// A leading byte order mark is dropped. The header block opens with a "---"
// line at the very start of the input and closes at the first following "---"
// line; later delimiter lines belong to the body.
func Split(raw string) (Document, []Diagnostic) {
	text := strings.TrimPrefix(NormalizeLineEndings(raw), byteOrderMark)
	whole := Document{Header: Header{}, Body: text}

	first, rest, more := strings.Cut(text, "\n")
	if !isDelimiter(first) {
		return whole, []Diagnostic{{Kind: NoFrontMatter, Line: 1, Message: "no front matter found"}}
	}

	var block []string
	st := readingHeader
	for st == readingHeader && more {
		var cur string
		cur, rest, more = strings.Cut(rest, "\n")
		if isDelimiter(cur) {
			st = readingBody
			break
		}
		block = append(block, cur)
	}
	if st != readingBody {
		return whole, []Diagnostic{{Kind: UnterminatedFrontMatter, Line: 1, Message: "front matter opened but never closed"}}
	}

	doc := Document{Header: Header{}, Body: rest}
	return doc, parseBlock(doc.Header, block)
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(s string) string {
	return crlfOrCR.ReplaceAllString(s, "\n")
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == delimiter
}

// parseBlock fills h from the header lines. Line numbers start at 2, the line
// after the opening delimiter.
func parseBlock(h Header, lines []string) []Diagnostic {
	var diags []Diagnostic
	for i, l := range lines {
		n := i + 2
		if strings.TrimSpace(l) == "" {
			continue
		}
		k, v, ok := strings.Cut(l, ":")
		if !ok {
			diags = append(diags, Diagnostic{Kind: MissingSeparator, Line: n, Message: fmt.Sprintf("skipping header line without ':': %q", l)})
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			diags = append(diags, Diagnostic{Kind: EmptyKey, Line: n, Message: fmt.Sprintf("skipping header line with empty key: %q", l)})
			continue
		}
		if h.Has(k) {
			diags = append(diags, Diagnostic{Kind: DuplicateKey, Line: n, Message: fmt.Sprintf("duplicate key %q, last value wins", k)})
		}
		h[k] = strings.TrimSpace(v)
	}
	return diags
}
