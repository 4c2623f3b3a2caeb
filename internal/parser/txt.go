package parser

import (
	"html"
	"strings"
	"unicode/utf8"
)

type txtParser struct{}

func (txtParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

// Parse keeps plain text verbatim inside a preformatted block.
func (txtParser) Parse(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", ErrUnsupported
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return "<pre>" + html.EscapeString(text) + "</pre>", nil
}
