package parser

import (
	"errors"
	"fmt"
)

// Parser renders a post body to HTML for one family of file extensions.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) (string, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// RenderFile picks a parser by filename and renders body with it. Files with
// an unknown extension are treated as markdown.
func RenderFile(name, body string) (string, error) {
	for _, p := range registry {
		if p.CanParse(name) {
			out, err := p.Parse([]byte(body))
			if err != nil {
				return "", fmt.Errorf("render %s: %w", name, err)
			}
			return out, nil
		}
	}
	return markdownParser{}.Parse([]byte(body))
}

func init() {
	Register(txtParser{})
	Register(markdownParser{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported document format")
