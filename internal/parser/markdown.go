package parser

import (
	"strings"

	"github.com/KaramelBytes/blogloom/internal/markup"
)

type markdownParser struct{}

func (markdownParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown")
}

func (markdownParser) Parse(content []byte) (string, error) {
	return markup.Render(string(content)), nil
}
