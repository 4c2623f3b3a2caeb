// Package markup converts the lightweight markup used in post bodies into
// HTML through a fixed, ordered list of substitution rules.
//
// Each rule rewrites every non-overlapping match in the whole text before the
// next rule runs, so the order of the list decides precedence: strong
// emphasis consumes "**" before single emphasis sees it, fenced blocks are
// wrapped before inline code spans, and paragraph wrapping runs last so it
// can skip lines that already start with a tag.
//
// Known gaps, kept on purpose:
//   - list items are emitted as bare <li> elements; no <ul>/<ol> is added.
//   - fenced block content is still visible to the other rules, so asterisks,
//     headings and backticks inside a fence are rewritten too.
//   - paragraph wrapping is per line: consecutive prose lines each become
//     their own <p>.
//   - emphasis runs before the list rules, so a "*" bullet whose text also
//     holds *emphasis* pairs the bullet with the first emphasis marker. Use
//     "-" bullets for such items.
//
// Rendered output is not valid input; rendering it again will wrap or rewrite
// parts of the markup.
package markup

import (
	"regexp"
	"strings"
)

// Rule is one substitution pass of the pipeline.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
	// Keep, when set, reports whether the match at loc (as returned by
	// FindAllStringSubmatchIndex) is left untouched.
	Keep func(text string, loc []int) bool
}

// Apply rewrites every match of r in text.
func (r Rule) Apply(text string) string {
	if r.Keep == nil {
		return r.Pattern.ReplaceAllString(text, r.Template)
	}
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, loc := range matches {
		if r.Keep(text, loc) {
			continue
		}
		sb.WriteString(text[last:loc[0]])
		sb.Write(r.Pattern.ExpandString(nil, r.Template, text, loc))
		last = loc[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

var (
	crlfOrCR   = regexp.MustCompile(`\r\n?`)
	leadingTag = regexp.MustCompile(`^<[^>]+>`)
)

var pipeline = []Rule{
	{Name: "heading-1", Pattern: regexp.MustCompile(`(?m)^# (.*)$`), Template: "<h1>${1}</h1>"},
	{Name: "heading-2", Pattern: regexp.MustCompile(`(?m)^## (.*)$`), Template: "<h2>${1}</h2>"},
	{Name: "heading-3", Pattern: regexp.MustCompile(`(?m)^### (.*)$`), Template: "<h3>${1}</h3>"},
	{Name: "strong", Pattern: regexp.MustCompile(`\*\*(.+?)\*\*`), Template: "<strong>${1}</strong>"},
	{Name: "emphasis", Pattern: regexp.MustCompile(`\*([^*\n]+)\*`), Template: "<em>${1}</em>"},
	{Name: "fenced-code", Pattern: regexp.MustCompile("(?s)```(.*?)```"), Template: "<pre><code>${1}</code></pre>"},
	{Name: "inline-code", Pattern: regexp.MustCompile("`([^`\n]+)`"), Template: "<code>${1}</code>"},
	{Name: "link", Pattern: regexp.MustCompile(`\[(.*?)\]\((.*?)\)`), Template: `<a href="${2}">${1}</a>`, Keep: precededByBang},
	{Name: "image", Pattern: regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`), Template: `<img src="${2}" alt="${1}" class="post-image">`},
	{Name: "ordered-item", Pattern: regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+(.*)$`), Template: "<li>${1}</li>"},
	{Name: "unordered-item", Pattern: regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]+(.*)$`), Template: "<li>${1}</li>"},
	{Name: "paragraph-break", Pattern: regexp.MustCompile(`\n\n`), Template: "</p><p>"},
	{Name: "paragraph", Pattern: regexp.MustCompile(`(?m)^(.+)$`), Template: "<p>${1}</p>", Keep: startsWithTag},
}

// Rules returns a copy of the pipeline in application order.
func Rules() []Rule {
	out := make([]Rule, len(pipeline))
	copy(out, pipeline)
	return out
}

// Render converts body to HTML. It never fails; delimiters without a partner
// are left in the output as literal text.
func Render(body string) string {
	text := crlfOrCR.ReplaceAllString(body, "\n")
	for _, r := range pipeline {
		text = r.Apply(text)
	}
	return text
}

// precededByBang keeps "![alt](src)" for the image rule.
func precededByBang(text string, loc []int) bool {
	return loc[0] > 0 && text[loc[0]-1] == '!'
}

func startsWithTag(text string, loc []int) bool {
	return leadingTag.MatchString(text[loc[0]:loc[1]])
}
