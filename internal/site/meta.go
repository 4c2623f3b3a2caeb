package site

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/KaramelBytes/blogloom/internal/frontmatter"
	"github.com/KaramelBytes/blogloom/internal/utils"
)

// Recognized header keys.
const (
	KeyTitle    = "title"
	KeyDate     = "date"
	KeyReadTime = "readTime"
	KeyTags     = "tags"
	KeyExcerpt  = "excerpt"
)

// Meta is the post metadata the views display. Zero values mean absent.
type Meta struct {
	Title string
	// Date is zero when DateText is empty or could not be parsed.
	Date     time.Time
	DateText string
	ReadTime int
	Tags     []string
	Excerpt  string
}

// MetaOptions controls fallbacks for absent header fields.
type MetaOptions struct {
	// EstimateReadTime fills ReadTime from the body's word count when the
	// header has no readTime.
	EstimateReadTime bool
	WordsPerMinute   int
	// ExcerptWords > 0 fills Excerpt with the body's first words when the
	// header has none.
	ExcerptWords int
}

// MetaFromHeader extracts Meta from h. fallbackDate is used when the header
// carries no date, e.g. the date from the list document.
func MetaFromHeader(h frontmatter.Header, body, fallbackDate string, opts MetaOptions) Meta {
	m := Meta{
		Title:   h.Get(KeyTitle),
		Excerpt: h.Get(KeyExcerpt),
		Tags:    SplitTags(h.Get(KeyTags)),
	}
	m.DateText = h.Get(KeyDate)
	if m.DateText == "" {
		m.DateText = strings.TrimSpace(fallbackDate)
	}
	if m.DateText != "" {
		if t, err := cast.ToTimeE(m.DateText); err == nil {
			m.Date = t
		}
	}
	if rt := h.Get(KeyReadTime); rt != "" {
		if f, err := cast.ToFloat64E(rt); err == nil && f > 0 {
			m.ReadTime = int(math.Round(f))
		}
	} else if opts.EstimateReadTime {
		m.ReadTime = utils.EstimateReadMinutes(body, opts.WordsPerMinute)
	}
	if m.Excerpt == "" && opts.ExcerptWords > 0 {
		m.Excerpt = utils.TruncateWords(body, opts.ExcerptWords)
	}
	return m
}

// SplitTags splits a comma-separated tag list, trimming each tag and
// dropping empty ones.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FormatDate renders the date for display using layout. Unparseable dates are
// shown as written.
func (m Meta) FormatDate(layout string) string {
	if m.Date.IsZero() {
		return m.DateText
	}
	if layout == "" {
		layout = "January 2, 2006"
	}
	return m.Date.Format(layout)
}
