// Package site reads the list document and the posts it names from a source
// and turns them into summaries and rendered posts.
package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaramelBytes/blogloom/internal/frontmatter"
	"github.com/KaramelBytes/blogloom/internal/parser"
	"github.com/KaramelBytes/blogloom/internal/source"
)

// Skip reasons reported by Summaries.
const (
	ReasonMissingFile  = "missing file property"
	ReasonMissingTitle = "invalid front matter: missing title"
)

// ErrPostUnavailable wraps retrieval failures of a single post.
var ErrPostUnavailable = errors.New("post unavailable")

// Summary is a list entry ready for display.
type Summary struct {
	File string
	Meta
}

// Skip records a list entry that was left out and why.
type Skip struct {
	File   string
	Reason string
}

// Post is a fully rendered post.
type Post struct {
	File string
	Meta
	// HTML is the rendered body.
	HTML string
}

// Options configures a Site.
type Options struct {
	IndexFile string
	Meta      MetaOptions
	// OnDiagnostic receives header diagnostics for each split document.
	OnDiagnostic func(file string, d frontmatter.Diagnostic)
	// OnFetchError receives retrieval errors that were turned into empty
	// documents while building the list.
	OnFetchError func(file string, err error)
}

// Site reads posts from a source. It holds no per-request state and can be
// shared.
type Site struct {
	src  source.Source
	opts Options
}

// New returns a Site reading from src.
func New(src source.Source, opts Options) *Site {
	if opts.IndexFile == "" {
		opts.IndexFile = "index.json"
	}
	return &Site{src: src, opts: opts}
}

// LoadIndex fetches and decodes the list document.
func (s *Site) LoadIndex(ctx context.Context) (*Index, error) {
	raw, err := s.src.Fetch(ctx, s.opts.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	return ParseIndex([]byte(raw))
}

// Summaries loads the index and every listed post, one after another in
// index order. Posts that cannot be fetched are treated as empty documents,
// and entries without a file or a title are skipped.
func (s *Site) Summaries(ctx context.Context) ([]Summary, []Skip, error) {
	idx, err := s.LoadIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	var (
		out   []Summary
		skips []Skip
	)
	for _, e := range idx.Posts {
		if err := ctx.Err(); err != nil {
			return out, skips, err
		}
		if e.File == "" {
			skips = append(skips, Skip{Reason: ReasonMissingFile})
			continue
		}
		raw := source.FetchOrEmpty(ctx, s.src, e.File, func(err error) {
			if s.opts.OnFetchError != nil {
				s.opts.OnFetchError(e.File, err)
			}
		})
		doc := s.split(e.File, raw)
		if doc.Header.Get(KeyTitle) == "" {
			skips = append(skips, Skip{File: e.File, Reason: ReasonMissingTitle})
			continue
		}
		out = append(out, Summary{
			File: e.File,
			Meta: MetaFromHeader(doc.Header, doc.Body, e.Date, s.opts.Meta),
		})
	}
	return out, skips, nil
}

// Post fetches, splits and renders a single post. Unlike Summaries, a
// retrieval failure is returned as an error wrapping ErrPostUnavailable and
// the source error.
func (s *Site) Post(ctx context.Context, file string) (*Post, error) {
	raw, err := s.src.Fetch(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPostUnavailable, file, err)
	}
	return s.build(file, raw)
}

// Page renders an arbitrary document such as the about page. Missing
// documents yield a nil Post and no error.
func (s *Site) Page(ctx context.Context, file string) (*Post, error) {
	if file == "" {
		return nil, nil
	}
	raw, err := s.src.Fetch(ctx, file)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrPostUnavailable, file, err)
	}
	return s.build(file, raw)
}

// Build turns a raw document into a Post without fetching anything.
func (s *Site) Build(file, raw string) (*Post, error) {
	return s.build(file, raw)
}

func (s *Site) build(file, raw string) (*Post, error) {
	doc := s.split(file, raw)
	html, err := parser.RenderFile(file, doc.Body)
	if err != nil {
		return nil, err
	}
	return &Post{
		File: file,
		Meta: MetaFromHeader(doc.Header, doc.Body, "", s.opts.Meta),
		HTML: html,
	}, nil
}

func (s *Site) split(file, raw string) frontmatter.Document {
	doc, diags := frontmatter.Split(raw)
	if s.opts.OnDiagnostic != nil {
		for _, d := range diags {
			s.opts.OnDiagnostic(file, d)
		}
	}
	return doc
}
