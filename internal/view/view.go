// Package view owns which page of the blog is visible and renders it.
package view

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/KaramelBytes/blogloom/internal/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// View identifies the visible page.
type View int

const (
	Home View = iota
	About
	Post
)

func (v View) String() string {
	switch v {
	case Home:
		return "home"
	case About:
		return "about"
	case Post:
		return "post"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// User-facing notices for retrieval failures.
const (
	NoticeListFailed = "Failed to load blog posts. Please try again later."
	NoticePostFailed = "Failed to load the post. Please try again later."
)

var (
	// ErrUnknownView is returned by Navigate for names other than home and about.
	ErrUnknownView = errors.New("unknown view")
	// ErrRender reports a template execution failure; the page output is
	// incomplete.
	ErrRender = errors.New("render page")
)

// Options configures page rendering.
type Options struct {
	SiteTitle  string
	DateLayout string
	// AboutFile names the document shown on the about page.
	AboutFile string
}

// Controller holds the current view and the post being displayed. At most one
// post is current; opening another replaces it. A Controller is not safe for
// concurrent use.
type Controller struct {
	site    *site.Site
	opts    Options
	tmpl    *template.Template
	current View
	post    *site.Post
	notice  string
}

// NewController returns a controller showing the home view.
func NewController(s *site.Site, opts Options) (*Controller, error) {
	if opts.SiteTitle == "" {
		opts.SiteTitle = "Blog"
	}
	funcs := template.FuncMap{
		"postPath": PostPath,
		"formatDate": func(m site.Meta) string {
			return m.FormatDate(opts.DateLayout)
		},
		// Rendered bodies are trusted; the pipeline does no escaping.
		"markup": func(s string) template.HTML { return template.HTML(s) },
	}
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Controller{site: s, opts: opts, tmpl: tmpl, current: Home}, nil
}

// Current returns the visible view.
func (c *Controller) Current() View { return c.current }

// Post returns the displayed post, or nil outside the post view.
func (c *Controller) Post() *site.Post { return c.post }

// Notice returns the pending user-facing error notice, if any.
func (c *Controller) Notice() string { return c.notice }

// Navigate switches to the named top-level view ("home" or "about") and
// drops any displayed post.
func (c *Controller) Navigate(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "home", "":
		c.current = Home
	case "about":
		c.current = About
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	c.post = nil
	c.notice = ""
	return nil
}

// OpenPost loads file and makes it the displayed post. On failure the current
// view is kept, a notice is set and the error is returned.
func (c *Controller) OpenPost(ctx context.Context, file string) error {
	p, err := c.site.Post(ctx, file)
	if err != nil {
		c.notice = NoticePostFailed
		return err
	}
	c.post = p
	c.current = Post
	c.notice = ""
	return nil
}

// Show displays an already built post.
func (c *Controller) Show(p *site.Post) {
	c.post = p
	c.current = Post
	c.notice = ""
}

// Back leaves the post view for the list.
func (c *Controller) Back() {
	c.post = nil
	c.current = Home
	c.notice = ""
}

type page struct {
	View      string
	SiteTitle string
	Notice    string
	Summaries []site.Summary
	Post      *site.Post
	About     *site.Post
}

// Render writes the current view as a complete HTML page. Retrieval failures
// while building the page are shown as a notice and also returned, after the
// page has been written.
func (c *Controller) Render(ctx context.Context, w io.Writer) error {
	p := page{
		View:      c.current.String(),
		SiteTitle: c.opts.SiteTitle,
		Notice:    c.notice,
		Post:      c.post,
	}
	var loadErr error
	switch c.current {
	case Home:
		sums, _, err := c.site.Summaries(ctx)
		if err != nil {
			p.Notice = NoticeListFailed
			loadErr = err
		}
		p.Summaries = sums
	case About:
		about, err := c.site.Page(ctx, c.opts.AboutFile)
		if err != nil {
			loadErr = err
		}
		p.About = about
	}
	if err := c.tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		return fmt.Errorf("%w %s: %w", ErrRender, c.current, err)
	}
	return loadErr
}

// PostPath is the URL path a post is served under.
func PostPath(file string) string {
	return "/posts/" + strings.TrimPrefix(file, "/")
}
