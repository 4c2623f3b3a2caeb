// Package source retrieves raw post documents and the site index from a
// local directory or an HTTP base URL.
package source

import (
	"context"
	"path"
	"strings"
	"time"
)

// Source fetches a raw document by name, e.g. "index.json" or "hello.md".
type Source interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// Options tunes the HTTP source. Zero values select defaults.
type Options struct {
	Timeout    time.Duration
	RetryMax   int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	HTTPClient HTTPDoer
}

// Open returns an HTTP source for http(s) locations and a directory source
// for anything else.
func Open(location string, opts Options) Source {
	l := strings.ToLower(location)
	if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
		return NewHTTP(location, opts)
	}
	return NewDir(location)
}

// ValidateName cleans name and rejects names that are empty, absolute or
// point outside the source root.
func ValidateName(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsRune(name, '\\') || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if strings.HasPrefix(name, "/") {
		return "", ErrInvalidName
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidName
	}
	return clean, nil
}

// FetchOrEmpty fetches name and converts any failure into an empty document,
// handing the error to report when it is non-nil.
func FetchOrEmpty(ctx context.Context, src Source, name string, report func(error)) string {
	s, err := src.Fetch(ctx, name)
	if err != nil {
		if report != nil {
			report(err)
		}
		return ""
	}
	return s
}
