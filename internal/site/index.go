package site

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one item of the list document.
type Entry struct {
	File string `json:"file"`
	Date string `json:"date,omitempty"`
}

// Index is the list document: {"posts": [{"file": "...", "date": "..."}]}.
type Index struct {
	Posts []Entry `json:"posts"`
}

// ParseIndex decodes the list document. Blank input is an empty index.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if strings.TrimSpace(string(data)) == "" {
		return &idx, nil
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return &idx, nil
}
