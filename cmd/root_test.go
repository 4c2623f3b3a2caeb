package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/blogloom/internal/utils"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func samePath(t *testing.T, a, b string) bool {
	t.Helper()
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false
	}
	return ra == rb
}

func TestResolvePostsLocation(t *testing.T) {
	root := t.TempDir()
	posts := filepath.Join(root, "posts")
	deep := filepath.Join(root, "drafts", "old")
	if err := utils.EnsureDir(posts); err != nil {
		t.Fatal(err)
	}
	if err := utils.EnsureDir(deep); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(posts, utils.IndexFileName), []byte(`{"posts":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	chdir(t, deep)
	if got := resolvePostsLocation(""); !samePath(t, got, posts) {
		t.Fatalf("from nested dir: got %s want %s", got, posts)
	}
	if got := resolvePostsLocation("posts"); !samePath(t, got, posts) {
		t.Fatalf("default name: got %s want %s", got, posts)
	}
	if got := resolvePostsLocation("content"); got != "content" {
		t.Fatalf("explicit dir changed: %s", got)
	}
	if got := resolvePostsLocation("https://blog.example.com/posts"); got != "https://blog.example.com/posts" {
		t.Fatalf("url changed: %s", got)
	}

	chdir(t, root)
	if got := resolvePostsLocation("posts"); got != "posts" {
		t.Fatalf("local posts dir should be kept as is: %s", got)
	}
}

func TestResolvePostsLocationNothingFound(t *testing.T) {
	chdir(t, t.TempDir())
	if got := resolvePostsLocation(""); got != "posts" {
		t.Fatalf("expected fallback to posts, got %s", got)
	}
}
