package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/blogloom/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.html")
	if err := utils.SafeWriteFile(p, []byte("<p>x</p>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "<p>x</p>" {
		t.Fatalf("unexpected content: %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestFindPostsDir(t *testing.T) {
	root := t.TempDir()
	posts := filepath.Join(root, "posts")
	deep := filepath.Join(root, "a", "b")
	if err := utils.EnsureDir(posts); err != nil {
		t.Fatal(err)
	}
	if err := utils.EnsureDir(deep); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(posts, utils.IndexFileName), []byte(`{"posts":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := utils.FindPostsDir(deep)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != posts {
		t.Fatalf("got %s want %s", got, posts)
	}
	got, err = utils.FindPostsDir(posts)
	if err != nil || got != posts {
		t.Fatalf("from posts dir: %s, %v", got, err)
	}
}
