package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with args and returns what it wrote to
// stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	// Reset flags that keep their value across invocations
	for _, c := range []struct {
		name string
		val  string
	}{{"page", "false"}, {"out", ""}, {"title", ""}} {
		for _, sub := range rootCmd.Commands() {
			if fl := sub.Flags().Lookup(c.name); fl != nil {
				_ = fl.Value.Set(c.val)
				fl.Changed = false
			}
		}
	}
	if fl := rootCmd.PersistentFlags().Lookup("source"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func TestCLI_Init_List_Build(t *testing.T) {
	home := setupHome(t)
	blog := filepath.Join(home, "blog")
	posts := filepath.Join(blog, "posts")

	out := runCmd(t, "init", blog, "--title", "First Light")
	if !strings.Contains(out, "Blog initialized") {
		t.Fatalf("unexpected init output: %q", out)
	}
	for _, f := range []string{"index.json", "welcome.md", "about.md"} {
		if _, err := os.Stat(filepath.Join(posts, f)); err != nil {
			t.Fatalf("expected %s: %v", f, err)
		}
	}
	if _, err := execCmd("init", blog); err == nil {
		t.Fatalf("expected second init to fail")
	}

	out = runCmd(t, "--source", posts, "list")
	if !strings.Contains(out, "- welcome.md: First Light") {
		t.Fatalf("list missing welcome post: %q", out)
	}

	site := filepath.Join(home, "site")
	out = runCmd(t, "--source", posts, "build", "--out", site)
	if !strings.Contains(out, "Built 1 post(s)") {
		t.Fatalf("unexpected build output: %q", out)
	}
	b, err := os.ReadFile(filepath.Join(site, "posts", "welcome.md", "index.html"))
	if err != nil {
		t.Fatalf("read built post: %v", err)
	}
	page := string(b)
	for _, want := range []string{"<h1>First Light</h1>", "<strong>blogloom</strong>", `<span class="tag">welcome</span>`} {
		if !strings.Contains(page, want) {
			t.Fatalf("built post missing %q", want)
		}
	}
	home1, err := os.ReadFile(filepath.Join(site, "index.html"))
	if err != nil {
		t.Fatalf("read built home: %v", err)
	}
	if !strings.Contains(string(home1), `href="/posts/welcome.md"`) {
		t.Fatalf("home page missing post link")
	}
	about, err := os.ReadFile(filepath.Join(site, "about", "index.html"))
	if err != nil {
		t.Fatalf("read built about: %v", err)
	}
	if !strings.Contains(string(about), "<h1>About</h1>") {
		t.Fatalf("about page missing heading")
	}
}

func TestCLI_Split_Render(t *testing.T) {
	home := setupHome(t)
	doc := filepath.Join(home, "post.md")
	raw := "---\ntitle: Hello\ntags: go, web\n---\n# Hi\n\nSome *text*."
	if err := os.WriteFile(doc, []byte(raw), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	out := runCmd(t, "split", doc)
	if !strings.HasPrefix(out, "---\n") || !strings.Contains(out, "title: Hello\n") {
		t.Fatalf("unexpected split header: %q", out)
	}
	if !strings.HasSuffix(out, "---\n# Hi\n\nSome *text*.") {
		t.Fatalf("unexpected split body: %q", out)
	}

	out = runCmd(t, "render", doc)
	if out != "<h1>Hi</h1></p><p>Some <em>text</em>.\n" {
		t.Fatalf("unexpected render output: %q", out)
	}

	out = runCmd(t, "render", "--page", doc)
	if !strings.Contains(out, "<title>Hello · ") || !strings.Contains(out, `<span class="tag">web</span>`) {
		t.Fatalf("unexpected page output: %q", out)
	}
}

func TestCLI_Rules(t *testing.T) {
	setupHome(t)
	out := runCmd(t, "rules")
	first := strings.Index(out, "heading-1")
	last := strings.Index(out, "paragraph-break")
	if first < 0 || last < 0 || first > last {
		t.Fatalf("rules not listed in order: %q", out)
	}
}

func TestCLI_RenderMissingFile(t *testing.T) {
	home := setupHome(t)
	if _, err := execCmd("render", filepath.Join(home, "nope.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCLI_ListFindsPostsDirAbove(t *testing.T) {
	home := setupHome(t)
	blog := filepath.Join(home, "blog")
	runCmd(t, "init", blog)
	drafts := filepath.Join(blog, "drafts", "2024")
	if err := os.MkdirAll(drafts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, drafts)

	out := runCmd(t, "list")
	if !strings.Contains(out, "- welcome.md: Hello, world") {
		t.Fatalf("list did not find posts above the working directory: %q", out)
	}
}
