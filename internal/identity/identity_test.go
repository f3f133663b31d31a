package identity

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/cdh/internal/log"
)

func newTestResolver(t *testing.T) (*Resolver, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewResolver(log.New(&buf, false, false)), &buf
}

func TestResolve_Directory(t *testing.T) {
	t.Parallel()

	r, diag := newTestResolver(t)
	dir := t.TempDir()

	token, ok := r.Resolve(dir)
	if !ok {
		t.Fatalf("Resolve(%q) failed: %s", dir, diag.String())
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostic: %q", diag.String())
	}
}

func TestResolve_SameDirectoryDifferentPaths(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t)
	base := t.TempDir()
	target := filepath.Join(base, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	a, okA := r.Resolve(target)
	b, okB := r.Resolve(link)
	c, okC := r.Resolve(target + string(filepath.Separator) + ".")
	if !okA || !okB || !okC {
		t.Fatal("expected all spellings to resolve")
	}
	if a != b || a != c {
		t.Errorf("tokens differ: target=%q link=%q dot=%q", a, b, c)
	}
}

func TestResolve_DistinctDirectories(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t)
	a, _ := r.Resolve(t.TempDir())
	b, _ := r.Resolve(t.TempDir())
	if a == b {
		t.Errorf("distinct directories share token %q", a)
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Parallel()

	r, diag := newTestResolver(t)
	missing := filepath.Join(t.TempDir(), "gone")

	token, ok := r.Resolve(missing)
	if ok || token != "" {
		t.Errorf("Resolve(missing) = (%q, %v), want failure", token, ok)
	}
	got := diag.String()
	if !strings.Contains(got, missing) {
		t.Errorf("diagnostic %q should name the path", got)
	}
	if !strings.Contains(got, "no such file") {
		t.Errorf("diagnostic %q should carry the OS error", got)
	}
}

func TestResolve_NotDirectory(t *testing.T) {
	t.Parallel()

	r, diag := newTestResolver(t)
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.Resolve(file); ok {
		t.Error("expected failure for regular file")
	}
	if !strings.Contains(diag.String(), "not a directory") {
		t.Errorf("diagnostic = %q, want 'not a directory'", diag.String())
	}
}

func TestResolve_Memoized(t *testing.T) {
	t.Parallel()

	r, diag := newTestResolver(t)
	calls := 0
	r.stat = func(path string) (string, error) {
		calls++
		if path == "/bad" {
			return "", errors.New("permission denied")
		}
		return "1,2", nil
	}

	for range 3 {
		if token, ok := r.Resolve("/good"); !ok || token != "1,2" {
			t.Fatalf("Resolve(/good) = (%q, %v)", token, ok)
		}
		if _, ok := r.Resolve("/bad"); ok {
			t.Fatal("Resolve(/bad) should fail")
		}
	}

	if calls != 2 {
		t.Errorf("stat called %d times, want 2", calls)
	}
	if n := strings.Count(diag.String(), "/bad"); n != 1 {
		t.Errorf("failure reported %d times, want once", n)
	}
}

func TestResolve_CacheOutlivesDirectory(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t)
	dir := filepath.Join(t.TempDir(), "tmp")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	first, ok := r.Resolve(dir)
	if !ok {
		t.Fatal("first Resolve failed")
	}
	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}

	second, ok := r.Resolve(dir)
	if !ok || second != first {
		t.Errorf("cached Resolve = (%q, %v), want (%q, true)", second, ok, first)
	}

	fresh, _ := newTestResolver(t)
	if _, ok := fresh.Resolve(dir); ok {
		t.Error("a fresh resolver should hit the filesystem and fail")
	}
}
