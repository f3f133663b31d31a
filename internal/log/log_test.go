package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("writes formatted output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Printf("%d %s", 7, "/srv/www")
		if got := buf.String(); got != "7 /srv/www" {
			t.Errorf("Printf output = %q, want %q", got, "7 /srv/www")
		}
	})

	t.Run("suppressed when quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, true)
		l.Printf("should not appear")
		l.Println("nor this")
		if buf.Len() != 0 {
			t.Errorf("quiet logger wrote %q", buf.String())
		}
	})
}

func TestWarnf(t *testing.T) {
	t.Parallel()

	t.Run("prefixes and terminates line", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Warnf("%s: not a directory", "/etc/passwd")
		want := "cdh: /etc/passwd: not a directory\n"
		if got := buf.String(); got != want {
			t.Errorf("Warnf output = %q, want %q", got, want)
		}
	})

	t.Run("no doubled newline", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Warnf("done\n")
		if got := buf.String(); got != "cdh: done\n" {
			t.Errorf("Warnf output = %q", got)
		}
	})

	t.Run("written even when quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, true)
		l.Warnf("still here")
		if !strings.Contains(buf.String(), "still here") {
			t.Errorf("Warnf output = %q, want warning when quiet", buf.String())
		}
	})
}

func TestDebug(t *testing.T) {
	t.Parallel()

	t.Run("verbose key-val format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("resolved reference", "ref", "%src", "path", "/home/a/src")
		got := buf.String()
		if !strings.Contains(got, "resolved reference") {
			t.Errorf("Debug output = %q, want to contain message", got)
		}
		if !strings.Contains(got, "ref=%src") {
			t.Errorf("Debug output = %q, want to contain ref=%%src", got)
		}
		if !strings.Contains(got, "path=/home/a/src") {
			t.Errorf("Debug output = %q, want to contain path", got)
		}
	})

	t.Run("odd keyvals drops last", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		l.Debug("msg", "key1", "val1", "orphan")
		got := buf.String()
		if !strings.Contains(got, "key1=val1") {
			t.Errorf("Debug output = %q, want to contain key1=val1", got)
		}
		if strings.Contains(got, "orphan") {
			t.Errorf("Debug output = %q, should not contain orphan key", got)
		}
	})

	t.Run("not verbose is silent", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)
		l.Debug("should not appear", "key", "val")
		if buf.Len() != 0 {
			t.Errorf("Debug wrote %q when not verbose", buf.String())
		}
	})

	t.Run("quiet overrides verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, true)
		l.Debug("should not appear")
		if buf.Len() != 0 {
			t.Errorf("Debug wrote %q when quiet", buf.String())
		}
	})
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    bool
	}{
		{"verbose only", true, false, true},
		{"quiet only", false, true, false},
		{"both", true, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(io.Discard, tt.verbose, tt.quiet)
			if got := l.IsVerbose(); got != tt.want {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)
		ctx := WithLogger(context.Background(), l)
		if got := FromContext(ctx); got != l {
			t.Error("FromContext did not return the stored logger")
		}
	})

	t.Run("fallback discard logger", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		if l == nil {
			t.Fatal("FromContext returned nil for empty context")
		}
		l.Printf("should not appear anywhere")
		l.Warnf("should not appear anywhere")
		if l.out != io.Discard {
			t.Error("fallback logger should write to io.Discard")
		}
	})
}
