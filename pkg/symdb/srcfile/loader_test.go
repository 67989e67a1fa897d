package srcfile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func skipUnlessSlash(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path expectations use forward slashes")
	}
}

func TestResolveCygdrive(t *testing.T) {
	skipUnlessSlash(t)
	l := NewLoader(nil, time.Now())

	full, dir := l.Resolve("main.c", "/cygdrive/c/src")
	if dir != "c:/src" {
		t.Errorf("wrong directory %q", dir)
	}
	if full != "c:/src/main.c" {
		t.Errorf("wrong full path %q", full)
	}
}

func TestResolveDriveAbsoluteFilename(t *testing.T) {
	skipUnlessSlash(t)
	l := NewLoader(nil, time.Now())

	full, _ := l.Resolve("c:\\src\\main.c", "/somewhere/else")
	if full != "c:/src/main.c" {
		t.Errorf("wrong full path %q", full)
	}
}

func TestCollapseDots(t *testing.T) {
	skipUnlessSlash(t)
	tc := map[string]string{
		"a/b/../c/main.c":      "a/c/main.c",
		"a/b/c/../../d/main.c": "a/d/main.c",
		"a/main.c":             "a/main.c",
		// a leading segment has no parent to cancel against
		"a/../c/main.c": "a/../c/main.c",
		"/../c/main.c":  "/../c/main.c",
	}
	for in, want := range tc {
		if out := collapseDots(in); out != want {
			t.Errorf("collapseDots(%q) = %q, want %q", in, out, want)
		}
	}
}

func TestProbeSearchPaths(t *testing.T) {
	tmp := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(tmp, "main.c"), []byte("int x;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(tmp, "does-not-exist")

	// The probe records the first search path where the open fails.
	l := NewLoader([]string{tmp, missing}, time.Now())
	_, dir := l.Resolve("main.c", "")
	if dir != missing {
		t.Errorf("expected probe to select %q, got %q", missing, dir)
	}

	// When every probe opens successfully the directory defaults to ".".
	l = NewLoader([]string{tmp}, time.Now())
	_, dir = l.Resolve("main.c", "")
	if dir != "." {
		t.Errorf("expected default directory, got %q", dir)
	}
}

func TestLoadNormalizesLineEndings(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "crt0.s")
	if err := ioutil.WriteFile(path, []byte("line one\r\nline two\r\nlast"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil, time.Now().Add(time.Hour))
	lines, status := l.Load(path)
	if status != StatusOK {
		t.Fatalf("unexpected status %v", status)
	}
	want := []string{"line one", "line two", "last"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// second load must come from the cache
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	lines, status = l.Load(path)
	if status != StatusOK || lines[0] != "line one" {
		t.Errorf("expected cached content, got %q (%v)", lines, status)
	}
}

func TestLoadStatuses(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.c")
	if err := ioutil.WriteFile(path, []byte("int x;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil, time.Now().Add(-time.Hour))
	if _, status := l.Load(path); status != StatusOutdatedFile {
		t.Errorf("expected outdated status, got %v", status)
	}

	l = NewLoader(nil, time.Now().Add(time.Hour))
	if _, status := l.Load(filepath.Join(tmp, "missing.c")); status != StatusNoFile {
		t.Errorf("expected no file status, got %v", status)
	}
}
