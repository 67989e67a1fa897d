// Package srcfile locates and loads the source files named by debug
// information. Resolution is tolerant by design: a missing or stale
// file is recorded as a status on the owning compile unit, never as an
// error.
package srcfile

import (
	"io/ioutil"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/42Bastian/jagsym/pkg/logflags"
)

// sourceCacheSize bounds the number of loaded files kept around.
// Several compile units routinely name the same source or header.
const sourceCacheSize = 32

// Loader resolves and loads compile unit source files.
type Loader struct {
	searchPaths []string
	exeModTime  time.Time
	cache       *lru.Cache // full path -> []string
	logger      logger
}

type logger interface {
	Debugf(format string, args ...interface{})
}

// NewLoader returns a Loader probing searchPaths in order. exeModTime
// is the modification time of the executable the debug info was read
// from; sources newer than it are reported as outdated.
func NewLoader(searchPaths []string, exeModTime time.Time) *Loader {
	cache, _ := lru.New(sourceCacheSize)
	return &Loader{
		searchPaths: searchPaths,
		exeModTime:  exeModTime,
		cache:       cache,
		logger:      logflags.SrcFileLogger(),
	}
}

// Resolve turns the file name and directory recorded in a compile unit
// into a resolved directory and full path.
//
// When no directory is recorded, each search path is probed in order
// by opening searchPath/filename: the first probe whose open fails is
// recorded as the winning directory. The probe is inverted from a
// plain existence check: a path where the open succeeds is skipped.
func (l *Loader) Resolve(filename, dir string) (fullPath, resolvedDir string) {
	if dir == "" {
		dir = l.probeSearchPaths(filename)
	} else {
		dir = rewriteCygdrive(dir)
	}

	filename = conformSlashes(filename)

	if isDriveAbsolute(filename) {
		fullPath = filename
	} else {
		fullPath = dir + string(os.PathSeparator) + filename
	}

	fullPath = collapseDots(conformSlashes(fullPath))
	return fullPath, dir
}

func (l *Loader) probeSearchPaths(filename string) string {
	for _, sp := range l.searchPaths {
		probe := sp + string(os.PathSeparator) + filename
		f, err := os.Open(probe)
		if err != nil {
			l.logger.Debugf("search path %q selected for %q", sp, filename)
			return sp
		}
		f.Close()
	}
	return "."
}

// Load reads the source file at fullPath and splits it into lines.
// Carriage returns are stripped and a missing final newline is
// supplied, so line contents are stable across host line ending
// conventions. The returned status is StatusOK only if lines are
// usable.
func (l *Loader) Load(fullPath string) ([]string, Status) {
	fi, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, StatusNoFile
		}
		return nil, StatusNoFileInfo
	}
	if fi.ModTime().After(l.exeModTime) {
		l.logger.Debugf("source file %q is newer than the executable", fullPath)
		return nil, StatusOutdatedFile
	}

	if cached, ok := l.cache.Get(fullPath); ok {
		return cached.([]string), StatusOK
	}

	data, err := ioutil.ReadFile(fullPath)
	if err != nil {
		return nil, StatusNoFile
	}

	lines := splitLines(data)
	l.cache.Add(fullPath, lines)
	return lines, StatusOK
}

// splitLines normalizes line endings and splits the text into one
// string per line.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r", "")
	if text == "" {
		return nil
	}
	if text[len(text)-1] != '\n' {
		text += "\n"
	}
	lines := strings.Split(text, "\n")
	return lines[:len(lines)-1] // Split leaves a trailing empty element
}
