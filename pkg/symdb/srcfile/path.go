package srcfile

import (
	"os"
	"strings"
)

const cygdrivePrefix = "/cygdrive/"

// rewriteCygdrive converts a /cygdrive/<letter>/ directory, as emitted
// by cygwin hosted toolchains, to <letter>:/ drive letter form.
func rewriteCygdrive(dir string) string {
	if !strings.HasPrefix(dir, cygdrivePrefix) {
		return dir
	}
	trimmed := dir[len(cygdrivePrefix)-1:] // keep the leading slash: "/c/src"
	if len(trimmed) >= 3 && trimmed[0] == '/' && trimmed[2] == '/' &&
		trimmed[1] >= 'a' && trimmed[1] <= 'z' {
		return string(trimmed[1]) + ":" + trimmed[2:]
	}
	return trimmed
}

// conformSlashes rewrites every path separator to the host's native
// one.
func conformSlashes(p string) string {
	if os.PathSeparator == '\\' {
		return strings.ReplaceAll(p, "/", "\\")
	}
	return strings.ReplaceAll(p, "\\", "/")
}

// isDriveAbsolute reports whether the filename already carries a drive
// letter and therefore needs no directory prepended.
func isDriveAbsolute(filename string) bool {
	return len(filename) > 1 && filename[1] == ':'
}

// collapseDots removes <dir>/../ segments, together with the segment
// they cancel, until none remain. On Windows hosts \.\ and \\ runs are
// cleaned up as well.
func collapseDots(p string) string {
	if os.PathSeparator == '\\' {
		return collapseDotsWindows(p)
	}
	for {
		idx := strings.Index(p, "/../")
		if idx < 0 {
			return p
		}
		j := idx - 1
		for j >= 0 && p[j] != '/' {
			j--
		}
		if j < 0 {
			// no parent segment to cancel
			return p
		}
		p = p[:j+1] + p[idx+4:]
	}
}

func collapseDotsWindows(p string) string {
	for {
		var idx, skip int
		if idx = strings.Index(p, `\..\`); idx >= 0 {
			skip = 4
		} else if idx = strings.Index(p, `\.\`); idx >= 0 {
			skip = 2
		} else if idx = strings.Index(p, `\\`); idx >= 0 {
			skip = 1
		} else {
			return p
		}
		j := idx - 1
		for j >= 0 && p[j] != '\\' && p[j] != ':' {
			j--
		}
		if j < 0 {
			return p
		}
		p = p[:j+1] + p[idx+skip:]
	}
}
