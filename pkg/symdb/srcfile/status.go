package srcfile

// Status describes the availability of a compile unit's source file on
// the host filesystem.
type Status int

const (
	// StatusOK means the source file was found and is not newer than
	// the executable.
	StatusOK Status = iota
	// StatusNoFile means the resolved path could not be opened.
	StatusNoFile
	// StatusOutdatedFile means the source file was modified after the
	// executable was built.
	StatusOutdatedFile
	// StatusNoFileInfo means the resolved path could not be examined
	// at all.
	StatusNoFileInfo
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoFile:
		return "no file"
	case StatusOutdatedFile:
		return "outdated file"
	case StatusNoFileInfo:
		return "no file info"
	}
	return "unknown"
}
