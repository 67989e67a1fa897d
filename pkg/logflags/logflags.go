package logflags

import (
	"errors"
	"io/ioutil"
	"log"
	"strings"

	"github.com/sirupsen/logrus"
)

var symdb = false
var srcfile = false
var dwinfo = false

func makeLogger(flag bool, fields logrus.Fields) *logrus.Entry {
	logger := logrus.New().WithFields(fields)
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.PanicLevel
	}
	return logger
}

// SymDB returns true if the symbol database builder should log.
func SymDB() bool {
	return symdb
}

// SymDBLogger returns a logger for the symbol database builder.
func SymDBLogger() *logrus.Entry {
	return makeLogger(symdb, logrus.Fields{"layer": "symdb"})
}

// SrcFile returns true if the source file loader should log.
func SrcFile() bool {
	return srcfile
}

// SrcFileLogger returns a logger for the source file loader.
func SrcFileLogger() *logrus.Entry {
	return makeLogger(srcfile, logrus.Fields{"layer": "srcfile"})
}

// DWInfo returns true if the debug info reader adapter should log its
// recoverable errors.
func DWInfo() bool {
	return dwinfo
}

// DWInfoLogger returns a logger for the debug info reader adapter.
func DWInfoLogger() *logrus.Entry {
	return makeLogger(dwinfo, logrus.Fields{"layer": "dwinfo"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets logging flags based on the contents of logstr.
func Setup(logFlag bool, logstr string) error {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(ioutil.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "symdb"
	}
	v := strings.Split(logstr, ",")
	for _, logcmd := range v {
		switch logcmd {
		case "symdb":
			symdb = true
		case "srcfile":
			srcfile = true
		case "dwinfo":
			dwinfo = true
		}
	}
	return nil
}
