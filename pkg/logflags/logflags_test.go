package logflags

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMakeLogger(t *testing.T) {
	entry := makeLogger(false, logrus.Fields{"layer": "symdb"})
	if entry.Logger.Level != logrus.PanicLevel {
		t.Fatalf("expected level to be <%v>; but was <%v>", logrus.PanicLevel, entry.Logger.Level)
	}

	entry = makeLogger(true, logrus.Fields{"layer": "symdb"})
	if entry.Logger.Level != logrus.DebugLevel {
		t.Fatalf("expected level to be <%v>; but was <%v>", logrus.DebugLevel, entry.Logger.Level)
	}
	if entry.Data["layer"] != "symdb" {
		t.Fatalf("expected layer field to be symdb; but was <%v>", entry.Data["layer"])
	}
}

func TestSetup(t *testing.T) {
	defer func() {
		symdb = false
		srcfile = false
		dwinfo = false
	}()

	if err := Setup(false, "srcfile"); err == nil {
		t.Fatal("expected error for --log-output without --log")
	}

	if err := Setup(true, "symdb,srcfile"); err != nil {
		t.Fatal(err)
	}
	if !SymDB() || !SrcFile() || DWInfo() {
		t.Fatalf("wrong flags after Setup: symdb=%v srcfile=%v dwinfo=%v", SymDB(), SrcFile(), DWInfo())
	}
}
