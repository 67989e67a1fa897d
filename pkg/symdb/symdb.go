// Package symdb builds a queryable symbol database from the debug
// information of an executable: per compile unit type tables, global
// and frame variables with resolved type names, functions with their
// line tables, and the source text the line tables refer to.
package symdb

import (
	"errors"
	"sort"
	"time"

	"github.com/derekparker/trie"

	"github.com/42Bastian/jagsym/pkg/dwarf/dwinfo"
	"github.com/42Bastian/jagsym/pkg/logflags"
	"github.com/42Bastian/jagsym/pkg/symdb/srcfile"
)

var (
	// ErrNoUnit is returned when a compile unit index is out of range.
	ErrNoUnit = errors.New("no compile unit at this index")
	// ErrNoVariable is returned when a variable index is out of range.
	ErrNoVariable = errors.New("no variable at this index")
)

// DebugSymbols is the symbol database of one executable. It is built
// once by Load and is read only afterwards, so it may be shared
// between goroutines without locking.
type DebugSymbols struct {
	units []*CompileUnit

	funcIndex   *trie.Trie
	globalIndex *trie.Trie
}

// Load builds the database from already decoded compile units.
// Source files are resolved against searchPaths and flagged as
// outdated when newer than exeModTime.
func Load(units []*dwinfo.Unit, searchPaths []string, exeModTime time.Time) *DebugSymbols {
	logger := logflags.SymDBLogger()
	loader := srcfile.NewLoader(searchPaths, exeModTime)

	db := &DebugSymbols{
		funcIndex:   trie.New(),
		globalIndex: trie.New(),
	}

	for _, u := range units {
		cu := buildCompileUnit(u, loader, logger)
		db.units = append(db.units, cu)

		// first definition wins when two units carry the same name
		for _, sp := range cu.SubPrograms {
			if _, found := db.funcIndex.Find(sp.Name); !found {
				db.funcIndex.Add(sp.Name, sp)
			}
		}
		for _, v := range cu.Globals {
			if _, found := db.globalIndex.Find(v.Name); !found {
				db.globalIndex.Add(v.Name, v)
			}
		}
	}

	logger.Debugf("loaded %d compile units", len(db.units))
	return db
}

// UnitCount returns the number of compile units in the database.
func (db *DebugSymbols) UnitCount() int {
	return len(db.units)
}

// Unit returns the compile unit at index.
func (db *DebugSymbols) Unit(index int) (*CompileUnit, error) {
	if index < 0 || index >= len(db.units) {
		return nil, ErrNoUnit
	}
	return db.units[index], nil
}

// FunctionByName returns the function with exactly this name.
func (db *DebugSymbols) FunctionByName(name string) (*SubProgram, bool) {
	node, ok := db.funcIndex.Find(name)
	if !ok {
		return nil, false
	}
	return node.Meta().(*SubProgram), true
}

// GlobalByName returns the global variable with exactly this name.
func (db *DebugSymbols) GlobalByName(name string) (*Variable, bool) {
	node, ok := db.globalIndex.Find(name)
	if !ok {
		return nil, false
	}
	return node.Meta().(*Variable), true
}

// FunctionsWithPrefix returns the names of all functions starting
// with prefix, sorted.
func (db *DebugSymbols) FunctionsWithPrefix(prefix string) []string {
	names := db.funcIndex.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// GlobalsWithPrefix returns the names of all global variables
// starting with prefix, sorted.
func (db *DebugSymbols) GlobalsWithPrefix(prefix string) []string {
	names := db.globalIndex.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}
