// Package browse implements interactive selection of a package file under a
// mount root.
package browse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conn-castle/sideload/internal/messages"
)

// packageSuffix is the package file extension, matched case-insensitively.
const packageSuffix = ".zip"

// upEntry is the synthetic first entry at every directory level.
const upEntry = "../"

// Kind tags a browse outcome.
type Kind int

const (
	// Selected means the user picked a package file; Result.Path holds it.
	Selected Kind = iota
	// Cancelled means the user backed out or input was interrupted.
	Cancelled
	// WentHome means the user asked to return to the main menu.
	WentHome
)

// Result is the outcome of one browse call, threaded explicitly through each
// recursion level instead of sentinel strings.
type Result struct {
	Kind Kind
	Path string
}

// SelectionKind tags a menu outcome.
type SelectionKind int

const (
	// Chose means the user picked an item; Selection.Index holds it.
	Chose SelectionKind = iota
	// Interrupted means the input wait was interrupted.
	Interrupted
	// GoHome means the user asked for the main menu.
	GoHome
	// GoBack means the user asked to leave the current menu.
	GoBack
)

// Selection is what a menu returns: an item index or a sentinel.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// MenuPresenter renders a menu and blocks for a selection. wrap asks the
// presenter to wrap cursor movement past either end of the list; presenters
// whose widget always wraps may ignore it.
type MenuPresenter interface {
	ShowMenu(headers []string, items []string, initial int, wrap bool) (Selection, error)
}

// Printer prints user-visible messages.
type Printer interface {
	Print(format string, args ...any)
}

// Browse walks the directory tree under root until the user selects a package
// file, asks for the main menu, or cancels. There is no time limit; the walk
// suspends at each menu read.
func Browse(root string, menu MenuPresenter, ui Printer) (Result, error) {
	result, _, err := browseDir(root, menu, ui)
	return result, err
}

// browseDir presents one directory level. stop reports whether the result
// must propagate through every recursion level (selection, go-home, or an
// interrupted read); a non-stop Cancelled only ends the current level, so the
// caller keeps browsing one level up.
func browseDir(path string, menu MenuPresenter, ui Printer) (result Result, stop bool, err error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		ui.Print(messages.BrowseOpenDirErrorFmt, path, err)
		return Result{Kind: Cancelled}, false, nil
	}

	var dirs []string
	entries := []string{upEntry} // "../" is always the first entry.
	for _, de := range dirents {
		name := de.Name()
		if de.IsDir() {
			dirs = append(dirs, name+"/")
		} else if de.Type().IsRegular() && strings.HasSuffix(strings.ToLower(name), packageSuffix) {
			entries = append(entries, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(entries)

	// Package files first, then subdirectories.
	entries = append(entries, dirs...)

	headers := []string{messages.BrowseChoosePackage, path}

	chosen := 0
	for {
		sel, err := menu.ShowMenu(headers, entries, chosen, true)
		if err != nil {
			return Result{Kind: Cancelled}, true, err
		}
		switch sel.Kind {
		case Interrupted:
			return Result{Kind: Cancelled}, true, nil
		case GoHome:
			return Result{Kind: WentHome}, true, nil
		case GoBack:
			// Go up but continue browsing at the caller's level.
			return Result{Kind: Cancelled}, false, nil
		}
		chosen = sel.Index
		if sel.Index == 0 {
			return Result{Kind: Cancelled}, false, nil
		}

		item := entries[sel.Index]
		if name, isDir := strings.CutSuffix(item, "/"); isDir {
			sub, stop, err := browseDir(filepath.Join(path, name), menu, ui)
			if stop || err != nil {
				return sub, stop, err
			}
			// An empty or abandoned subdirectory does not exit browsing.
			continue
		}

		return Result{Kind: Selected, Path: filepath.Join(path, item)}, true, nil
	}
}
