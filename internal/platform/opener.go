// Package platform covers the OS-specific pieces of the program, currently
// just revealing the download folder in the native file manager.
package platform

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// Operating system identities, as reported by runtime.GOOS
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
)

// Open-folder commands per platform
const (
	explorerCommand = "explorer"
	openCommand     = "open"
	xdgOpenCommand  = "xdg-open"
)

// Opener reveals a directory in the platform file manager. The command
// runner is injected so the dispatch can be tested without spawning
// anything.
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			// Start, not Run: the file manager outlives us and explorer
			// in particular reports nonzero exit codes on success
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches the file manager on dir. Best effort: the caller reports
// failures and moves on.
func (o *Opener) Open(dir string) error {
	var name string
	switch o.goos {
	case OSWindows:
		name = explorerCommand
	case OSDarwin:
		name = openCommand
	default:
		name = xdgOpenCommand
	}

	slog.Debug("opening folder", "dir", dir, "command", name)
	return o.run(name, dir)
}
