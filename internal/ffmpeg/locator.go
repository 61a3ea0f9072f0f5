// Package ffmpeg locates the ffmpeg executable used by the download
// library for merging and transcoding. This program never invokes ffmpeg
// itself; it only resolves a path and hands it over.
package ffmpeg

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// FallbackCommand is the bare command name used when no install is found.
// The download library then relies on the system search path, and merged
// output degrades to whatever single format is available.
const FallbackCommand = "ffmpeg"

// Known Windows install locations probed when the search path has no
// ffmpeg. On other systems the search path lookup is the realistic hit.
var defaultCandidates = []string{
	"C:/YT/ffmpeg/bin/ffmpeg.exe",
	"C:/YT/ffmpeg/ffmpeg.exe",
	"C:/ffmpeg/bin/ffmpeg.exe",
	"C:/ffmpeg/ffmpeg.exe",
}

// Locator resolves the ffmpeg executable path.
type Locator struct {
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
	candidates []string
}

func NewLocator() *Locator {
	return &Locator{
		lookPath:   exec.LookPath,
		stat:       os.Stat,
		candidates: defaultCandidates,
	}
}

// Locate returns the path of the first ffmpeg install found and true, or
// "" and false if none exists. A search path hit beats every fixed
// candidate; among candidates, earlier entries win. Absence is a normal
// outcome, not an error.
func (l *Locator) Locate() (string, bool) {
	if path, err := l.lookPath(FallbackCommand); err == nil {
		slog.Debug("found ffmpeg on search path", "path", path)
		return path, true
	}

	for _, candidate := range l.candidates {
		info, err := l.stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		resolved, err := filepath.Abs(candidate)
		if err != nil {
			resolved = candidate
		}
		slog.Debug("found ffmpeg at known location", "path", resolved)
		return resolved, true
	}

	slog.Debug("ffmpeg not found")
	return "", false
}
