// Package session implements the interactive prompt loop: ask for a URL,
// destination and mode, hand the request to the downloader, report the
// outcome, reveal the folder, repeat until the user stops.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jaki95/yt-grabber/config"
	"github.com/jaki95/yt-grabber/internal/downloader"
)

// Downloader fetches a single URL into dir, returning the downloaded file
// path when known.
type Downloader interface {
	Download(ctx context.Context, url string, audioOnly bool, dir string) (string, error)
}

// FolderOpener reveals a directory in the file manager.
type FolderOpener interface {
	Open(dir string) error
}

// Responses that end the loop at the continue prompt, matched
// case-insensitively. Includes the Arabic "no".
var stopTokens = map[string]struct{}{
	"no": {},
	"n":  {},
	"لا": {},
}

// Session runs the prompt loop. The destination directory persists across
// iterations once overridden; everything else is per-request.
type Session struct {
	in         *bufio.Reader
	out        io.Writer
	downloader Downloader
	opener     FolderOpener
	dir        string
	mkdirAll   func(path string, perm os.FileMode) error
}

func New(cfg *config.Config, dl Downloader, opener FolderOpener) *Session {
	return &Session{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		downloader: dl,
		opener:     opener,
		dir:        cfg.Download.Dir,
		mkdirAll:   os.MkdirAll,
	}
}

// Run loops until the user asks to stop or stdin closes. No download
// failure ever ends the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.banner()

		url, err := s.readLine("1. Enter the video or playlist URL: ")
		if err != nil {
			return nil
		}
		if url == "" {
			fmt.Fprintln(s.out, "No URL entered. Returning to the start.")
			continue
		}

		override, err := s.readLine(fmt.Sprintf("2. Current save path: [%s]\n   Press Enter to keep it, or type a new path: ", s.dir))
		if err != nil {
			return nil
		}
		if override != "" {
			s.dir = override
		}

		audioOnly, err := s.promptMode()
		if err != nil {
			return nil
		}

		if err := s.mkdirAll(s.dir, 0755); err != nil {
			slog.Error("failed to create save folder", "dir", s.dir, "error", err)
			fmt.Fprintf(s.out, "Failed to create save folder: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "File(s) will be saved in: %s\n", s.dir)

		s.download(ctx, url, audioOnly)

		stop, err := s.askContinue()
		if err != nil {
			return nil
		}
		if stop {
			fmt.Fprintln(s.out, "Thank you for using the tool. Goodbye.")
			return nil
		}

		fmt.Fprintln(s.out, strings.Repeat("#", 50))
	}
}

// promptMode reads the download mode, reprompting until it gets one of the
// two accepted tokens.
func (s *Session) promptMode() (audioOnly bool, err error) {
	for {
		mode, err := s.readLine("3. Download type? (v = video+audio, a = audio only): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(mode) {
		case "v":
			return false, nil
		case "a":
			return true, nil
		default:
			fmt.Fprintln(s.out, "Invalid input. Please enter 'v' or 'a'.")
		}
	}
}

func (s *Session) download(ctx context.Context, url string, audioOnly bool) {
	id := uuid.New().String()
	slog.Info("starting download",
		"request_id", id,
		"url", url,
		"audio_only", audioOnly,
		"dir", s.dir,
	)

	file, err := s.downloader.Download(ctx, url, audioOnly, s.dir)
	switch {
	case err == nil:
		slog.Info("download complete", "request_id", id, "file", file)
		fmt.Fprintln(s.out, strings.Repeat("=", 40))
		fmt.Fprintln(s.out, "Download operations complete!")
		if file != "" {
			fmt.Fprintf(s.out, "Saved: %s\n", file)
		}
		fmt.Fprintln(s.out, strings.Repeat("=", 40))
		s.openFolder()
	case errors.Is(err, downloader.ErrDownload):
		slog.Error("download failed", "request_id", id, "error", err)
		fmt.Fprintln(s.out, "Download failed. Check the URL is correct and that the downloader is up to date.")
		fmt.Fprintf(s.out, "Error details: %v\n", err)
	default:
		slog.Error("unexpected error during download", "request_id", id, "error", err)
		fmt.Fprintf(s.out, "An unexpected error occurred: %v\n", err)
	}
}

func (s *Session) openFolder() {
	fmt.Fprintf(s.out, "Opening download folder: %s\n", s.dir)
	if err := s.opener.Open(s.dir); err != nil {
		slog.Warn("failed to open download folder", "dir", s.dir, "error", err)
		fmt.Fprintf(s.out, "Failed to open download folder: %v\n", err)
	}
}

func (s *Session) askContinue() (stop bool, err error) {
	answer, err := s.readLine("\nDownload another? (press Enter to continue, or 'no' to exit): ")
	if err != nil {
		return true, err
	}
	_, stop = stopTokens[strings.ToLower(answer)]
	return stop, nil
}

func (s *Session) banner() {
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
	fmt.Fprintln(s.out, "        YT-DLP Interactive Downloader")
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
}

// readLine prompts and reads one trimmed line. An error means stdin is
// closed and the loop should wind down.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
