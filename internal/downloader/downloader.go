// Package downloader wraps the go-ytdlp library, which manages the actual
// yt-dlp binary. All network I/O, extraction and merging happen inside the
// library; this package only translates requests into its options and
// classifies its failures.
package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/lrstanley/go-ytdlp"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/yt-grabber/config"
)

// ErrDownload marks failures reported by yt-dlp itself (bad URL, removed
// video, geo block), as opposed to failures running it at all.
var ErrDownload = fmt.Errorf("download failed")

// Downloader runs single-URL downloads through go-ytdlp.
type Downloader struct {
	ffmpegPath  string
	audio       config.DownloadConfig
	progressOut io.Writer
	run         func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error)
}

// New creates a Downloader. ffmpegPath may be empty, in which case the
// library falls back to the system search path and unmerged output.
func New(cfg *config.Config, ffmpegPath string) *Downloader {
	return &Downloader{
		ffmpegPath:  ffmpegPath,
		audio:       cfg.Download,
		progressOut: ansi.NewAnsiStdout(),
		run: func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error) {
			return cmd.Run(ctx, url)
		},
	}
}

// Download fetches a single URL into dir and returns the path of the
// downloaded file when the library reports one. Library-reported failures
// wrap ErrDownload; anything else is returned as-is.
func (d *Downloader) Download(ctx context.Context, url string, audioOnly bool, dir string) (string, error) {
	opts := BuildOptions(BuildParams{
		AudioOnly:    audioOnly,
		FFmpegPath:   d.ffmpegPath,
		Dir:          dir,
		AudioFormat:  d.audio.AudioFormat,
		AudioQuality: d.audio.AudioQuality,
	})

	cmd := command(opts)

	var bar *progressbar.ProgressBar
	if d.progressOut != nil {
		bar = newProgressBar(d.progressOut)
		cmd.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			if update.TotalBytes > 0 {
				bar.ChangeMax64(int64(update.TotalBytes))
			}
			_ = bar.Set64(int64(update.DownloadedBytes))
		})
	}

	slog.Debug("invoking yt-dlp", "url", url, "format", opts.Format, "output", opts.OutputTemplate)

	result, err := d.run(ctx, cmd, url)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(d.progressOut)
	}

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if result != nil {
			// yt-dlp ran and reported the failure itself
			return "", fmt.Errorf("%w: %v", ErrDownload, err)
		}
		return "", fmt.Errorf("running yt-dlp: %w", err)
	}

	return downloadedFile(result), nil
}

// command translates Options into a go-ytdlp invocation.
func command(opts Options) *ytdlp.Command {
	cmd := ytdlp.New().
		Output(opts.OutputTemplate).
		Format(opts.Format)

	if opts.IgnoreErrors {
		cmd = cmd.IgnoreErrors()
	}
	if opts.RestrictFilenames {
		cmd = cmd.RestrictFilenames()
	}
	if opts.FFmpegLocation != "" {
		cmd = cmd.FFmpegLocation(opts.FFmpegLocation)
	}
	if opts.AudioOnly {
		cmd = cmd.ExtractAudio().
			AudioFormat(opts.AudioFormat).
			AudioQuality(opts.AudioQuality)
	}

	return cmd
}

func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription("[cyan]Downloading...[reset]"),
	)
}

// downloadedFile pulls the output path out of the library result, if any.
func downloadedFile(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Filename == nil {
		return ""
	}
	return *info[0].Filename
}
