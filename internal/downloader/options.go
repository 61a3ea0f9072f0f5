package downloader

import "path/filepath"

// Format selectors handed to yt-dlp.
const (
	formatBestCombined = "bestvideo*+bestaudio/best"
	formatBestAudio    = "bestaudio/best"
)

// Options describes a single download request in library terms. It is a
// plain value: building it performs no validation and no I/O, invalid
// combinations are rejected by yt-dlp itself.
type Options struct {
	// OutputTemplate names downloaded files by title, with the extension
	// chosen by the library once the final format is known.
	OutputTemplate string

	Format string

	// FFmpegLocation is empty when no install was found; the library then
	// relies on the system search path.
	FFmpegLocation string

	// Skip failed items instead of aborting the batch
	IgnoreErrors      bool
	RestrictFilenames bool

	// Audio extraction post-processing, set only in audio-only mode
	AudioOnly    bool
	AudioFormat  string
	AudioQuality string
}

// BuildParams are the inputs to BuildOptions.
type BuildParams struct {
	AudioOnly    bool
	FFmpegPath   string
	Dir          string
	AudioFormat  string
	AudioQuality string
}

// BuildOptions maps a request to yt-dlp options. Pure: the same params
// always produce the same Options.
func BuildOptions(p BuildParams) Options {
	opts := Options{
		OutputTemplate:    filepath.Join(p.Dir, "%(title)s.%(ext)s"),
		Format:            formatBestCombined,
		FFmpegLocation:    p.FFmpegPath,
		IgnoreErrors:      true,
		RestrictFilenames: true,
	}

	if p.AudioOnly {
		opts.Format = formatBestAudio
		opts.AudioOnly = true
		opts.AudioFormat = p.AudioFormat
		opts.AudioQuality = p.AudioQuality
	}

	return opts
}
