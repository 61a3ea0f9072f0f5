package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jaki95/yt-grabber/config"
	"github.com/jaki95/yt-grabber/internal/downloader"
	"github.com/jaki95/yt-grabber/internal/ffmpeg"
	"github.com/jaki95/yt-grabber/internal/platform"
	"github.com/jaki95/yt-grabber/internal/session"
)

func main() {
	// Load configuration; a missing file just means defaults
	cfg, err := config.Load("./config/config.yaml")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Best-effort update of the managed yt-dlp binary
	if err := downloader.NewUpdater().Update(ctx); err != nil {
		slog.Warn("yt-dlp update failed, continuing with the current version", "error", err)
	}

	// Check for ffmpeg once at startup
	ffmpegPath, found := ffmpeg.NewLocator().Locate()
	if found {
		fmt.Println("ffmpeg found. Video and audio will be merged.")
	} else {
		fmt.Println(strings.Repeat("=", 40))
		fmt.Println("NOTE: ffmpeg was not found.")
		fmt.Println("Video and audio will not be merged; you may end up with separate or partial files.")
		fmt.Println(strings.Repeat("=", 40))
	}

	sess := session.New(cfg, downloader.New(cfg, ffmpegPath), platform.NewOpener())
	if err := sess.Run(ctx); err != nil {
		slog.Error("Session failed", "error", err)
		os.Exit(1)
	}
}
