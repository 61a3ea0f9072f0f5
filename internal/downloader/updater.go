package downloader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lrstanley/go-ytdlp"
)

// Updater keeps the managed yt-dlp binary current. It is strictly best
// effort: the caller logs the returned error and carries on with whatever
// version is already installed.
type Updater struct {
	install    func(ctx context.Context) error
	selfUpdate func(ctx context.Context) error
}

func NewUpdater() *Updater {
	return &Updater{
		install: func(ctx context.Context) error {
			_, err := ytdlp.Install(ctx, nil)
			return err
		},
		selfUpdate: func(ctx context.Context) error {
			_, err := ytdlp.New().Update(ctx)
			return err
		},
	}
}

// Update fetches the yt-dlp binary if absent, then runs its self-update.
func (u *Updater) Update(ctx context.Context) error {
	slog.Info("checking for yt-dlp updates")

	if err := u.install(ctx); err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}

	if err := u.selfUpdate(ctx); err != nil {
		return fmt.Errorf("updating yt-dlp: %w", err)
	}

	slog.Info("yt-dlp is up to date")
	return nil
}
