// Package bootstrap собирает диспетчер навыка из настроек.
package bootstrap

import (
	"context"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/apl"
	"github.com/wurt83ow/video-skill/internal/config"
	"github.com/wurt83ow/video-skill/internal/i18n"
	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/media"
	"github.com/wurt83ow/video-skill/internal/playlist"
	"github.com/wurt83ow/video-skill/internal/skill"
)

// NewDispatcher подключается к S3 и собирает диспетчер.
func NewDispatcher(ctx context.Context, cfg config.Config) (*skill.Dispatcher, error) {
	signer, err := media.NewS3SignerFromEnv(ctx, cfg.Region, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	return Build(cfg, signer)
}

// Build собирает диспетчер с заданным источником подписанных ссылок.
func Build(cfg config.Config, signer playlist.Signer) (*skill.Dispatcher, error) {
	items, err := playlist.Load(cfg.PlaylistPath)
	if err != nil {
		return nil, err
	}

	document, err := apl.LoadDocument(cfg.DocumentPath)
	if err != nil {
		return nil, err
	}

	resolver := i18n.NewResolver(languages(cfg.LanguagesDir))

	d := skill.NewDispatcher(resolver, cfg.DefaultLocale)
	skill.New(
		playlist.NewCatalog(items, signer),
		document,
		skill.Options{LegacySelectionRange: cfg.LegacySelectionRange},
	).Register(d)

	logger.Log.Info("skill is ready",
		zap.Int("videos", len(items)),
		zap.String("bucket", cfg.Bucket),
		zap.String("default_locale", cfg.DefaultLocale),
		zap.Bool("legacy_selection_range", cfg.LegacySelectionRange),
	)
	return d, nil
}

func languages(dir string) fs.FS {
	if dir == "" {
		return i18n.Embedded()
	}
	return os.DirFS(dir)
}
