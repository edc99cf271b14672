// пакеты исполняемых приложений должны называться main
package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/bootstrap"
	"github.com/wurt83ow/video-skill/internal/logger"
)

// функция main вызывается автоматически при запуске приложения
func main() {
	if err := parseFlags(); err != nil {
		panic(err)
	}

	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	// собираем диспетчер навыка: плейлист, локали, документ APL и подпись ссылок S3
	dispatcher, err := bootstrap.NewDispatcher(context.Background(), cfg)
	if err != nil {
		return err
	}

	appInstance := newApp(dispatcher)

	srv := &http.Server{
		Addr:              cfg.RunAddr,
		Handler:           appInstance.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Log.Info("Running server", zap.String("address", cfg.RunAddr))
	return srv.ListenAndServe()
}
