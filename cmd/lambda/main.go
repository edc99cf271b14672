// Package main — точка входа навыка для AWS Lambda.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/bootstrap"
	"github.com/wurt83ow/video-skill/internal/config"
	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
	"github.com/wurt83ow/video-skill/internal/skill"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}

	// диспетчер собирается один раз на холодном старте и переиспользуется всеми вызовами
	dispatcher, err := bootstrap.NewDispatcher(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatal("cannot build skill", zap.Error(err))
	}

	h := &handler{dispatcher: dispatcher}
	if inv, err := newSelfInvoker(context.Background(), os.Getenv("AWS_LAMBDA_FUNCTION_NAME")); err != nil {
		// без клиента Lambda прогревается только вызванный экземпляр
		logger.Log.Warn("warmup self-invoke disabled", zap.Error(err))
	} else {
		h.invoke = inv.Invoke
	}
	lambda.Start(h.handleRequest)
}

type handler struct {
	dispatcher *skill.Dispatcher
	invoke     invoker
}

func (h *handler) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// прогревочные события обрабатываются до разбора запроса навыка
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup, h.invoke)
	}

	var req models.RequestEnvelope
	if err := json.Unmarshal(event, &req); err != nil {
		logger.Log.Debug("cannot decode skill request", zap.Error(err))
		return nil, fmt.Errorf("decode skill request: %w", err)
	}

	return h.dispatcher.Dispatch(ctx, &req), nil
}
