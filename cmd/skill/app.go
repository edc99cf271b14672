package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
	"github.com/wurt83ow/video-skill/internal/skill"
)

// app инкапсулирует в себя все зависимости и логику приложения
type app struct {
	dispatcher *skill.Dispatcher
}

// newApp принимает на вход внешние зависимости приложения и возвращает новый объект app
func newApp(d *skill.Dispatcher) *app {
	return &app{dispatcher: d}
}

// routes возвращает роутер со всеми хендлерами и middleware
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	// обернём хендлеры в middleware с логгированием и поддержкой gzip
	r.Use(logger.RequestLogger)
	r.Use(gzipMiddleware)

	r.Post("/", a.webhook)
	r.Post("/webhook", a.webhook)
	r.Get("/healthz", a.healthz)
	return r
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logger.Log.Debug("decoding request")
	var req models.RequestEnvelope
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// без типа запроса это не запрос голосовой платформы
	if req.Request.Type == "" {
		logger.Log.Debug("request type is missing")
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	// диспетчер всегда возвращает ответ, ошибки обработки уже превращены в ответ пользователю
	resp := a.dispatcher.Dispatch(ctx, &req)

	w.Header().Set("Content-Type", "application/json")

	// сериализуем ответ сервера
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}

func (a *app) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
