package skill

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/i18n"
	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
)

// LogRequest пишет входящий запрос в лог.
func LogRequest(_ context.Context, in Input) error {
	req := in.Request()
	logger.Log.Debug("skill request",
		zap.String("turn", in.TurnID),
		zap.String("request_id", req.RequestID),
		zap.String("type", req.Type),
		zap.String("intent", req.IntentName()),
		zap.Any("request", req),
	)
	return nil
}

// LogResponse пишет готовый ответ в лог.
func LogResponse(_ context.Context, in Input, resp *models.ResponseEnvelope) {
	logger.Log.Debug("skill response",
		zap.String("turn", in.TurnID),
		zap.Any("response", resp.Response),
	)
}

// CatchAll — обработчик ошибок по умолчанию: пишет ошибку в лог со всем
// контекстом запроса и просит пользователя повторить, не закрывая сессию.
func CatchAll(_ context.Context, in Input, err error) models.Response {
	req := in.Request()
	fields := []zap.Field{
		zap.String("turn", in.TurnID),
		zap.String("request_id", req.RequestID),
		zap.String("type", req.Type),
		zap.String("intent", req.IntentName()),
		zap.String("locale", req.Locale),
		zap.Error(err),
	}

	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) && handlerErr.Stack != nil {
		fields = append(fields, zap.ByteString("stack", handlerErr.Stack))
	}
	logger.Log.Error("request handling failed", fields...)

	speech, reprompt := errorPrompts(in.Prompts)
	return NewBuilder().Speak(speech).Ask(reprompt).Response()
}

func errorPrompts(prompts i18n.Prompts) (string, string) {
	speech, err := prompts.Pick(i18n.KeyError)
	if err != nil {
		speech, _ = i18n.Builtin.Pick(i18n.KeyError)
	}
	reprompt, err := prompts.Pick(i18n.KeyErrorReprompt)
	if err != nil {
		reprompt, _ = i18n.Builtin.Pick(i18n.KeyErrorReprompt)
	}
	return speech, reprompt
}
