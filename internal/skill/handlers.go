package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/apl"
	"github.com/wurt83ow/video-skill/internal/i18n"
	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
)

// Playlist выдаёт плейлист с действующими ссылками на текущий ход.
// Номера видео всегда считаются по каталогу: Len и Entry не зависят от того,
// удалось ли подписать остальные видео.
type Playlist interface {
	Resolve(ctx context.Context) ([]models.PlaylistEntry, error)
	Len() int
	Entry(ctx context.Context, index int) (models.PlaylistEntry, error)
}

// Options меняет поведение обработчиков.
type Options struct {
	// LegacySelectionRange воспроизводит старую проверку номера видео,
	// при которой последнее видео плейлиста нельзя выбрать по номеру.
	LegacySelectionRange bool
}

// Skill содержит обработчики видеонавыка.
type Skill struct {
	playlist Playlist
	document json.RawMessage
	opts     Options
}

// New возвращает навык, показывающий видео из playlist в документе document.
func New(playlist Playlist, document json.RawMessage, opts Options) *Skill {
	return &Skill{
		playlist: playlist,
		document: document,
		opts:     opts,
	}
}

// Register подключает к диспетчеру обработчики и перехватчики навыка.
func (s *Skill) Register(d *Dispatcher) {
	d.UseRequest(LogRequest)
	d.UseResponse(LogResponse)
	d.Register(s.Handlers()...)
}

// Handlers возвращает обработчики в порядке регистрации.
func (s *Skill) Handlers() []Handler {
	return []Handler{
		{Name: "Launch", CanHandle: IsRequestType(models.TypeLaunchRequest), Handle: s.launch},
		{Name: "ChooseVideo", CanHandle: IsIntentName(models.IntentChooseVideo), Handle: s.chooseVideo},
		{Name: "Play", CanHandle: IsIntentName(models.IntentResume), Handle: player(apl.Play)},
		{Name: "Pause", CanHandle: IsIntentName(models.IntentPause), Handle: player(apl.Pause)},
		{Name: "Next", CanHandle: IsIntentName(models.IntentNext), Handle: player(apl.Next)},
		{Name: "Previous", CanHandle: IsIntentName(models.IntentPrevious), Handle: player(apl.Previous)},
		{Name: "CancelOrStop", CanHandle: IsIntentName(models.IntentCancel, models.IntentStop), Handle: cancelOrStop},
		{Name: "Help", CanHandle: IsIntentName(models.IntentHelp), Handle: prompt(i18n.KeyHelp, i18n.KeyHelpReprompt)},
		{Name: "UserEvent", CanHandle: IsRequestType(models.TypeUserEvent), Handle: userEvent},
		{Name: "Fallback", CanHandle: IsIntentName(models.IntentFallback), Handle: prompt(i18n.KeyFallback, i18n.KeyFallbackReprompt)},
		{Name: "SessionEnded", CanHandle: IsRequestType(models.TypeSessionEndedRequest), Handle: sessionEnded},
	}
}

// launch показывает весь плейлист.
func (s *Skill) launch(ctx context.Context, _ Input) (models.Response, error) {
	playlist, err := s.playlist.Resolve(ctx)
	if err != nil {
		return models.Response{}, err
	}

	directive := apl.RenderDocument(s.document, apl.AllVideosPayload(playlist))
	return NewBuilder().AddDirective(directive).Response(), nil
}

// chooseVideo показывает одно видео по номеру, названному пользователем.
func (s *Skill) chooseVideo(ctx context.Context, in Input) (models.Response, error) {
	value, ok := in.Request().SlotValue(models.SlotVideoNumber)
	if !ok {
		return models.Response{}, fmt.Errorf("%w: %s", ErrMissingSlot, models.SlotVideoNumber)
	}
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return models.Response{}, fmt.Errorf("parse video number %q: %w", value, err)
	}

	size := s.playlist.Len()
	index := number - 1
	if !s.selectable(index, size) {
		speech, err := in.Prompts.Pick(i18n.KeyInvalidVideoNum)
		if err != nil {
			return models.Response{}, err
		}
		reprompt, err := in.Prompts.Pick(i18n.KeyInvalidVideoNumReprompt)
		if err != nil {
			return models.Response{}, err
		}
		return NewBuilder().
			Speak(fmt.Sprintf(speech, 1, size)).
			Ask(reprompt).
			Response(), nil
	}

	entry, err := s.playlist.Entry(ctx, index)
	if err != nil {
		return models.Response{}, err
	}
	return NewBuilder().AddDirective(apl.RenderDocument(s.document, apl.VideoPayload(entry))).Response(), nil
}

func (s *Skill) selectable(index, size int) bool {
	if s.opts.LegacySelectionRange {
		return index >= 0 && index < size-1
	}
	return index >= 0 && index < size
}

// player возвращает обработчик одной команды плееру. Такие ответы ничего не произносят.
func player(action apl.PlayerAction) Action {
	return func(context.Context, Input) (models.Response, error) {
		directive, err := apl.PlayerCommand(action)
		if err != nil {
			return models.Response{}, err
		}
		return NewBuilder().AddDirective(directive).Response(), nil
	}
}

func cancelOrStop(_ context.Context, in Input) (models.Response, error) {
	speech, err := in.Prompts.Pick(i18n.KeyCancelStopResponse)
	if err != nil {
		return models.Response{}, err
	}
	return NewBuilder().Speak(speech).EndSession(true).Response(), nil
}

// prompt возвращает обработчик, который произносит фразу и переспрашивает.
func prompt(speechKey, repromptKey string) Action {
	return func(_ context.Context, in Input) (models.Response, error) {
		speech, err := in.Prompts.Pick(speechKey)
		if err != nil {
			return models.Response{}, err
		}
		reprompt, err := in.Prompts.Pick(repromptKey)
		if err != nil {
			return models.Response{}, err
		}
		return NewBuilder().Speak(speech).Ask(reprompt).Response(), nil
	}
}

func userEvent(_ context.Context, in Input) (models.Response, error) {
	logger.Log.Debug("user event", zap.String("turn", in.TurnID), zap.Any("arguments", in.Request().Arguments))
	return NewBuilder().Response(), nil
}

func sessionEnded(_ context.Context, in Input) (models.Response, error) {
	req := in.Request()
	fields := []zap.Field{
		zap.String("turn", in.TurnID),
		zap.String("session", in.Envelope.Session.SessionID),
		zap.String("reason", req.Reason),
	}
	if req.Error != nil {
		fields = append(fields, zap.String("error_type", req.Error.Type), zap.String("error_message", req.Error.Message))
	}
	logger.Log.Info("session ended", fields...)
	return NewBuilder().Response(), nil
}
