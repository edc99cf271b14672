// Package skill выбирает обработчик для запроса голосовой платформы,
// выполняет его и сводит все ошибки к одному локализованному ответу.
package skill

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/i18n"
	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
)

// Input передаётся каждому обработчику: сам запрос, фразы его локали
// и идентификатор хода для логов.
type Input struct {
	Envelope *models.RequestEnvelope
	Prompts  i18n.Prompts
	TurnID   string
}

// Request возвращает тело запроса.
func (in Input) Request() models.Request {
	return in.Envelope.Request
}

// Predicate решает, подходит ли обработчик к запросу.
// Предикат не должен иметь побочных эффектов.
type Predicate func(req models.Request) bool

// Action выполняет обработку запроса.
type Action func(ctx context.Context, in Input) (models.Response, error)

// Handler — пара предиката и действия.
type Handler struct {
	Name      string
	CanHandle Predicate
	Handle    Action
}

// RequestInterceptor вызывается перед выбором обработчика.
type RequestInterceptor func(ctx context.Context, in Input) error

// ResponseInterceptor вызывается для каждого готового ответа, в том числе ответа об ошибке.
type ResponseInterceptor func(ctx context.Context, in Input, resp *models.ResponseEnvelope)

// ErrorHandler превращает любую ошибку обработки в ответ пользователю.
type ErrorHandler func(ctx context.Context, in Input, err error) models.Response

// Localizer загружает таблицу фраз по локали.
type Localizer interface {
	Resolve(locale string) (i18n.Prompts, error)
}

// IsRequestType подходит к запросам указанного типа.
func IsRequestType(requestType string) Predicate {
	return func(req models.Request) bool {
		return req.Type == requestType
	}
}

// IsIntentName подходит к IntentRequest с любым из указанных интентов.
func IsIntentName(names ...string) Predicate {
	return func(req models.Request) bool {
		name := req.IntentName()
		if name == "" {
			return false
		}
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

// Dispatcher хранит упорядоченный список обработчиков и перехватчиков.
// Настраивается до начала обслуживания запросов, после этого только читается,
// поэтому Dispatch можно вызывать из разных горутин.
type Dispatcher struct {
	localizer     Localizer
	defaultLocale string

	handlers             []Handler
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
	onError              ErrorHandler
}

// NewDispatcher возвращает диспетчер без обработчиков.
// defaultLocale используется для ответа об ошибке, если локаль запроса не загрузилась.
func NewDispatcher(localizer Localizer, defaultLocale string) *Dispatcher {
	return &Dispatcher{
		localizer:     localizer,
		defaultLocale: defaultLocale,
		onError:       CatchAll,
	}
}

// Register добавляет обработчики. При совпадении нескольких предикатов
// побеждает зарегистрированный первым.
func (d *Dispatcher) Register(handlers ...Handler) {
	d.handlers = append(d.handlers, handlers...)
}

// UseRequest добавляет перехватчики запроса.
func (d *Dispatcher) UseRequest(interceptors ...RequestInterceptor) {
	d.requestInterceptors = append(d.requestInterceptors, interceptors...)
}

// UseResponse добавляет перехватчики ответа.
func (d *Dispatcher) UseResponse(interceptors ...ResponseInterceptor) {
	d.responseInterceptors = append(d.responseInterceptors, interceptors...)
}

// OnError заменяет обработчик ошибок по умолчанию.
func (d *Dispatcher) OnError(h ErrorHandler) {
	d.onError = h
}

// Dispatch обрабатывает один запрос и всегда возвращает ровно один ответ.
// Паника в предикате, перехватчике или действии превращается в HandlerError
// и попадает в обработчик ошибок, как и обычная ошибка.
func (d *Dispatcher) Dispatch(ctx context.Context, env *models.RequestEnvelope) *models.ResponseEnvelope {
	in := Input{
		Envelope: env,
		TurnID:   uuid.NewString(),
	}

	resp, err := d.process(ctx, &in)
	if err != nil {
		resp = d.handleError(ctx, in, err)
	}

	out := &models.ResponseEnvelope{
		Version:  models.Version,
		Response: resp,
	}
	for i, intercept := range d.responseInterceptors {
		d.interceptResponse(ctx, i, intercept, in, out)
	}
	return out
}

func (d *Dispatcher) process(ctx context.Context, in *Input) (resp models.Response, err error) {
	// stage называет место, где случилась паника.
	stage := "localizer"
	defer func() {
		if r := recover(); r != nil {
			resp = models.Response{}
			err = &HandlerError{
				Handler: stage,
				Err:     fmt.Errorf("panic: %v", r),
				Stack:   debug.Stack(),
			}
		}
	}()

	locale := in.Request().Locale
	logger.Log.Info("resolving prompts", zap.String("locale", locale), zap.String("turn", in.TurnID))

	prompts, err := d.localizer.Resolve(locale)
	if err != nil {
		in.Prompts = d.fallbackPrompts()
		return models.Response{}, err
	}
	in.Prompts = prompts

	for i, intercept := range d.requestInterceptors {
		stage = fmt.Sprintf("request interceptor #%d", i)
		if err := intercept(ctx, *in); err != nil {
			return models.Response{}, err
		}
	}

	req := in.Request()
	for _, h := range d.handlers {
		stage = h.Name + " predicate"
		if !h.CanHandle(req) {
			continue
		}
		stage = h.Name
		return run(ctx, h, *in)
	}
	return models.Response{}, fmt.Errorf("%w: type=%s intent=%s",
		ErrNoHandler, req.Type, req.IntentName())
}

// run выполняет действие обработчика, помечая ошибку его именем.
func run(ctx context.Context, h Handler, in Input) (models.Response, error) {
	resp, err := h.Handle(ctx, in)
	if err != nil {
		return models.Response{}, &HandlerError{Handler: h.Name, Err: err}
	}
	return resp, nil
}

// handleError вызывает обработчик ошибок. Если заменённый через OnError
// обработчик сам паникует, ответ строит CatchAll.
func (d *Dispatcher) handleError(ctx context.Context, in Input, err error) (resp models.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = CatchAll(ctx, in, errors.Join(err, &HandlerError{
				Handler: "error handler",
				Err:     fmt.Errorf("panic: %v", r),
				Stack:   debug.Stack(),
			}))
		}
	}()
	return d.onError(ctx, in, err)
}

// interceptResponse не даёт панике в перехватчике ответа потерять уже готовый ответ.
func (d *Dispatcher) interceptResponse(ctx context.Context, i int, intercept ResponseInterceptor,
	in Input, out *models.ResponseEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("response interceptor panicked",
				zap.Int("interceptor", i),
				zap.String("turn", in.TurnID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	intercept(ctx, in, out)
}

func (d *Dispatcher) fallbackPrompts() i18n.Prompts {
	if d.defaultLocale != "" {
		if prompts, err := d.localizer.Resolve(d.defaultLocale); err == nil {
			return prompts
		}
	}
	return i18n.Builtin
}
