package models

// Типы входящих запросов голосовой платформы.
const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeUserEvent           = "Alexa.Presentation.APL.UserEvent"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

// Имена интентов, которые обрабатывает навык.
const (
	IntentChooseVideo = "ChooseVideoIntent"
	IntentResume      = "AMAZON.ResumeIntent"
	IntentPause       = "AMAZON.PauseIntent"
	IntentNext        = "AMAZON.NextIntent"
	IntentPrevious    = "AMAZON.PreviousIntent"
	IntentCancel      = "AMAZON.CancelIntent"
	IntentStop        = "AMAZON.StopIntent"
	IntentHelp        = "AMAZON.HelpIntent"
	IntentFallback    = "AMAZON.FallbackIntent"

	// SlotVideoNumber содержит произнесённый пользователем номер видео, начиная с единицы.
	SlotVideoNumber = "VideoNumberSlot"
)

// Version — версия формата ответа.
const Version = "1.0"

// RequestEnvelope описывает запрос голосовой платформы.
// См. https://developer.amazon.com/en-US/docs/alexa/custom-skills/request-and-response-json-reference.html
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
	User        User        `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

// Request описывает тело запроса. Набор заполненных полей зависит от Type:
// Intent есть только у IntentRequest, Reason и Error — у SessionEndedRequest,
// Arguments — у пользовательского события APL.
type Request struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId"`
	Timestamp string        `json:"timestamp"`
	Locale    string        `json:"locale"`
	Intent    *Intent       `json:"intent,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Error     *RequestError `json:"error,omitempty"`
	Arguments []any         `json:"arguments,omitempty"`
}

// Intent описывает распознанное намерение пользователя и значения слотов.
type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// RequestError передаётся платформой при завершении сессии из-за ошибки.
type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// IntentName возвращает имя интента или пустую строку, если запрос не IntentRequest.
func (r Request) IntentName() string {
	if r.Type != TypeIntentRequest || r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// SlotValue возвращает значение слота и признак его наличия.
func (r Request) SlotValue(name string) (string, bool) {
	if r.Intent == nil {
		return "", false
	}
	slot, ok := r.Intent.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// ResponseEnvelope описывает ответ навыка.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          Response       `json:"response"`
}

// Response описывает то, что платформа должна произнести и показать.
// ShouldEndSession остаётся nil, если обработчик не принимал решения о сессии.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

const TypeSSML = "SSML"

// OutputSpeech описывает текст, который нужно озвучить.
type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// Directive — инструкция для экрана или плеера устройства.
type Directive interface {
	DirectiveType() string
}

// PlaylistEntry описывает одно видео плейлиста.
type PlaylistEntry struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
