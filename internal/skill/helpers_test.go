package skill

import (
	"context"
	"encoding/json"
	"testing/fstest"

	"github.com/wurt83ow/video-skill/internal/i18n"
	"github.com/wurt83ow/video-skill/internal/models"
)

// Во всех тестовых таблицах по одному варианту фразы, чтобы ответы были предсказуемы.
const testPrompts = `{
	"HELP": ["help speech"],
	"HELP_REPROMPT": ["help reprompt"],
	"FALLBACK": ["fallback speech"],
	"FALLBACK_REPROMPT": ["fallback reprompt"],
	"CANCEL_STOP_RESPONSE": ["goodbye"],
	"INVALID_VIDEO_NUM": ["pick between %d and %d"],
	"INVALID_VIDEO_NUM_REPROMPT": ["which video"],
	"ERROR": "error speech",
	"ERROR_REPROMPT": "error reprompt"
}`

func testResolver() *i18n.Resolver {
	return i18n.NewResolver(fstest.MapFS{
		"en.json":    {Data: []byte(testPrompts)},
		"de-DE.json": {Data: []byte(`{"ERROR": "fehler", "ERROR_REPROMPT": "nochmal"}`)},
	})
}

var testDocument = json.RawMessage(`{"type":"APL"}`)

var testPlaylist = staticPlaylist{
	{URL: "https://s3/1", Title: "Video 1 Title", Subtitle: "Video 1 Subtitle"},
	{URL: "https://s3/2", Title: "Video 2 Title", Subtitle: "Video 2 Subtitle"},
}

type staticPlaylist []models.PlaylistEntry

func (p staticPlaylist) Resolve(context.Context) ([]models.PlaylistEntry, error) {
	return p, nil
}

func (p staticPlaylist) Len() int { return len(p) }

func (p staticPlaylist) Entry(_ context.Context, index int) (models.PlaylistEntry, error) {
	return p[index], nil
}

// failingPlaylist знает размер каталога, но не может подписать ни одной ссылки.
type failingPlaylist struct {
	err  error
	size int
}

func (p failingPlaylist) Resolve(context.Context) ([]models.PlaylistEntry, error) {
	return nil, p.err
}

func (p failingPlaylist) Len() int { return p.size }

func (p failingPlaylist) Entry(context.Context, int) (models.PlaylistEntry, error) {
	return models.PlaylistEntry{}, p.err
}

func envelope(requestType, locale string) *models.RequestEnvelope {
	return &models.RequestEnvelope{
		Version: "1.0",
		Session: models.Session{SessionID: "session-1"},
		Request: models.Request{
			Type:      requestType,
			RequestID: "request-1",
			Locale:    locale,
		},
	}
}

func intentEnvelope(name string, slots map[string]models.Slot) *models.RequestEnvelope {
	env := envelope(models.TypeIntentRequest, "en-US")
	env.Request.Intent = &models.Intent{Name: name, Slots: slots}
	return env
}

func speechOf(resp models.Response) string {
	if resp.OutputSpeech == nil {
		return ""
	}
	return resp.OutputSpeech.SSML
}

func repromptOf(resp models.Response) string {
	if resp.Reprompt == nil {
		return ""
	}
	return resp.Reprompt.OutputSpeech.SSML
}
