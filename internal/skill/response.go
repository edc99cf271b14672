package skill

import (
	"strings"

	"github.com/wurt83ow/video-skill/internal/models"
)

// Builder пошагово собирает ответ навыка.
// Повторный вызов Speak или Ask заменяет предыдущий текст, директивы накапливаются.
type Builder struct {
	resp models.Response
}

// NewBuilder возвращает пустой ответ: ничего не произносится, решение о сессии не принято.
func NewBuilder() *Builder {
	return &Builder{}
}

// Speak задаёт текст, который произнесёт устройство.
func (b *Builder) Speak(text string) *Builder {
	b.resp.OutputSpeech = ssml(text)
	return b
}

// Ask задаёт переспрос и оставляет сессию открытой.
func (b *Builder) Ask(text string) *Builder {
	b.resp.Reprompt = &models.Reprompt{OutputSpeech: *ssml(text)}
	return b.EndSession(false)
}

// AddDirective добавляет директиву для экрана или плеера.
func (b *Builder) AddDirective(d models.Directive) *Builder {
	b.resp.Directives = append(b.resp.Directives, d)
	return b
}

// EndSession явно задаёт, завершается ли сессия после ответа.
func (b *Builder) EndSession(end bool) *Builder {
	b.resp.ShouldEndSession = &end
	return b
}

// Response возвращает собранный ответ.
func (b *Builder) Response() models.Response {
	return b.resp
}

func ssml(text string) *models.OutputSpeech {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "<speak>") {
		text = "<speak>" + text + "</speak>"
	}
	return &models.OutputSpeech{Type: models.TypeSSML, SSML: text}
}
