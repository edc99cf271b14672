// Package apl собирает директивы для экрана устройства: документ видеоплеера
// с плейлистом и команды управления плеером.
package apl

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wurt83ow/video-skill/internal/models"
)

const (
	TypeRenderDocument  = "Alexa.Presentation.APL.RenderDocument"
	TypeExecuteCommands = "Alexa.Presentation.APL.ExecuteCommands"

	// Token связывает ExecuteCommands с ранее показанным документом.
	Token = "videoplayer"
	// PlayerComponentID — id компонента Video в документе.
	PlayerComponentID = "videoPlayer"

	// OverlayDelay — пауза перед показом оверлея после смены трека.
	OverlayDelay = 500 * time.Millisecond
)

// ErrIndexOutOfRange возвращается, если номер видео вне плейлиста.
var ErrIndexOutOfRange = errors.New("video index out of range")

// Datasources — источник данных документа видеоплеера.
type Datasources struct {
	VideoplayerData VideoplayerData `json:"videoplayerData"`
}

type VideoplayerData struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
}

type Properties struct {
	Playlist []models.PlaylistEntry `json:"playlist"`
}

// RenderDocumentDirective показывает документ на экране.
type RenderDocumentDirective struct {
	Type        string          `json:"type"`
	Token       string          `json:"token"`
	Document    json.RawMessage `json:"document"`
	Datasources Datasources     `json:"datasources"`
}

func (d RenderDocumentDirective) DirectiveType() string { return d.Type }

// ExecuteCommandsDirective выполняет команды в показанном документе.
type ExecuteCommandsDirective struct {
	Type     string    `json:"type"`
	Token    string    `json:"token"`
	Commands []Command `json:"commands"`
}

func (d ExecuteCommandsDirective) DirectiveType() string { return d.Type }

// SingleVideoPayload возвращает плейлист из одного видео playlist[index].
func SingleVideoPayload(playlist []models.PlaylistEntry, index int) (Datasources, error) {
	if index < 0 || index >= len(playlist) {
		return Datasources{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(playlist))
	}
	return VideoPayload(playlist[index]), nil
}

// VideoPayload возвращает плейлист из одного уже выбранного видео.
func VideoPayload(entry models.PlaylistEntry) Datasources {
	return payload([]models.PlaylistEntry{entry})
}

// AllVideosPayload возвращает весь плейлист в исходном порядке.
func AllVideosPayload(playlist []models.PlaylistEntry) Datasources {
	entries := make([]models.PlaylistEntry, len(playlist))
	copy(entries, playlist)
	return payload(entries)
}

func payload(entries []models.PlaylistEntry) Datasources {
	return Datasources{
		VideoplayerData: VideoplayerData{
			Type: "object",
			Properties: Properties{
				Playlist: entries,
			},
		},
	}
}

// RenderDocument оборачивает документ и данные в директиву.
func RenderDocument(document json.RawMessage, ds Datasources) RenderDocumentDirective {
	return RenderDocumentDirective{
		Type:        TypeRenderDocument,
		Token:       Token,
		Document:    document,
		Datasources: ds,
	}
}
