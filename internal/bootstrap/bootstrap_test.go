package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/video-skill/internal/apl"
	"github.com/wurt83ow/video-skill/internal/config"
	"github.com/wurt83ow/video-skill/internal/media"
	"github.com/wurt83ow/video-skill/internal/models"
	"github.com/wurt83ow/video-skill/internal/playlist/mock"
)

func TestBuild_EmbeddedResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockSigner(ctrl)
	s.EXPECT().SignURL(gomock.Any(), "Media/001.mp4").Return("https://s3/1", nil)
	s.EXPECT().SignURL(gomock.Any(), "Media/002.mp4").Return("https://s3/2", nil)

	d, err := Build(config.Default(), s)
	require.NoError(t, err)

	out := d.Dispatch(context.Background(), &models.RequestEnvelope{
		Request: models.Request{Type: models.TypeLaunchRequest, Locale: "en-US"},
	})
	require.Len(t, out.Response.Directives, 1)

	directive, ok := out.Response.Directives[0].(apl.RenderDocumentDirective)
	require.True(t, ok)
	assert.Equal(t, apl.DefaultDocument(), directive.Document)
	assert.Len(t, directive.Datasources.VideoplayerData.Properties.Playlist, 2)
}

func TestBuild_CustomResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	langDir := filepath.Join(dir, "languages")
	require.NoError(t, os.Mkdir(langDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(langDir, "fr.json"),
		[]byte(`{"HELP": ["aide"], "HELP_REPROMPT": ["et alors ?"]}`), 0o600))
	catalog := filepath.Join(dir, "playlist.toml")
	require.NoError(t, os.WriteFile(catalog, []byte("[[videos]]\nkey = \"x.mp4\"\ntitle = \"X\"\n"), 0o600))

	cfg := config.Default()
	cfg.LanguagesDir = langDir
	cfg.PlaylistPath = catalog

	d, err := Build(cfg, mock.NewMockSigner(ctrl))
	require.NoError(t, err)

	out := d.Dispatch(context.Background(), &models.RequestEnvelope{
		Request: models.Request{
			Type:   models.TypeIntentRequest,
			Locale: "fr-CA",
			Intent: &models.Intent{Name: models.IntentHelp},
		},
	})
	require.NotNil(t, out.Response.OutputSpeech)
	assert.Equal(t, "<speak>aide</speak>", out.Response.OutputSpeech.SSML)
}

func TestBuild_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := config.Default()
	cfg.PlaylistPath = filepath.Join(t.TempDir(), "missing.toml")
	_, err := Build(cfg, mock.NewMockSigner(ctrl))
	assert.Error(t, err)

	cfg = config.Default()
	cfg.DocumentPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = Build(cfg, mock.NewMockSigner(ctrl))
	assert.Error(t, err)
}

func TestNewDispatcher_NoBucket(t *testing.T) {
	_, err := NewDispatcher(context.Background(), config.Default())
	assert.ErrorIs(t, err, media.ErrNoBucket)
}
