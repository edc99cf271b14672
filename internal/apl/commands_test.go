package apl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerCommand(t *testing.T) {
	t.Run("play shows overlay immediately", func(t *testing.T) {
		d, err := PlayerCommand(Play)
		require.NoError(t, err)
		assert.Equal(t, TypeExecuteCommands, d.DirectiveType())
		assert.Equal(t, Token, d.Token)
		assert.Equal(t, []Command{
			{Type: CommandControlMedia, ComponentID: PlayerComponentID, Command: "play"},
			{Type: CommandShowOverlayShortly},
		}, d.Commands)
	})

	t.Run("pause has no overlay", func(t *testing.T) {
		d, err := PlayerCommand(Pause)
		require.NoError(t, err)
		assert.Equal(t, []Command{
			{Type: CommandControlMedia, ComponentID: PlayerComponentID, Command: "pause"},
		}, d.Commands)
	})

	for _, action := range []PlayerAction{Next, Previous} {
		t.Run(string(action)+" is a three step sequence", func(t *testing.T) {
			d, err := PlayerCommand(action)
			require.NoError(t, err)
			require.Len(t, d.Commands, 1)

			seq := d.Commands[0]
			assert.Equal(t, CommandSequential, seq.Type)
			assert.Equal(t, []Command{
				{Type: CommandControlMedia, ComponentID: PlayerComponentID, Command: string(action)},
				{Type: CommandControlMedia, ComponentID: PlayerComponentID, Command: "play"},
				{Type: CommandShowOverlayShortly, Delay: 500},
			}, seq.Commands)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := PlayerCommand("rewind")
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestPlayerCommand_JSON(t *testing.T) {
	d, err := PlayerCommand(Next)
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "Alexa.Presentation.APL.ExecuteCommands",
		"token": "videoplayer",
		"commands": [{
			"type": "Sequential",
			"commands": [
				{"type": "ControlMedia", "componentId": "videoPlayer", "command": "next"},
				{"type": "ControlMedia", "componentId": "videoPlayer", "command": "play"},
				{"type": "showOverlayShortly", "delay": 500}
			]
		}]
	}`, string(data))
}
