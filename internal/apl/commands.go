package apl

import (
	"errors"
	"fmt"
)

// Типы команд APL.
const (
	CommandControlMedia       = "ControlMedia"
	CommandSequential         = "Sequential"
	CommandShowOverlayShortly = "showOverlayShortly"
)

// PlayerAction — команда плееру.
type PlayerAction string

const (
	Play     PlayerAction = "play"
	Pause    PlayerAction = "pause"
	Next     PlayerAction = "next"
	Previous PlayerAction = "previous"
)

// ErrUnknownCommand возвращается для неизвестной команды плееру.
var ErrUnknownCommand = errors.New("unknown player command")

// Command описывает одну команду APL. Набор полей зависит от Type.
// Delay задаётся в миллисекундах.
type Command struct {
	Type        string    `json:"type"`
	ComponentID string    `json:"componentId,omitempty"`
	Command     string    `json:"command,omitempty"`
	Commands    []Command `json:"commands,omitempty"`
	Delay       int       `json:"delay,omitempty"`
}

func controlMedia(action PlayerAction) Command {
	return Command{
		Type:        CommandControlMedia,
		ComponentID: PlayerComponentID,
		Command:     string(action),
	}
}

// PlayerCommand строит директиву управления плеером.
//
// play запускает воспроизведение и сразу показывает оверлей, pause только
// ставит на паузу. next и previous переключают трек, запускают его и
// показывают оверлей через OverlayDelay.
func PlayerCommand(action PlayerAction) (ExecuteCommandsDirective, error) {
	var commands []Command

	switch action {
	case Play:
		commands = []Command{
			controlMedia(Play),
			{Type: CommandShowOverlayShortly},
		}
	case Pause:
		commands = []Command{
			controlMedia(Pause),
		}
	case Next, Previous:
		commands = []Command{{
			Type: CommandSequential,
			Commands: []Command{
				controlMedia(action),
				controlMedia(Play),
				{Type: CommandShowOverlayShortly, Delay: int(OverlayDelay.Milliseconds())},
			},
		}}
	default:
		return ExecuteCommandsDirective{}, fmt.Errorf("%w: %q", ErrUnknownCommand, action)
	}

	return ExecuteCommandsDirective{
		Type:     TypeExecuteCommands,
		Token:    Token,
		Commands: commands,
	}, nil
}
