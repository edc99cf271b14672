package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
)

// Ключи таблицы фраз.
const (
	KeyHelp                    = "HELP"
	KeyHelpReprompt            = "HELP_REPROMPT"
	KeyFallback                = "FALLBACK"
	KeyFallbackReprompt        = "FALLBACK_REPROMPT"
	KeyCancelStopResponse      = "CANCEL_STOP_RESPONSE"
	KeyInvalidVideoNum         = "INVALID_VIDEO_NUM"
	KeyInvalidVideoNumReprompt = "INVALID_VIDEO_NUM_REPROMPT"
	KeyError                   = "ERROR"
	KeyErrorReprompt           = "ERROR_REPROMPT"
)

// ErrMissingPrompt возвращается, если в таблице нет нужного ключа.
var ErrMissingPrompt = errors.New("prompt is missing")

// Variants — упорядоченный список вариантов одной фразы.
// В файле локали значение может быть строкой или массивом строк.
type Variants []string

func (v *Variants) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = Variants{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("prompt must be a string or an array of strings: %w", err)
	}
	*v = list
	return nil
}

// Prompts — таблица локализованных фраз одного запроса.
// После загрузки таблица не изменяется.
type Prompts map[string]Variants

// Variants возвращает все варианты фразы.
func (p Prompts) Variants(key string) (Variants, error) {
	v, ok := p[key]
	if !ok || len(v) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingPrompt, key)
	}
	return v, nil
}

// Pick выбирает случайный вариант фразы с равной вероятностью.
func (p Prompts) Pick(key string) (string, error) {
	v, err := p.Variants(key)
	if err != nil {
		return "", err
	}
	return v[rand.Intn(len(v))], nil
}

// Builtin используется, когда не удалось загрузить ни одну таблицу,
// но пользователю всё равно нужно сообщить об ошибке.
var Builtin = Prompts{
	KeyError:         {"Sorry, something went wrong. Please try again."},
	KeyErrorReprompt: {"Please try again."},
}
