package apl

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed render-videoplayer.json
var defaultDocument []byte

// DefaultDocument возвращает встроенный документ видеоплеера.
func DefaultDocument() json.RawMessage {
	return json.RawMessage(defaultDocument)
}

// LoadDocument читает документ APL из файла. Документ передаётся в директиву
// без изменений, поэтому проверяется только то, что это корректный JSON.
// Пустой путь означает встроенный документ.
func LoadDocument(path string) (json.RawMessage, error) {
	if path == "" {
		return DefaultDocument(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read APL document %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("APL document %s is not valid JSON", path)
	}
	return json.RawMessage(data), nil
}
