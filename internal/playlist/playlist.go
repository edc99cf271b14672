// Package playlist хранит статический каталог видео и превращает его
// в плейлист с подписанными ссылками на каждый ход диалога.
package playlist

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/logger"
	"github.com/wurt83ow/video-skill/internal/models"
)

//go:embed playlist.toml
var defaultCatalog []byte

var (
	// ErrEmptyPlaylist возвращается, если в плейлисте не осталось ни одного видео.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrNoSuchVideo возвращается, если в каталоге нет видео с таким номером.
	ErrNoSuchVideo = errors.New("no such video in catalog")
)

// Signer выдаёт ссылку с ограниченным сроком действия на объект хранилища.
type Signer interface {
	SignURL(ctx context.Context, objectKey string) (string, error)
}

// Item — запись каталога: ключ объекта в хранилище и подписи для экрана.
type Item struct {
	Key      string `toml:"key"`
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
}

type catalogFile struct {
	Videos []Item `toml:"videos"`
}

// SignError описывает видео, для которого не удалось получить ссылку.
type SignError struct {
	Key string
	Err error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("sign url for %s: %v", e.Key, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

// Parse разбирает каталог в формате TOML.
func Parse(data []byte) ([]Item, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Videos) == 0 {
		return nil, ErrEmptyPlaylist
	}
	for i, item := range f.Videos {
		if item.Key == "" {
			return nil, fmt.Errorf("video #%d: key is required", i+1)
		}
		if item.Title == "" {
			return nil, fmt.Errorf("video #%d: title is required", i+1)
		}
	}
	return f.Videos, nil
}

// Load читает каталог из файла. Пустой путь означает встроенный каталог.
func Load(path string) ([]Item, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Catalog — неизменяемый каталог видео, общий для всех запросов.
type Catalog struct {
	items  []Item
	signer Signer
}

// NewCatalog возвращает каталог, подписывающий ссылки через signer.
func NewCatalog(items []Item, signer Signer) *Catalog {
	return &Catalog{items: items, signer: signer}
}

// Len возвращает число видео в каталоге.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Resolve подписывает ссылки на все видео каталога, сохраняя порядок.
// Видео, для которых подписать ссылку не удалось, в плейлист не попадают:
// нерабочая ссылка хуже отсутствующего видео. Если не осталось ни одного
// видео, возвращается ErrEmptyPlaylist вместе с причинами.
func (c *Catalog) Resolve(ctx context.Context) ([]models.PlaylistEntry, error) {
	entries := make([]models.PlaylistEntry, 0, len(c.items))
	var failures []error

	for _, item := range c.items {
		entry, err := c.sign(ctx, item)
		if err != nil {
			logger.Log.Warn("video dropped from playlist", zap.String("key", item.Key), zap.Error(err))
			failures = append(failures, err)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, errors.Join(append([]error{ErrEmptyPlaylist}, failures...)...)
	}
	return entries, nil
}

// Entry подписывает ссылку только на видео index (с нуля) в порядке каталога.
// Номера не сдвигаются, даже если соседние видео подписать не удаётся.
func (c *Catalog) Entry(ctx context.Context, index int) (models.PlaylistEntry, error) {
	if index < 0 || index >= len(c.items) {
		return models.PlaylistEntry{}, fmt.Errorf("%w: %d of %d", ErrNoSuchVideo, index, len(c.items))
	}
	return c.sign(ctx, c.items[index])
}

func (c *Catalog) sign(ctx context.Context, item Item) (models.PlaylistEntry, error) {
	url, err := c.signer.SignURL(ctx, item.Key)
	if err == nil && url == "" {
		err = errors.New("signer returned empty url")
	}
	if err != nil {
		return models.PlaylistEntry{}, &SignError{Key: item.Key, Err: err}
	}
	return models.PlaylistEntry{
		URL:      url,
		Title:    item.Title,
		Subtitle: item.Subtitle,
	}, nil
}
