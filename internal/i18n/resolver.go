package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/text/language"
)

//go:embed languages/*.json
var languages embed.FS

// Embedded возвращает встроенный набор файлов локалей.
func Embedded() fs.FS {
	sub, err := fs.Sub(languages, "languages")
	if err != nil {
		// каталог встроен при сборке, ошибка здесь невозможна
		panic(err)
	}
	return sub
}

// LocalizationError возвращается, если нет ни файла точной локали, ни файла языка.
type LocalizationError struct {
	Locale string
	Err    error
}

func (e *LocalizationError) Error() string {
	return fmt.Sprintf("no prompts for locale %q: %v", e.Locale, e.Err)
}

func (e *LocalizationError) Unwrap() error {
	return e.Err
}

// Resolver загружает таблицу фраз по локали запроса.
// Каждый файл — JSON-объект "ключ -> строка | массив строк" с именем <локаль>.json.
type Resolver struct {
	fsys fs.FS
}

// NewResolver возвращает Resolver, читающий файлы локалей из fsys.
func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Resolve сначала ищет точную локаль (en-US), затем двухбуквенный язык (en).
// Регистр и разделитель в локали не важны: en-us и en_US найдут en-US.json.
func (r *Resolver) Resolve(locale string) (Prompts, error) {
	prompts, exactErr := r.load(locale)
	if exactErr == nil {
		return prompts, nil
	}

	if canonical := canonicalLocale(locale); canonical != "" && canonical != locale {
		prompts, err := r.load(canonical)
		if err == nil {
			return prompts, nil
		}
		exactErr = errors.Join(exactErr, err)
	}

	base := baseLanguage(locale)
	if base == "" || base == locale {
		return nil, &LocalizationError{Locale: locale, Err: exactErr}
	}

	prompts, baseErr := r.load(base)
	if baseErr != nil {
		return nil, &LocalizationError{Locale: locale, Err: errors.Join(exactErr, baseErr)}
	}
	return prompts, nil
}

func (r *Resolver) load(name string) (Prompts, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid locale name %q", name)
	}

	file := name + ".json"
	data, err := fs.ReadFile(r.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	var prompts Prompts
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return prompts, nil
}

// canonicalLocale приводит тег к виду, в котором названы файлы: en-US.
func canonicalLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	return tag.String()
}

// baseLanguage возвращает двухбуквенный код языка из тега локали.
func baseLanguage(locale string) string {
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	if len(locale) >= 2 {
		return strings.ToLower(locale[:2])
	}
	return ""
}
