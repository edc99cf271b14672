package skill

import (
	"errors"
	"fmt"
)

// ErrNoHandler означает, что ни один обработчик не подошёл к запросу.
// Это ошибка конфигурации навыка: набор обработчиков должен покрывать все запросы.
var ErrNoHandler = errors.New("no handler matched the request")

// ErrMissingSlot возвращается, если в интенте нет обязательного слота.
var ErrMissingSlot = errors.New("required slot is missing")

// HandlerError — ошибка или паника при обработке запроса.
type HandlerError struct {
	// Handler — имя обработчика либо этап обработки, например
	// "Launch predicate" или "request interceptor #0".
	Handler string
	Err     error
	// Stack заполняется только для паники.
	Stack []byte
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
