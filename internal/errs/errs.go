// Package errs содержит сигнальные ошибки доменного слоя.
// Хендлеры сопоставляют их с HTTP-статусами через errors.Is.
package errs

import "errors"

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrCommentNotFound = errors.New("comment not found")

	// ErrInvalidArgument — базовая ошибка валидации входных данных.
	// Конкретные сообщения создаются через Invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNothingToUpdate возвращается при частичном обновлении без
	// эффективных изменений (пустой payload или значения совпадают).
	ErrNothingToUpdate = errors.New("no new or effective fields to update")
)

type invalidArgumentError struct {
	msg string
}

func (e *invalidArgumentError) Error() string { return e.msg }

func (e *invalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// Invalid создаёт ошибку валидации с человекочитаемым сообщением,
// совместимую с errors.Is(err, ErrInvalidArgument).
func Invalid(msg string) error {
	return &invalidArgumentError{msg: msg}
}
