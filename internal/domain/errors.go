package domain

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
)

// Неизвестное значение action с клиента. Не роняем процесс, а
// возвращаем типизированную ошибку парсинга.
type UnknownActionError struct {
	Value string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown episode action %q", e.Value)
}
