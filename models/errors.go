package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// бизнес-ошибки, по которым контроллер выбирает http статус
var (
	ErrEmployeeNotFound     = errors.New("сотрудник не найден")
	ErrDepartmentNotFound   = errors.New("подразделение не найдено")
	ErrLeaveRequestNotFound = errors.New("заявка на отпуск не найдена")
	ErrAttachmentNotFound   = errors.New("вложение не найдено")

	ErrAlreadyClockedIn  = errors.New("приход уже отмечен за этот день")
	ErrAlreadyClockedOut = errors.New("уход уже отмечен за этот день")
	ErrNotClockedIn      = errors.New("приход за этот день не отмечен")
	ErrNoAttendanceToday = errors.New("за этот день нет записи учета времени")
	ErrAttendanceExists  = errors.New("запись учета времени за этот день уже существует")

	ErrConflictingLeave = errors.New("период пересекается с согласованной заявкой на отпуск")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrDepartmentNotFound) ||
		errors.Is(err, ErrLeaveRequestNotFound) ||
		errors.Is(err, ErrAttachmentNotFound)
}

func IsBusinessRuleViolation(err error) bool {
	if errors.Is(err, ErrAlreadyClockedIn) ||
		errors.Is(err, ErrAlreadyClockedOut) ||
		errors.Is(err, ErrNotClockedIn) ||
		errors.Is(err, ErrNoAttendanceToday) ||
		errors.Is(err, ErrAttendanceExists) ||
		errors.Is(err, ErrConflictingLeave) {
		return true
	}
	validationErr := &ValidationError{}
	return errors.As(err, &validationErr)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
