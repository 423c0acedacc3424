package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации данных при создании викторины.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput используется для некорректных аргументов запроса
	// (пустое имя игрока, неположительное количество вопросов).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEditingRestricted используется, когда попытка заблокирована для редактирования.
	ErrEditingRestricted = errors.New("attempt is not editable")

	// ErrInsufficientData используется, когда у игрока недостаточно неправильных
	// ответов для генерации тренировочной викторины.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrCreationFailure используется, когда фабрика тренировочных викторин
	// не вернула идентификатор созданной викторины.
	ErrCreationFailure = errors.New("practice quiz creation failed")

	// ErrDataCorrupted используется, когда попытка ссылается на несуществующую викторину.
	// Это нарушение инварианта хранилища, а не ошибка пользовательского ввода.
	ErrDataCorrupted = errors.New("stored data is corrupted")
)
