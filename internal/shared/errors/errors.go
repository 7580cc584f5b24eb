// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в хранилищах (kv, session, notes, theme)
// и маппятся на HTTP-статусы в api слое и на сообщения в CLI.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Пустой email или пароль при логине
	ErrInvalidCredentials = errors.New("email/password required")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// только для хранилища слотов
var (
	// Слот отсутствует в хранилище (для вызывающего кода это "пусто", а не сбой)
	ErrSlotNotFound = errors.New("slot not found")
	// Ошибка чтения/записи хранилища
	ErrPersistence = errors.New("persistence error")
	// Хранилищу не хватает места
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// только для заметок
var (
	// Хранилище заметок ещё не загружено для активного пользователя
	ErrNotReady = errors.New("note store is not ready")
	// Загрузка завершилась после смены пользователя и была отброшена
	ErrStaleLoad = errors.New("stale load discarded")
)
