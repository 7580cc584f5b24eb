package models

import "time"

const (
	// MaxTitleLen — ограничение длины заголовка со стороны UI (CLI/HTTP).
	// Хранилище заметок его не проверяет.
	MaxTitleLen = 64

	// DefaultTitle — заголовок, который получает заметка с пустым title при создании.
	DefaultTitle = "Untitled"

	// AllCategories — псевдо-категория "без фильтра", всегда первая в списке категорий.
	AllCategories = "All"
)

// User — текущий пользователь сессии.
//
// Поля:
//   - Email: уникальный идентификатор пользователя (он же часть ключа слота заметок)
//   - Name: отображаемое имя, выводится из local part email
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Note — заметка пользователя.
//
// ID и CreatedAt выставляются один раз при создании и больше не меняются.
// UpdatedAt обновляется при каждом редактировании и никогда не меньше CreatedAt.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LastModified возвращает max(UpdatedAt, CreatedAt) — ключ сортировки для отображения.
func (n Note) LastModified() time.Time {
	if n.UpdatedAt.After(n.CreatedAt) {
		return n.UpdatedAt
	}
	return n.CreatedAt
}

// Edited сообщает, редактировалась ли заметка после создания.
func (n Note) Edited() bool {
	return !n.UpdatedAt.Equal(n.CreatedAt)
}

// NoteInput — изменяемые поля заметки (create/update).
type NoteInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// LoginRequest — запрос на вход.
//
// Используется в:
//
//	POST /session/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ на успешный вход: пользователь и access токен для API.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// UpdateNoteRequest — запрос на обновление заметки по ID.
//
// Используется в:
//
//	PUT /notes/{id}
//
// Поля — указатели: не переданные поля остаются прежними.
// В хранилище всегда уходят все три поля.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

// NotesResponse — список заметок в порядке отображения.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// CategoriesResponse — список категорий, первая всегда "All".
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ThemeResponse — текущая тема и CSS-токены палитры.
type ThemeResponse struct {
	Theme  string            `json:"theme"`
	Tokens map[string]string `json:"tokens"`
}

// ThemeRequest — явная установка темы.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ErrorResponse — тело ответа с ошибкой.
//
// Note заполняется, когда заметка создана в памяти, но не сохранена:
// клиент получает её ID, а запишет её следующая успешная мутация или Flush.
type ErrorResponse struct {
	Error string `json:"error"`
	Note  *Note  `json:"note,omitempty"`
}
