package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteDTO struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Content string   `json:"content" validate:"omitempty,max=50000"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,max=50,tagformat"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   *string   `json:"title" validate:"omitempty,max=255"`
	Content *string   `json:"content" validate:"omitempty,max=50000"`
	Tags    *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50,tagformat"`
}

// Empty reports whether the patch carries no fields at all; such requests are
// rejected before touching persistence.
func (r *UpdateNoteRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Tags == nil
}

type ListNotesQuery struct {
	Limit  int      `validate:"min=1,max=100"`
	Offset int      `validate:"min=0"`
	Tags   []string `validate:"omitempty,max=20,dive,max=50,tagformat"`
}

type Pagination struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

type ListNotesResponse struct {
	Notes      []NoteDTO  `json:"notes"`
	Pagination Pagination `json:"pagination"`
}

type SearchNotesResponse struct {
	Notes      []NoteDTO `json:"notes"`
	SearchTags []string  `json:"searchTags"`
}

type TagListResponse struct {
	Tags []string `json:"tags"`
}
