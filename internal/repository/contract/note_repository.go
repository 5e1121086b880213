package contract

import (
	"context"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	// Delete is jointly scoped by (id, owner) and reports whether a row was
	// actually removed; a wrong owner looks exactly like a missing note.
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) (bool, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DistinctTags lists every tag the account uses, alphabetically.
	DistinctTags(ctx context.Context, userId uuid.UUID) ([]string, error)
}
