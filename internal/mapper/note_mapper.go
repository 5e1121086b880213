package mapper

import (
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/model"

	"github.com/lib/pq"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	// Copy so repository results never alias the pq array.
	tags := make([]string, len(n.Tags))
	copy(tags, n.Tags)

	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := make(pq.StringArray, len(n.Tags))
	copy(tags, n.Tags)

	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
