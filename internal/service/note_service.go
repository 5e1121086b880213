package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"quicknotes-be/internal/cache"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, q *dto.ListNotesQuery) (*dto.ListNotesResponse, error)
	Search(ctx context.Context, userId uuid.UUID, tags []string) (*dto.SearchNotesResponse, error)
	ListTags(ctx context.Context, userId uuid.UUID) (*dto.TagListResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteDTO, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteDTO, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteDTO, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error)
}

// noteService is a read-through cache over the note repository. Listing,
// search and tag aggregation are cached per owner and query shape; every
// mutation invalidates the whole owner namespace. Counts are never cached so
// pagination metadata always reflects current state.
type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      cache.Cache
	log        logger.ILogger
	listTTL    time.Duration
	searchTTL  time.Duration
	tagsTTL    time.Duration
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	cacheGateway cache.Cache,
	log logger.ILogger,
	listTTL, searchTTL, tagsTTL time.Duration,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		cache:      cacheGateway,
		log:        log,
		listTTL:    listTTL,
		searchTTL:  searchTTL,
		tagsTTL:    tagsTTL,
	}
}

// cacheKey namespaces cached query results per owner and query shape:
// notes:{ownerId}:{queryType}:{queryParams}. The owner segment is what makes
// whole-owner invalidation a single pattern delete.
func cacheKey(userId uuid.UUID, queryType, queryParams string) string {
	return fmt.Sprintf("notes:%s:%s:%s", userId, queryType, queryParams)
}

// ownerPattern matches every cached query result for one owner.
func ownerPattern(userId uuid.UUID) string {
	return fmt.Sprintf("notes:%s:*", userId)
}

// canonicalTags sorts a copy of the filter before joining so semantically
// identical filters map to the same key regardless of argument order.
func canonicalTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *noteService) invalidateOwner(ctx context.Context, userId uuid.UUID) {
	s.cache.DeletePattern(ctx, ownerPattern(userId))
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, q *dto.ListNotesQuery) (*dto.ListNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	limit, offset := normalizePage(q.Limit, q.Offset)

	params := fmt.Sprintf("%d-%d-%s", limit, offset, canonicalTags(q.Tags))
	key := cacheKey(userId, "list", params)

	notes := make([]dto.NoteDTO, 0)
	if !s.cache.Get(ctx, key, &notes) {
		specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
		if len(q.Tags) > 0 {
			specs = append(specs, specification.HasAnyTag{Tags: q.Tags})
		}
		specs = append(specs,
			specification.OrderBy{Field: "updated_at", Desc: true},
			specification.Pagination{Limit: limit, Offset: offset},
		)

		found, err := uow.NoteRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		notes = toNoteDTOs(found)
		s.cache.Set(ctx, key, notes, s.listTTL)
		s.log.Debug("note", "Notes cached", map[string]interface{}{"user_id": userId, "key": key})
	} else {
		s.log.Debug("note", "Notes served from cache", map[string]interface{}{"user_id": userId, "key": key})
	}

	// Total is read fresh even when the page came from cache: pagination
	// metadata must reflect current state, the page itself is TTL-bounded.
	total, err := uow.NoteRepository().Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	return &dto.ListNotesResponse{
		Notes: notes,
		Pagination: dto.Pagination{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasMore: int64(offset+limit) < total,
		},
	}, nil
}

func (s *noteService) Search(ctx context.Context, userId uuid.UUID, tags []string) (*dto.SearchNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	key := cacheKey(userId, "search", canonicalTags(tags))

	notes := make([]dto.NoteDTO, 0)
	if !s.cache.Get(ctx, key, &notes) {
		found, err := uow.NoteRepository().FindAll(ctx,
			specification.OwnedBy{UserID: userId},
			specification.HasAnyTag{Tags: tags},
			specification.OrderBy{Field: "updated_at", Desc: true},
		)
		if err != nil {
			return nil, err
		}
		notes = toNoteDTOs(found)
		s.cache.Set(ctx, key, notes, s.searchTTL)
	}

	return &dto.SearchNotesResponse{Notes: notes, SearchTags: tags}, nil
}

func (s *noteService) ListTags(ctx context.Context, userId uuid.UUID) (*dto.TagListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	key := cacheKey(userId, "tags", "")

	tags := make([]string, 0)
	if !s.cache.Get(ctx, key, &tags) {
		found, err := uow.NoteRepository().DistinctTags(ctx, userId)
		if err != nil {
			return nil, err
		}
		tags = found
		s.cache.Set(ctx, key, tags, s.tagsTTL)
	}

	return &dto.TagListResponse{Tags: tags}, nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	res := toNoteDTO(note)
	return &res, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.invalidateOwner(ctx, userId)
	s.log.Info("note", "Note created", map[string]interface{}{"user_id": userId, "note_id": note.Id})

	res := toNoteDTO(&note)
	return &res, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteDTO, error) {
	if req.Empty() {
		return nil, serverutils.NewValidationError("At least one field must be provided for update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.invalidateOwner(ctx, userId)
	s.log.Info("note", "Note updated", map[string]interface{}{"user_id": userId, "note_id": note.Id})

	res := toNoteDTO(note)
	return &res, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.NoteRepository().Delete(ctx, id, userId)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateOwner(ctx, userId)
		s.log.Info("note", "Note deleted", map[string]interface{}{"user_id": userId, "note_id": id})
	}
	return removed, nil
}

func toNoteDTO(n *entity.Note) dto.NoteDTO {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.NoteDTO{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteDTOs(notes []*entity.Note) []dto.NoteDTO {
	res := make([]dto.NoteDTO, len(notes))
	for i, n := range notes {
		res[i] = toNoteDTO(n)
	}
	return res
}
