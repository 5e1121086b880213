package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"quicknotes-be/internal/config"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/repository/contract"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeCache stores JSON blobs in memory and mirrors the fail-open contract.
type fakeCache struct {
	data map[string][]byte

	hits    int
	misses  int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := c.data[key]
	if !ok {
		c.misses++
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.misses++
		return false
	}
	c.hits++
	return true
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.data[key] = raw
	c.sets++
}

func (c *fakeCache) Delete(_ context.Context, key string) {
	delete(c.data, key)
	c.deletes++
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	c.deletes++
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close() error               { return nil }

func (c *fakeCache) keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// query is the subset of specification semantics the fakes interpret.
type query struct {
	id      *uuid.UUID
	userId  *uuid.UUID
	email   *string
	anyTags []string
	orderBy *specification.OrderBy
	limit   int
	offset  int
}

func interpret(specs []specification.Specification) query {
	q := query{limit: -1}
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			id := sp.ID
			q.id = &id
		case specification.OwnedBy:
			userId := sp.UserID
			q.userId = &userId
		case specification.ByEmail:
			email := sp.Email
			q.email = &email
		case specification.HasAnyTag:
			q.anyTags = sp.Tags
		case specification.OrderBy:
			ob := sp
			q.orderBy = &ob
		case specification.Pagination:
			q.limit = sp.Limit
			q.offset = sp.Offset
		}
	}
	return q
}

func (q query) matchesNote(n *entity.Note) bool {
	if q.id != nil && n.Id != *q.id {
		return false
	}
	if q.userId != nil && n.UserId != *q.userId {
		return false
	}
	if q.anyTags != nil {
		overlap := false
		for _, want := range q.anyTags {
			for _, have := range n.Tags {
				if want == have {
					overlap = true
				}
			}
		}
		if !overlap {
			return false
		}
	}
	return true
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]*entity.Note

	findAllCalls      int
	countCalls        int
	distinctTagsCalls int
	createCalls       int
	updateCalls       int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*entity.Note)}
}

func cloneNote(n *entity.Note) *entity.Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	return &c
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.createCalls++
	r.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	r.updateCalls++
	r.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID, userId uuid.UUID) (bool, error) {
	n, ok := r.notes[id]
	if !ok || n.UserId != userId {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func (r *fakeNoteRepo) DeleteAllByUserId(_ context.Context, userId uuid.UUID) error {
	for id, n := range r.notes {
		if n.UserId == userId {
			delete(r.notes, id)
		}
	}
	return nil
}

func (r *fakeNoteRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	q := interpret(specs)
	for _, n := range r.notes {
		if q.matchesNote(n) {
			return cloneNote(n), nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.findAllCalls++
	q := interpret(specs)

	var matched []*entity.Note
	for _, n := range r.notes {
		if q.matchesNote(n) {
			matched = append(matched, cloneNote(n))
		}
	}

	if q.orderBy != nil && q.orderBy.Field == "updated_at" {
		desc := q.orderBy.Desc
		sort.Slice(matched, func(i, j int) bool {
			if desc {
				return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
			}
			return matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		})
	}

	if q.offset > 0 {
		if q.offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[q.offset:]
		}
	}
	if q.limit >= 0 && q.limit < len(matched) {
		matched = matched[:q.limit]
	}
	return matched, nil
}

func (r *fakeNoteRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.countCalls++
	q := interpret(specs)
	var total int64
	for _, n := range r.notes {
		if q.matchesNote(n) {
			total++
		}
	}
	return total, nil
}

func (r *fakeNoteRepo) DistinctTags(_ context.Context, userId uuid.UUID) ([]string, error) {
	r.distinctTagsCalls++
	seen := make(map[string]struct{})
	for _, n := range r.notes {
		if n.UserId != userId {
			continue
		}
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.createCalls++
	c := *user
	r.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	q := interpret(specs)
	for _, u := range r.users {
		if q.id != nil && u.Id != *q.id {
			continue
		}
		if q.email != nil && u.Email != *q.email {
			continue
		}
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeUow struct {
	users contract.UserRepository
	notes contract.NoteRepository
}

func (u *fakeUow) Begin(context.Context) error             { return nil }
func (u *fakeUow) Commit() error                           { return nil }
func (u *fakeUow) Rollback() error                         { return nil }
func (u *fakeUow) UserRepository() contract.UserRepository { return u.users }
func (u *fakeUow) NoteRepository() contract.NoteRepository { return u.notes }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory(users contract.UserRepository, notes contract.NoteRepository) *fakeFactory {
	return &fakeFactory{uow: &fakeUow{users: users, notes: notes}}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Hour}
}

func userEntity(id uuid.UUID, email string) *entity.User {
	now := time.Now()
	return &entity.User{
		Id:           id,
		Email:        email,
		PasswordHash: "irrelevant",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
