package service

import (
	"context"

	"quicknotes-be/internal/cache"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
	Counts(ctx context.Context) (users int64, notes int64, err error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      cache.Cache
	log        logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, cacheGateway cache.Cache, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		cache:      cacheGateway,
		log:        log,
	}
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("User not found")
	}
	res := toUserDTO(user)
	return &res, nil
}

func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewNotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return serverutils.NewUnauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePassword(ctx, userId, string(hash)); err != nil {
		return err
	}

	s.log.Info("user", "Password rotated", map[string]interface{}{"user_id": userId})
	return nil
}

// DeleteAccount removes the account and all owned notes in one transaction,
// then purges the owner's cache namespace.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.DeletePattern(ctx, ownerPattern(userId))
	s.log.Info("user", "Account deleted", map[string]interface{}{"user_id": userId})
	return nil
}

func (s *userService) Counts(ctx context.Context) (int64, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	notes, err := uow.NoteRepository().Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return users, notes, nil
}
