package service

import (
	"context"
	"time"

	"quicknotes-be/internal/config"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Verify(ctx context.Context, tokenStr string) (*dto.VerifyResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.AuthConfig
	log        logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg config.AuthConfig, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("User already exists with this email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "User registered", map[string]interface{}{"email": user.Email})

	return &dto.AuthResponse{User: toUserDTO(&user), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password answer identically.
	if user == nil {
		return nil, serverutils.NewUnauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewUnauthorized("Invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "User logged in", map[string]interface{}{"email": user.Email})

	return &dto.AuthResponse{User: toUserDTO(user), Token: token}, nil
}

func (s *authService) Verify(ctx context.Context, tokenStr string) (*dto.VerifyResponse, error) {
	if tokenStr == "" {
		return nil, serverutils.NewUnauthorized("Access token required")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, serverutils.NewUnauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serverutils.NewUnauthorized("Invalid or expired token")
	}
	idStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return nil, serverutils.NewUnauthorized("Invalid or expired token")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewUnauthorized("User not found")
	}

	return &dto.VerifyResponse{Valid: true, User: toUserDTO(user)}, nil
}

func (s *authService) issueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(s.cfg.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUserDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        u.Id,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
