package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims carries the actor identity inside the access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID  `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// Service is the identity boundary: it authenticates credentials and turns
// tokens into actors. Everything downstream consumes the actor only.
type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	cfg    config.JWTConfig
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, cfg config.JWTConfig) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		cfg:    cfg,
	}
}

// Register creates an account. Self-service registration always yields a
// general_user; staff roles are provisioned by an administrator.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	role := model.RoleGeneralUser
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, apperrors.Validation("role", "unknown role")
		}
		if parsed != model.RoleGeneralUser {
			return nil, apperrors.PermissionDenied()
		}
		role = parsed
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Validation("username", "already taken")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

func (s *Service) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.ExpiryHours) * time.Hour)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken parses the access token and returns the actor it names.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthenticated()
	}

	if !claims.Role.Valid() {
		return nil, apperrors.Unauthenticated()
	}

	return &model.Actor{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
