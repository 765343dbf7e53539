package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/pkg/security"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewService(repo, security.NewBcryptHasher(4), config.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: 1,
	})
	return svc, repo
}

func TestRegisterDefaultsToGeneralUser(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleGeneralUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegisterRejectsStaffRoleSelfGrant(t *testing.T) {
	svc, _ := newTestService()

	for _, role := range []string{"org_admin", "doctor", "finance", "global_admin"} {
		_, err := svc.Register(context.Background(), &model.RegisterRequest{
			Username: "mallory",
			Password: "password123",
			Role:     role,
		})
		assert.True(t, apperrors.Is(err, apperrors.CodePermissionDenied), "role %s", role)
	}

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "mallory",
		Password: "password123",
		Role:     "superhero",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	req := &model.RegisterRequest{Username: "alice", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, repo := newTestService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RoleGeneralUser, resp.Role)

	actor, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, "alice", actor.Username)
	assert.Equal(t, model.RoleGeneralUser, actor.Role)

	// The role in the token reflects the stored account, not the login
	// request.
	stored, err := repo.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Role, actor.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown username gets the same answer as a wrong password.
	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(context.Background(), token)
		assert.True(t, apperrors.Is(err, apperrors.CodeUnauthenticated), "token %q", token)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc, _ := newTestService()

	other := NewService(newFakeUserRepo(), security.NewBcryptHasher(4), config.JWTConfig{
		Secret:      "another-secret",
		ExpiryHours: 1,
	})
	_, err := other.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := other.Login(context.Background(), &model.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthenticated))
}
