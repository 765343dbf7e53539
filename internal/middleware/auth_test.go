package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/auth"
	"github.com/careops/hospital-api/internal/service/authz"
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
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }
func (f *fakeUserRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }

type testHarness struct {
	engine  *gin.Engine
	authSvc *auth.Service
	repo    *fakeUserRepo
}

func newTestHarness(t *testing.T, resource authz.Resource) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	authSvc := auth.NewService(repo, security.NewBcryptHasher(4), config.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: 1,
	})
	m := NewAuthMiddleware(authSvc, authz.NewService())

	engine := gin.New()
	engine.GET("/guarded",
		m.Authenticate(),
		m.RequireResource(resource),
		func(c *gin.Context) {
			actor, _ := ActorFromContext(c)
			c.JSON(http.StatusOK, handler.NewSuccessResponse(actor.Username))
		},
	)
	return &testHarness{engine: engine, authSvc: authSvc, repo: repo}
}

func (h *testHarness) tokenFor(t *testing.T, username string, role model.Role) string {
	t.Helper()

	user, err := h.authSvc.Register(context.Background(), &model.RegisterRequest{
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)

	// Staff roles are provisioned administratively, not self-selected.
	h.repo.mu.Lock()
	h.repo.users[user.ID].Role = role
	h.repo.mu.Unlock()

	resp, err := h.authSvc.Login(context.Background(), &model.LoginRequest{
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	return resp.AccessToken
}

func (h *testHarness) request(authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	h.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.Response {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	h := newTestHarness(t, authz.ResourceBookingsList)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-token"} {
		w := h.request(header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)

		resp := decodeResponse(t, w)
		assert.Equal(t, RedirectLogin, resp.Redirect)
	}
}

func TestRequireResourceAllowsPermittedRole(t *testing.T) {
	h := newTestHarness(t, authz.ResourceBookingsList)
	token := h.tokenFor(t, "reg1", model.RoleRegistration)

	w := h.request("Bearer " + token)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "reg1", resp.Data)
}

func TestRequireResourceDeniesWithNeutralRedirect(t *testing.T) {
	h := newTestHarness(t, authz.ResourceBookingsAdvance)
	token := h.tokenFor(t, "fin1", model.RoleFinance)

	w := h.request("Bearer " + token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, RedirectNeutral, resp.Redirect)
	// The denial names no roles and no resource.
	assert.NotContains(t, resp.Message, "finance")
	assert.NotContains(t, resp.Message, "doctor")
}

func TestRequireResourceSuperuserPasses(t *testing.T) {
	h := newTestHarness(t, authz.ResourceUsersList)
	token := h.tokenFor(t, "root", model.RoleGlobalAdmin)

	w := h.request("Bearer " + token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateMatchesEvaluatorPerRole(t *testing.T) {
	authzSvc := authz.NewService()

	for _, role := range model.AllRoles {
		role := role
		t.Run(string(role), func(t *testing.T) {
			h := newTestHarness(t, authz.ResourceMedicinesList)
			token := h.tokenFor(t, "u_"+string(role), role)

			w := h.request("Bearer " + token)

			if authzSvc.Evaluate(role, authz.ResourceMedicinesList, authz.Ownership{}) == authz.Allow {
				assert.Equal(t, http.StatusOK, w.Code)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code)
			}
		})
	}
}
