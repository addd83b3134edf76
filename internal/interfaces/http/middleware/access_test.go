package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/infrastructure/auth"
	"github.com/clinisupply/backend/internal/infrastructure/config"
	"github.com/clinisupply/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserRepository struct {
	users map[uuid.UUID]*identity.User
}

func (s *stubUserRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubUserRepository) FindByIdentifier(_ context.Context, identifier string) (*identity.User, error) {
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubUserRepository) Save(_ context.Context, user *identity.User) error {
	s.users[user.ID] = user
	return nil
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "clinisupply-test",
	})
}

func newStaffUser(t *testing.T, clinicID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("carla.souza", "carla@clinic.example", "str0ngpass!", isolation.RoleStaff)
	require.NoError(t, err)
	user.ClinicID = clinicID
	return user
}

func setupRouter(jwtService *auth.JWTService, users identity.UserRepository, kind isolation.ResourceKind) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Authenticate(AuthConfig{JWT: jwtService}))
	r.Use(ResolveAccessContext(users))
	r.GET("/probe", Authorize(kind), func(c *gin.Context) {
		actx, _ := isolation.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user_id": actx.UserID}))
	})
	return r
}

func issueToken(t *testing.T, jwtService *auth.JWTService, user *identity.User) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		ClinicID: user.ClinicID,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func doProbe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	jwtService := newTestJWT()
	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageTokenIsUnauthorized(t *testing.T) {
	jwtService := newTestJWT()
	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeletedPrincipalFailsClosed(t *testing.T) {
	jwtService := newTestJWT()
	clinicID := uuid.New()
	user := newStaffUser(t, &clinicID)
	token := issueToken(t, jwtService, user)

	// the token is valid but the user record is gone
	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDisabledPrincipalFailsClosed(t *testing.T) {
	jwtService := newTestJWT()
	clinicID := uuid.New()
	user := newStaffUser(t, &clinicID)
	user.Status = identity.UserStatusInactive
	token := issueToken(t, jwtService, user)

	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{user.ID: user}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClinicBoundStaffPassesGate(t *testing.T) {
	jwtService := newTestJWT()
	clinicID := uuid.New()
	user := newStaffUser(t, &clinicID)
	token := issueToken(t, jwtService, user)

	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{user.ID: user}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCliniclessStaffIsBlockedFromScopedKinds(t *testing.T) {
	jwtService := newTestJWT()
	user := newStaffUser(t, nil)
	token := issueToken(t, jwtService, user)

	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{user.ID: user}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "CLINIC_UNRESOLVED", body.Error.Code)
}

func TestCliniclessStaffStillSeesSharedKinds(t *testing.T) {
	jwtService := newTestJWT()
	user := newStaffUser(t, nil)
	token := issueToken(t, jwtService, user)

	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{user.ID: user}}
	r := setupRouter(jwtService, users, isolation.KindProduct)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleComesFromStorageNotToken(t *testing.T) {
	jwtService := newTestJWT()
	clinicID := uuid.New()
	user := newStaffUser(t, &clinicID)
	token := issueToken(t, jwtService, user)

	// demote after issuing the token: binding in storage wins
	user.ClinicID = nil
	users := &stubUserRepository{users: map[uuid.UUID]*identity.User{user.ID: user}}
	r := setupRouter(jwtService, users, isolation.KindInventoryItem)

	w := doProbe(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
