package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/store"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

const testCookieName = "sb-access-token"

type fakeResolver struct {
	user *identity.User
	err  error
}

func (r *fakeResolver) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	return nil, r.err
}

func (r *fakeResolver) ResolveToken(ctx context.Context, token string) (*identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

// fakeStore only needs GetUserOwner; the embedded interface covers the rest
type fakeStore struct {
	store.Store
	mapping *schema.UserOwner
	err     error
}

func (s *fakeStore) GetUserOwner(ctx context.Context, userID string) (*schema.UserOwner, error) {
	return s.mapping, s.err
}

// sessionRouter builds a router with one protected route that echoes the
// attached principal
func sessionRouter(resolver identity.Resolver, st store.Store, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{Session(SessionConfig{CookieName: testCookieName}, resolver, st)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if principal == nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID, "role": principal.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doSessionRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionMissingCookie(t *testing.T) {
	router := sessionRouter(&fakeResolver{}, &fakeStore{})

	w := doSessionRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not logged in")
}

func TestSessionInvalidToken(t *testing.T) {
	router := sessionRouter(&fakeResolver{err: identity.ErrInvalidToken}, &fakeStore{})

	w := doSessionRequest(router, "expired-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired session")
}

func TestSessionMappingLookupFailure(t *testing.T) {
	resolver := &fakeResolver{user: &identity.User{ID: "user-123"}}
	router := sessionRouter(resolver, &fakeStore{err: errors.New("connection refused")})

	w := doSessionRequest(router, "token-abc")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionNoRoleMapping(t *testing.T) {
	resolver := &fakeResolver{user: &identity.User{ID: "user-123"}}
	router := sessionRouter(resolver, &fakeStore{mapping: nil})

	w := doSessionRequest(router, "token-abc")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "No role found for user")
}

func TestSessionAttachesPrincipal(t *testing.T) {
	resolver := &fakeResolver{user: &identity.User{ID: "user-123", Email: "owner@example.com"}}
	st := &fakeStore{mapping: &schema.UserOwner{UserID: "user-123", Role: "admin", OwnerName: "QUICK"}}
	router := sessionRouter(resolver, st)

	w := doSessionRequest(router, "token-abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-123"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireRole(t *testing.T) {
	resolver := &fakeResolver{user: &identity.User{ID: "user-123"}}

	admin := &fakeStore{mapping: &schema.UserOwner{UserID: "user-123", Role: "admin"}}
	w := doSessionRequest(sessionRouter(resolver, admin, RequireRole("admin")), "token-abc")
	assert.Equal(t, http.StatusOK, w.Code)

	viewer := &fakeStore{mapping: &schema.UserOwner{UserID: "user-123", Role: "viewer"}}
	w = doSessionRequest(sessionRouter(resolver, viewer, RequireRole("admin")), "token-abc")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient role")
}

func TestPrincipalFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, PrincipalFromContext(c))
}
