package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneyard/remnant-portal/internal/api/middleware"
	"github.com/stoneyard/remnant-portal/internal/api/shared/dto"
	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/store"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

// stubExecutor implements executor.Executor with per-call overrides
type stubExecutor struct {
	listRemnants    func(ctx context.Context, filter store.RemnantFilter) ([]schema.Remnant, error)
	listAllRemnants func(ctx context.Context) ([]schema.Remnant, error)
	updateRemnant   func(ctx context.Context, id int64, req dto.UpdateRemnantRequest) error
	deleteRemnant   func(ctx context.Context, id int64) error
	createHold      func(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error)
	approveHold     func(ctx context.Context, holdID int64) (*schema.HoldRequest, error)
	rejectHold      func(ctx context.Context, holdID int64) (*schema.HoldRequest, error)
	listHolds       func(ctx context.Context) ([]schema.HoldRequestWithRemnant, error)
	login           func(ctx context.Context, email, password string) (*identity.Session, error)
}

func (s *stubExecutor) ListRemnants(ctx context.Context, filter store.RemnantFilter) ([]schema.Remnant, error) {
	if s.listRemnants == nil {
		return []schema.Remnant{}, nil
	}
	return s.listRemnants(ctx, filter)
}

func (s *stubExecutor) ListAllRemnants(ctx context.Context) ([]schema.Remnant, error) {
	if s.listAllRemnants == nil {
		return []schema.Remnant{}, nil
	}
	return s.listAllRemnants(ctx)
}

func (s *stubExecutor) UpdateRemnant(ctx context.Context, id int64, req dto.UpdateRemnantRequest) error {
	if s.updateRemnant == nil {
		return nil
	}
	return s.updateRemnant(ctx, id, req)
}

func (s *stubExecutor) DeleteRemnant(ctx context.Context, id int64) error {
	if s.deleteRemnant == nil {
		return nil
	}
	return s.deleteRemnant(ctx, id)
}

func (s *stubExecutor) CreateHold(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error) {
	if s.createHold == nil {
		return &schema.HoldRequest{}, nil
	}
	return s.createHold(ctx, req)
}

func (s *stubExecutor) ApproveHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
	if s.approveHold == nil {
		return &schema.HoldRequest{}, nil
	}
	return s.approveHold(ctx, holdID)
}

func (s *stubExecutor) RejectHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
	if s.rejectHold == nil {
		return &schema.HoldRequest{}, nil
	}
	return s.rejectHold(ctx, holdID)
}

func (s *stubExecutor) ListHolds(ctx context.Context) ([]schema.HoldRequestWithRemnant, error) {
	if s.listHolds == nil {
		return []schema.HoldRequestWithRemnant{}, nil
	}
	return s.listHolds(ctx)
}

func (s *stubExecutor) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	if s.login == nil {
		return &identity.Session{}, nil
	}
	return s.login(ctx, email, password)
}

// newTestRouter registers every route without the session middleware so
// handler behavior can be exercised directly
func newTestRouter(exec *stubExecutor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(exec, SessionCookie{Name: "sb-access-token", MaxAge: 24 * time.Hour})

	router := gin.New()
	router.GET("/health", h.HealthCheck)
	router.GET("/api/remnants", h.ListRemnants)
	router.POST("/api/hold_requests", h.CreateHoldRequest)
	router.GET("/api/hold_requests", h.ListHoldRequests)
	router.POST("/api/hold_requests/:id/approve", h.ApproveHoldRequest)
	router.POST("/api/hold_requests/:id/reject", h.RejectHoldRequest)
	router.POST("/api/login", h.Login)
	router.POST("/api/logout", h.Logout)
	router.GET("/api/admin_remnants", h.ListAdminRemnants)
	router.POST("/api/admin_remnants/:id", h.UpdateRemnant)
	router.DELETE("/api/admin_remnants/:id", h.DeleteRemnant)
	return router
}

func doRequest(router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestListRemnantsParsesFilter(t *testing.T) {
	var captured store.RemnantFilter
	router := newTestRouter(&stubExecutor{
		listRemnants: func(ctx context.Context, filter store.RemnantFilter) ([]schema.Remnant, error) {
			captured = filter
			return []schema.Remnant{}, nil
		},
	})

	w := doRequest(router, http.MethodGet,
		"/api/remnants?material=Quartz&material=Marble&stone=cala&min-width=50&min-height=abc&owner=QUICK", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"Quartz", "Marble"}, captured.Materials)
	assert.Equal(t, "cala", captured.Stone)
	require.NotNil(t, captured.MinWidth)
	assert.Equal(t, 50.0, *captured.MinWidth)
	assert.Nil(t, captured.MinHeight, "non-numeric bound is treated as not provided")
	assert.Equal(t, "QUICK", captured.Owner)
}

func TestListRemnantsEmptyResultIsJSONArray(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	w := doRequest(router, http.MethodGet, "/api/remnants", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreateHoldRequest(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		createHold: func(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error) {
			return &schema.HoldRequest{ID: 7, RemnantID: req.RemnantID, Status: domain.HoldStatusPending}, nil
		},
	})

	w := doRequest(router, http.MethodPost, "/api/hold_requests", dto.CreateHoldRequestBody{
		RemnantID: 1, ClientName: "Jane", ClientContact: "555-0100",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.HoldCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hold request created", resp.Message)
	assert.Equal(t, int64(7), resp.HoldRequest.ID)
	assert.Equal(t, domain.HoldStatusPending, resp.HoldRequest.Status)
}

func TestCreateHoldRequestMalformedBody(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	req := httptest.NewRequest(http.MethodPost, "/api/hold_requests", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHoldRequestConflict(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		createHold: func(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error) {
			return nil, apierrors.NewConflictError("Remnant already has a pending hold request")
		},
	})

	w := doRequest(router, http.MethodPost, "/api/hold_requests", dto.CreateHoldRequestBody{
		RemnantID: 1, ClientName: "Jane", ClientContact: "555-0100",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"conflict"`)
}

func TestResolveHoldPathIDValidation(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	for _, id := range []string{"abc", "0", "-3"} {
		w := doRequest(router, http.MethodPost, "/api/hold_requests/"+id+"/approve", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestApproveAndRejectHold(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	w := doRequest(router, http.MethodPost, "/api/hold_requests/7/approve", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hold approved")

	w = doRequest(router, http.MethodPost, "/api/hold_requests/7/reject", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hold rejected")
}

func TestApproveHoldNotFound(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		approveHold: func(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
			return nil, apierrors.NewNotFoundError("Hold request not found")
		},
	})

	w := doRequest(router, http.MethodPost, "/api/hold_requests/999/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerErrorStripsDetail(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		listHolds: func(ctx context.Context) ([]schema.HoldRequestWithRemnant, error) {
			return nil, apierrors.NewDatabaseError("Failed to fetch hold requests", "dial tcp 10.0.0.5:5432: connection refused")
		},
	})

	w := doRequest(router, http.MethodGet, "/api/hold_requests", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch hold requests")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		login: func(ctx context.Context, email, password string) (*identity.Session, error) {
			return &identity.Session{AccessToken: "token-abc"}, nil
		},
	})

	w := doRequest(router, http.MethodPost, "/api/login", dto.LoginRequest{
		Email: "owner@example.com", Password: "secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "sb-access-token=token-abc")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Strict")
	assert.Contains(t, cookie, "Max-Age=86400")
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		login: func(ctx context.Context, email, password string) (*identity.Session, error) {
			return nil, apierrors.NewUnauthorizedError("Invalid credentials")
		},
	})

	w := doRequest(router, http.MethodPost, "/api/login", dto.LoginRequest{
		Email: "owner@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestLoginMissingFields(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		login: func(ctx context.Context, email, password string) (*identity.Session, error) {
			t.Fatal("login must not be called for an invalid body")
			return nil, nil
		},
	})

	w := doRequest(router, http.MethodPost, "/api/login", dto.LoginRequest{Email: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	w := doRequest(router, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestMeReturnsPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exec := &stubExecutor{}
	h := NewHandler(exec, SessionCookie{Name: "sb-access-token", MaxAge: 24 * time.Hour})

	resolver := &staticResolver{user: &identity.User{ID: "user-123", Email: "owner@example.com"}}
	st := &staticStore{mapping: &schema.UserOwner{UserID: "user-123", Role: "admin", OwnerName: "QUICK"}}

	router := gin.New()
	router.GET("/api/me", middleware.Session(middleware.SessionConfig{CookieName: "sb-access-token"}, resolver, st), h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "token-abc"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "owner@example.com", resp.Email)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "QUICK", resp.OwnerName)
}

func TestUpdateRemnant(t *testing.T) {
	var capturedID int64
	var captured dto.UpdateRemnantRequest
	router := newTestRouter(&stubExecutor{
		updateRemnant: func(ctx context.Context, id int64, req dto.UpdateRemnantRequest) error {
			capturedID = id
			captured = req
			return nil
		},
	})

	status := "Sold"
	w := doRequest(router, http.MethodPost, "/api/admin_remnants/3", dto.UpdateRemnantRequest{Status: &status})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), capturedID)
	require.NotNil(t, captured.Status)
	assert.Equal(t, "Sold", *captured.Status)
}

func TestUpdateRemnantUnknownStatus(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	status := "Vanished"
	w := doRequest(router, http.MethodPost, "/api/admin_remnants/3", dto.UpdateRemnantRequest{Status: &status})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRemnant(t *testing.T) {
	router := newTestRouter(&stubExecutor{})

	w := doRequest(router, http.MethodDelete, "/api/admin_remnants/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Remnant deleted")
}

func TestDeleteRemnantNotFound(t *testing.T) {
	router := newTestRouter(&stubExecutor{
		deleteRemnant: func(ctx context.Context, id int64) error {
			return apierrors.NewNotFoundError("Remnant not found")
		},
	})

	w := doRequest(router, http.MethodDelete, "/api/admin_remnants/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// staticResolver and staticStore back the session middleware in Me tests

type staticResolver struct {
	user *identity.User
	err  error
}

func (r *staticResolver) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	return nil, r.err
}

func (r *staticResolver) ResolveToken(ctx context.Context, token string) (*identity.User, error) {
	return r.user, r.err
}

type staticStore struct {
	store.Store
	mapping *schema.UserOwner
	err     error
}

func (s *staticStore) GetUserOwner(ctx context.Context, userID string) (*schema.UserOwner, error) {
	return s.mapping, s.err
}
