package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stoneyard/remnant-portal/internal/api/middleware"
	"github.com/stoneyard/remnant-portal/internal/api/shared/dto"
	"github.com/stoneyard/remnant-portal/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListRemnants retrieves the filtered customer-facing remnant listing
	// GET /api/remnants?material=&stone=&status=&color=&min-width=&min-height=&owner=
	ListRemnants(c *gin.Context)

	// CreateHoldRequest creates a pending hold on a remnant
	// POST /api/hold_requests
	CreateHoldRequest(c *gin.Context)

	// ListHoldRequests retrieves all holds with remnant display fields (admin)
	// GET /api/hold_requests
	ListHoldRequests(c *gin.Context)

	// ApproveHoldRequest approves a pending hold (admin)
	// POST /api/hold_requests/:id/approve
	ApproveHoldRequest(c *gin.Context)

	// RejectHoldRequest rejects a pending hold (admin)
	// POST /api/hold_requests/:id/reject
	RejectHoldRequest(c *gin.Context)

	// Login signs in against the identity provider and sets the session cookie
	// POST /api/login
	Login(c *gin.Context)

	// Logout clears the session cookie
	// POST /api/logout
	Logout(c *gin.Context)

	// Me returns the authenticated principal
	// GET /api/me
	Me(c *gin.Context)

	// ListAdminRemnants retrieves the full unfiltered remnant set (admin)
	// GET /api/admin_remnants
	ListAdminRemnants(c *gin.Context)

	// UpdateRemnant applies a partial update to a remnant (admin)
	// POST /api/admin_remnants/:id
	UpdateRemnant(c *gin.Context)

	// DeleteRemnant soft-deletes a remnant (admin)
	// DELETE /api/admin_remnants/:id
	DeleteRemnant(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// SessionCookie describes how the session cookie is issued
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
	cookie   SessionCookie
}

// NewHandler creates a new REST API handler
func NewHandler(exec executor.Executor, cookie SessionCookie) Handler {
	return &handler{executor: exec, cookie: cookie}
}

// ListRemnants retrieves the filtered customer-facing remnant listing
func (h *handler) ListRemnants(c *gin.Context) {
	params, err := ParseListRemnantsQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	remnants, err := h.executor.ListRemnants(c.Request.Context(), params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, remnants)
}

// CreateHoldRequest creates a pending hold on a remnant
func (h *handler) CreateHoldRequest(c *gin.Context) {
	var req dto.CreateHoldRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	hold, err := h.executor.CreateHold(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.HoldCreatedResponse{
		Message:     "Hold request created",
		HoldRequest: *hold,
	})
}

// ListHoldRequests retrieves all holds with remnant display fields
func (h *handler) ListHoldRequests(c *gin.Context) {
	holds, err := h.executor.ListHolds(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holds)
}

// ApproveHoldRequest approves a pending hold
func (h *handler) ApproveHoldRequest(c *gin.Context) {
	holdID, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.executor.ApproveHold(c.Request.Context(), holdID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Hold approved"})
}

// RejectHoldRequest rejects a pending hold
func (h *handler) RejectHoldRequest(c *gin.Context) {
	holdID, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.executor.RejectHold(c.Request.Context(), holdID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Hold rejected"})
}

// Login signs in against the identity provider and sets the session cookie
func (h *handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	session, err := h.executor.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, session.AccessToken, int(h.cookie.MaxAge.Seconds()), "/", "", true, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Login successful"})
}

// Logout clears the session cookie
func (h *handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me returns the authenticated principal
func (h *handler) Me(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	if principal == nil {
		// Session middleware guarantees a principal; this is a wiring bug
		respondError(c, fmt.Errorf("no principal in context"))
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		Email:     principal.Email,
		Role:      principal.Role,
		OwnerName: principal.OwnerName,
	})
}

// ListAdminRemnants retrieves the full unfiltered remnant set
func (h *handler) ListAdminRemnants(c *gin.Context) {
	remnants, err := h.executor.ListAllRemnants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, remnants)
}

// UpdateRemnant applies a partial update to a remnant
func (h *handler) UpdateRemnant(c *gin.Context) {
	remnantID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateRemnantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.executor.UpdateRemnant(c.Request.Context(), remnantID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Remnant updated"})
}

// DeleteRemnant soft-deletes a remnant
func (h *handler) DeleteRemnant(c *gin.Context) {
	remnantID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.executor.DeleteRemnant(c.Request.Context(), remnantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Remnant deleted"})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "remnant-portal-api",
	})
}

// pathID parses the :id path parameter, responding with 400 on malformed input
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
