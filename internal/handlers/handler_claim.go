package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
	"github.com/veloexp/claim_approval_app/internal/middleware"
)

// claimHandler handles HTTP requests related to claims and their workflow.
type claimHandler struct {
	claimService      portssvc.ClaimSvcFacade
	provenanceService portssvc.ProvenanceSvcFacade
}

// newClaimHandler creates a new claimHandler.
func newClaimHandler(cs portssvc.ClaimSvcFacade, ps portssvc.ProvenanceSvcFacade) *claimHandler {
	return &claimHandler{
		claimService:      cs,
		provenanceService: ps,
	}
}

// registerClaimRoutes registers routes related to claims.
func registerClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade, provenanceService portssvc.ProvenanceSvcFacade) {
	h := newClaimHandler(claimService, provenanceService)

	claims := rg.Group("/claims")
	{
		claims.POST("", h.createClaim)
		claims.GET("", h.listClaims)
		claims.GET("/:id", h.getClaim)
		claims.PUT("/:id", h.updateDraftClaim)
		claims.POST("/:id/submit", h.submitClaim)
		claims.POST("/:id/approve", h.approveClaim)
		claims.POST("/:id/reject", h.rejectClaim)
		claims.POST("/:id/return", h.returnClaim)
		claims.POST("/:id/settle", h.settleClaim)
		claims.POST("/:id/hr-edit", h.hrEditClaim)
		claims.GET("/:id/history", h.getApprovalHistory)
		claims.GET("/:id/provenance", h.getProvenance)
	}
}

// requestIdentity extracts the authenticated tenant and actor from the
// request context. Writes the 401 response itself when either is missing.
func requestIdentity(c *gin.Context) (string, dto.ClaimActor, bool) {
	userID, okUser := middleware.GetUserIDFromContext(c)
	tenantID, okTenant := middleware.GetTenantIDFromContext(c)
	role, okRole := middleware.GetRoleFromContext(c)
	if !okUser || !okTenant || !okRole {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Identity missing from context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", dto.ClaimActor{}, false
	}

	designation, _ := middleware.GetDesignationFromContext(c)
	email, _ := middleware.GetEmailFromContext(c)
	return tenantID, dto.ClaimActor{
		ActorID:         userID,
		Role:            role,
		DesignationCode: designation,
		Email:           email,
	}, true
}

// respondWorkflowError maps workflow service errors to HTTP responses.
func respondWorkflowError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Claim not found"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnknownField):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrWrongStage):
		logger.Warn("Transition rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Claim operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createClaim godoc
// @Summary Create a claim
// @Description Creates a new expense claim in DRAFT and seeds its field provenance
// @Tags claims
// @Accept json
// @Produce json
// @Param claim body dto.CreateClaimRequest true "Claim details"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims [post]
func (h *claimHandler) createClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), tenantID, req, actor.ActorID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClaimResponse(claim))
}

// listClaims godoc
// @Summary List claims
// @Description Retrieves a page of the tenant's claims, newest first
// @Tags claims
// @Produce json
// @Param limit query int false "Page size (default 25, max 100)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims [get]
func (h *claimHandler) listClaims(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	nextToken := c.Query("nextToken")

	claims, token, err := h.claimService.ListClaims(c.Request.Context(), tenantID, limit, nextToken)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListClaimsResponse(claims, token))
}

// getClaim godoc
// @Summary Get a claim by ID
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.GetClaimByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// updateDraftClaim godoc
// @Summary Update a draft claim
// @Description Applies employee edits to a claim still in DRAFT
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param claim body dto.UpdateClaimRequest true "Fields to update"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id} [put]
func (h *claimHandler) updateDraftClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDraftClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.UpdateDraftClaim(c.Request.Context(), tenantID, c.Param("id"), req, actor.ActorID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// submitClaim godoc
// @Summary Submit a claim for approval
// @Description Moves a DRAFT or RETURNED_TO_EMPLOYEE claim into its first effective approval stage
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/submit [post]
func (h *claimHandler) submitClaim(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.SubmitClaim(c.Request.Context(), tenantID, c.Param("id"), actor)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// approveClaim godoc
// @Summary Approve a pending claim
// @Description Advances the claim to the next stage of its effective sequence
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param approval body dto.ApproveClaimRequest false "Optional comment"
// @Success 200 {object} dto.ClaimResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/approve [post]
func (h *claimHandler) approveClaim(c *gin.Context) {
	var req dto.ApproveClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.ApproveClaim(c.Request.Context(), tenantID, c.Param("id"), actor, req.Comment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// rejectClaim godoc
// @Summary Reject a pending claim
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param rejection body dto.RejectClaimRequest true "Rejection comment"
// @Success 200 {object} dto.ClaimResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/reject [post]
func (h *claimHandler) rejectClaim(c *gin.Context) {
	var req dto.RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.RejectClaim(c.Request.Context(), tenantID, c.Param("id"), actor, req.Comment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// returnClaim godoc
// @Summary Return a pending claim to the employee
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param return body dto.ReturnClaimRequest true "Return reason"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/return [post]
func (h *claimHandler) returnClaim(c *gin.Context) {
	var req dto.ReturnClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.ReturnClaim(c.Request.Context(), tenantID, c.Param("id"), actor, req.Reason)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// settleClaim godoc
// @Summary Settle a fully approved claim
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/settle [post]
func (h *claimHandler) settleClaim(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.SettleClaim(c.Request.Context(), tenantID, c.Param("id"), actor)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// hrEditClaim godoc
// @Summary Apply HR field edits to a claim
// @Description Edits claim fields during the PENDING_HR window, retagging provenance as hrOverride
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param edit body dto.HREditClaimRequest true "Field changes"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/hr-edit [post]
func (h *claimHandler) hrEditClaim(c *gin.Context) {
	var req dto.HREditClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claimService.HREditClaim(c.Request.Context(), tenantID, c.Param("id"), actor, req.FieldChanges)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// getApprovalHistory godoc
// @Summary Get a claim's approval history
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {array} dto.ApprovalHistoryEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/history [get]
func (h *claimHandler) getApprovalHistory(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	entries, err := h.claimService.GetApprovalHistory(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalHistoryResponse(entries))
}

// getProvenance godoc
// @Summary Get a claim's field provenance
// @Description Maps every tracked field to its current source tag
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ProvenanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{id}/provenance [get]
func (h *claimHandler) getProvenance(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	claimID := c.Param("id")
	// Existence and tenant check first; provenance rows carry no tenant.
	if _, err := h.claimService.GetClaimByID(c.Request.Context(), tenantID, claimID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	sources, err := h.provenanceService.SourcesForClaim(c.Request.Context(), claimID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProvenanceResponse(claimID, sources))
}
