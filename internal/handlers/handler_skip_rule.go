package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
	"github.com/veloexp/claim_approval_app/internal/middleware"
)

// skipRuleHandler handles HTTP requests for skip rule administration.
type skipRuleHandler struct {
	skipRuleService portssvc.SkipRuleSvcFacade
}

// newSkipRuleHandler creates a new skipRuleHandler.
func newSkipRuleHandler(ss portssvc.SkipRuleSvcFacade) *skipRuleHandler {
	return &skipRuleHandler{skipRuleService: ss}
}

// registerSkipRuleRoutes registers routes related to skip rules.
func registerSkipRuleRoutes(rg *gin.RouterGroup, skipRuleService portssvc.SkipRuleSvcFacade) {
	h := newSkipRuleHandler(skipRuleService)

	rules := rg.Group("/skip-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
		rules.DELETE("/:id", h.deactivateRule)
		rules.POST("/validate", h.validateRuleSet)
	}
}

// requireAdmin writes a 403 when the caller does not hold an admin role.
func requireAdmin(c *gin.Context, actor dto.ClaimActor) bool {
	if !actor.Role.IsAggregate() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Skip rule administration requires an admin role"})
		return false
	}
	return true
}

// createRule godoc
// @Summary Create a skip rule
// @Tags skip-rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateSkipRuleRequest true "Rule details"
// @Success 201 {object} dto.SkipRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /skip-rules [post]
func (h *skipRuleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSkipRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	rule, err := h.skipRuleService.CreateRule(c.Request.Context(), tenantID, req, actor.ActorID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSkipRuleResponse(rule))
}

// listRules godoc
// @Summary List skip rules
// @Description Retrieves the tenant's rules in evaluation order
// @Tags skip-rules
// @Produce json
// @Success 200 {array} dto.SkipRuleResponse
// @Security BearerAuth
// @Router /skip-rules [get]
func (h *skipRuleHandler) listRules(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	rules, err := h.skipRuleService.ListRules(c.Request.Context(), tenantID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListSkipRuleResponse(rules))
}

// getRule godoc
// @Summary Get a skip rule by ID
// @Tags skip-rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.SkipRuleResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /skip-rules/{id} [get]
func (h *skipRuleHandler) getRule(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	rule, err := h.skipRuleService.GetRuleByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSkipRuleResponse(rule))
}

// updateRule godoc
// @Summary Update a skip rule
// @Tags skip-rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateSkipRuleRequest true "Attributes to update"
// @Success 200 {object} dto.SkipRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /skip-rules/{id} [put]
func (h *skipRuleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSkipRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	rule, err := h.skipRuleService.UpdateRule(c.Request.Context(), tenantID, c.Param("id"), req, actor.ActorID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSkipRuleResponse(rule))
}

// deactivateRule godoc
// @Summary Deactivate a skip rule
// @Description Marks the rule inactive; it stops matching but is kept for audit
// @Tags skip-rules
// @Param id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /skip-rules/{id} [delete]
func (h *skipRuleHandler) deactivateRule(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	if err := h.skipRuleService.DeactivateRule(c.Request.Context(), tenantID, c.Param("id"), actor.ActorID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// validateRuleSet godoc
// @Summary Validate the tenant's active rule set
// @Description Reports same-priority rules that match the same value
// @Tags skip-rules
// @Produce json
// @Success 200 {array} dto.RuleConflict
// @Failure 409 {array} dto.RuleConflict
// @Security BearerAuth
// @Router /skip-rules/validate [post]
func (h *skipRuleHandler) validateRuleSet(c *gin.Context) {
	tenantID, actor, ok := requestIdentity(c)
	if !ok || !requireAdmin(c, actor) {
		return
	}

	conflicts, err := h.skipRuleService.ValidateRuleSet(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRuleConflict) {
			c.JSON(http.StatusConflict, conflicts)
			return
		}
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, []dto.RuleConflict{})
}
