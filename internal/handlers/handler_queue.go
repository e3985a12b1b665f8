package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

// queueHandler handles HTTP requests for the approval queue read models.
type queueHandler struct {
	queueService portssvc.ApprovalQueueSvcFacade
}

// newQueueHandler creates a new queueHandler.
func newQueueHandler(qs portssvc.ApprovalQueueSvcFacade) *queueHandler {
	return &queueHandler{queueService: qs}
}

// registerQueueRoutes registers routes related to approval queues.
func registerQueueRoutes(rg *gin.RouterGroup, queueService portssvc.ApprovalQueueSvcFacade) {
	h := newQueueHandler(queueService)

	queues := rg.Group("/queues")
	{
		queues.GET("/pending-counts", h.getPendingCounts)
		queues.GET("/:role", h.getQueueForRole)
	}
}

// getPendingCounts godoc
// @Summary Get pending claim counts per role
// @Description Recomputes the dashboard badge model from current claim stages
// @Tags queues
// @Produce json
// @Success 200 {object} dto.PendingCountsResponse
// @Security BearerAuth
// @Router /queues/pending-counts [get]
func (h *queueHandler) getPendingCounts(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	counts, err := h.queueService.PendingCountsForTenant(c.Request.Context(), tenantID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPendingCountsResponse(counts))
}

// getQueueForRole godoc
// @Summary Get the approval queue for a role
// @Description Claims awaiting the role, most recent submission first. Admin roles see all pending claims.
// @Tags queues
// @Produce json
// @Param role path string true "Role (manager, hr, finance, admin)"
// @Success 200 {array} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /queues/{role} [get]
func (h *queueHandler) getQueueForRole(c *gin.Context) {
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	role := domain.Role(c.Param("role"))
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown role: " + c.Param("role")})
		return
	}

	claims, err := h.queueService.QueueForRole(c.Request.Context(), tenantID, role)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	res := make([]dto.ClaimResponse, len(claims))
	for i := range claims {
		res[i] = dto.ToClaimResponse(&claims[i])
	}
	c.JSON(http.StatusOK, res)
}
