package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/SscSPs/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// policyHandler handles HTTP requests related to expense policies.
type policyHandler struct {
	policyService portssvc.PolicySvcFacade
}

// newPolicyHandler creates a new policyHandler.
func newPolicyHandler(ps portssvc.PolicySvcFacade) *policyHandler {
	return &policyHandler{
		policyService: ps,
	}
}

// registerPolicyRoutes registers routes related to expense policies.
func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicySvcFacade) {
	h := newPolicyHandler(policyService)

	policies := rg.Group("/policies")
	{
		policies.GET("", h.listPolicies)
		policies.GET("/:category", h.getPolicyByCategory)
		policies.PUT("/:category", middleware.RequireManager(), h.upsertPolicy)
	}
}

// listPolicies returns every configured policy.
func (h *policyHandler) listPolicies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	policies, err := h.policyService.ListPolicies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list policies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list policies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPolicyResponse(policies))
}

// getPolicyByCategory returns the policy for one category.
func (h *policyHandler) getPolicyByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	category := domain.ExpenseCategory(c.Param("category"))

	policy, err := h.policyService.GetPolicyByCategory(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No policy for this category"})
			return
		}
		logger.Error("Failed to get policy", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get policy"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

// upsertPolicy creates or replaces the policy for a category.
func (h *policyHandler) upsertPolicy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	category := domain.ExpenseCategory(c.Param("category"))

	var req dto.UpsertPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	policy, err := h.policyService.UpsertPolicy(c.Request.Context(), category, req, actorUserID, role)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Manager role required"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to upsert policy", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save policy"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}
