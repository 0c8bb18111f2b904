// Package subscription provides HTTP handlers for admin subscription operations.
package subscription

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	subdto "mealsub/internal/application/subscription/dto"
	"mealsub/internal/application/subscription/usecases"
	"mealsub/internal/shared/id"
	"mealsub/internal/shared/logger"
	"mealsub/internal/shared/utils"
)

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error)
}

type markDeliveredUseCase interface {
	Execute(ctx context.Context, cmd usecases.MarkDeliveredCommand) (*usecases.MarkDeliveredResult, error)
}

// Handler handles admin subscription operations
type Handler struct {
	listUseCase          listSubscriptionsUseCase
	markDeliveredUseCase markDeliveredUseCase
	logger               logger.Interface
}

// NewHandler creates a new admin subscription handler
func NewHandler(
	listUC listSubscriptionsUseCase,
	markDeliveredUC markDeliveredUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		listUseCase:          listUC,
		markDeliveredUseCase: markDeliveredUC,
		logger:               logger,
	}
}

// MarkDeliveredRequest is the optional body of the deliver endpoint
type MarkDeliveredRequest struct {
	Notes string `json:"notes" example:"Left at the gate"`
}

// List returns all subscriptions, newest first
// @Summary List subscriptions
// @Description List meal subscriptions with owner details, optionally filtered by status or user
// @Tags Admin Subscriptions
// @Produce json
// @Security Bearer
// @Param status query string false "Subscription status" Enums(pending,active,scheduled,paused,cancelled,completed)
// @Param user_id query int false "Owner user ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]subdto.SubscriptionDTO}}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListSubscriptionsQuery{
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		uid := uint(userID)
		query.UserID = &uid
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Warnw("failed to list subscriptions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := result.Subscriptions
	if items == nil {
		items = []*subdto.SubscriptionDTO{}
	}

	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}

// MarkDelivered marks one scheduled day as delivered
// @Summary Mark delivery as delivered
// @Description Mark the day at day_index (0-based) delivered and recalculate progress. Repeating the call is a no-op success.
// @Tags Admin Subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param sid path string true "Subscription ID (msub_xxx)"
// @Param day_index path int true "Zero-based delivery index"
// @Param request body MarkDeliveredRequest false "Delivery notes"
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/subscriptions/{sid}/deliveries/{day_index}/deliver [post]
func (h *Handler) MarkDelivered(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	dayIndex, err := utils.ParseIntParam(c, "day_index", usecases.ErrMsgInvalidDeliveryIndex)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MarkDeliveredRequest
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warnw("invalid request body for mark delivered", "error", err, "sid", sid)
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.markDeliveredUseCase.Execute(c.Request.Context(), usecases.MarkDeliveredCommand{
		SubscriptionSID: sid,
		DayIndex:        dayIndex,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.Warnw("failed to mark delivery", "error", err, "sid", sid, "day_index", dayIndex)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result.Subscription)
}
