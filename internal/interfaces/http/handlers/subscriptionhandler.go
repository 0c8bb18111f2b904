package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mealsub/internal/application/subscription/usecases"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/constants"
	"mealsub/internal/shared/logger"
	"mealsub/internal/shared/utils"
)

// SubscriptionHandler handles the caller's own meal subscription.
type SubscriptionHandler struct {
	createUseCase    createSubscriptionUseCase
	getLatestUseCase getLatestSubscriptionUseCase
	logger           logger.Interface
}

// NewSubscriptionHandler creates a new user subscription handler
func NewSubscriptionHandler(
	createUC createSubscriptionUseCase,
	getLatestUC getLatestSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUseCase:    createUC,
		getLatestUseCase: getLatestUC,
		logger:           logger,
	}
}

// PreferencesRequest carries the raw meal preferences. Values are validated
// and normalized by the use case so every problem is reported at once.
type PreferencesRequest struct {
	DietType     string `json:"diet_type" example:"veg"`
	SpiceLevel   string `json:"spice_level" example:"medium"`
	DeliveryTime string `json:"delivery_time" example:"lunch"`
}

// CreateSubscriptionRequest represents the request to enroll in a meal plan
type CreateSubscriptionRequest struct {
	Plan          string             `json:"plan" example:"weekly"`
	PaymentMethod string             `json:"payment_method" example:"cod"`
	StartDate     string             `json:"start_date" example:"2024-01-01"`
	Preferences   PreferencesRequest `json:"preferences"`
}

// CreateSubscription enrolls the authenticated user
// @Summary Create meal subscription
// @Description Enroll the caller in a meal plan and generate the delivery schedule
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateSubscriptionRequest true "Subscription request"
// @Success 201 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warnw("invalid request body for create subscription", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		UserID:        userID,
		PhoneVerified: c.GetBool(constants.ContextKeyPhoneVerified),
		Plan:          req.Plan,
		PaymentMethod: req.PaymentMethod,
		StartDate:     req.StartDate,
		Preferences: vo.RawPreferences{
			DietType:     req.Preferences.DietType,
			SpiceLevel:   req.Preferences.SpiceLevel,
			DeliveryTime: req.Preferences.DeliveryTime,
		},
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("failed to create subscription", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

// GetMySubscription returns the caller's latest subscription
// @Summary Get my latest subscription
// @Description Return the most recently created subscription of the caller in any status
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions/me [get]
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getLatestUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
