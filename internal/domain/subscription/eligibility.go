package subscription

import (
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/errors"
)

const (
	ErrMsgUnsupportedPlan    = "Only the weekly plan is currently supported"
	ErrMsgUnsupportedPayment = "Only Cash on Delivery is supported for subscriptions"
	ErrMsgPhoneNotVerified   = "Please verify your phone number before subscribing"
	ErrMsgAlreadySubscribed  = "You already have an active subscription"
)

// EligibilityRequest is the caller-supplied enrollment input checked by
// CheckEligibility. Plan and PaymentMethod are raw strings so that unknown
// values reach the gate instead of failing earlier.
type EligibilityRequest struct {
	Plan          string
	PaymentMethod string
	PhoneVerified bool
}

// CheckEligibility runs the enrollment preconditions in order and returns
// the first failure. existing holds the user's subscriptions that may block
// a new one; only open statuses count.
func CheckEligibility(req EligibilityRequest, existing []*Subscription) error {
	if !vo.Plan(req.Plan).IsValid() {
		return errors.NewValidationError(ErrMsgUnsupportedPlan)
	}
	if !vo.PaymentMethod(req.PaymentMethod).IsValid() {
		return errors.NewValidationError(ErrMsgUnsupportedPayment)
	}
	if !req.PhoneVerified {
		return errors.NewValidationError(ErrMsgPhoneNotVerified)
	}
	for _, s := range existing {
		if s != nil && s.Status().IsOpen() {
			return errors.NewConflictError(ErrMsgAlreadySubscribed)
		}
	}
	return nil
}
