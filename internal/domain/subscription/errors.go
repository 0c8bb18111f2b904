package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound      = errors.New("subscription not found")
	ErrInvalidDeliveryIndex      = errors.New("invalid delivery index")
	ErrDeliveryIndexOutOfRange   = errors.New("delivery index out of range")
	ErrScheduleAlreadyGenerated  = errors.New("delivery schedule already generated")
	ErrVersionConflict           = errors.New("subscription version conflict")
	ErrStartDateNotNormalized    = errors.New("start date must be a day boundary")
	ErrInvalidSubscriptionFields = errors.New("invalid subscription fields")
)

func errInvalidField(field string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidSubscriptionFields, field, value)
}
