package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionStatus_IsOpen(t *testing.T) {
	open := map[SubscriptionStatus]bool{
		StatusPending:   true,
		StatusActive:    true,
		StatusScheduled: true,
		StatusPaused:    false,
		StatusCancelled: false,
		StatusCompleted: false,
	}
	for status, want := range open {
		assert.Equal(t, want, status.IsOpen(), status)
	}
	assert.False(t, SubscriptionStatus("unknown").IsOpen())

	for _, s := range OpenStatuses {
		assert.True(t, s.IsOpen())
	}
}

func TestSubscriptionStatus_IsHeld(t *testing.T) {
	assert.True(t, StatusPaused.IsHeld())
	assert.True(t, StatusCancelled.IsHeld())
	assert.False(t, StatusActive.IsHeld())
	assert.False(t, StatusCompleted.IsHeld())
}

func TestParseSubscriptionStatus(t *testing.T) {
	s, err := ParseSubscriptionStatus("scheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, s)

	_, err = ParseSubscriptionStatus("Active")
	assert.Error(t, err)
}

func TestParseDeliveryStatus(t *testing.T) {
	for status := range ValidDeliveryStatuses {
		got, err := ParseDeliveryStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}

	_, err := ParseDeliveryStatus("missed")
	assert.Error(t, err)
	assert.True(t, DeliveryDelivered.IsDelivered())
	assert.False(t, DeliveryScheduled.IsDelivered())
}

func TestPlanAndPaymentMethod(t *testing.T) {
	assert.True(t, PlanWeekly.IsValid())
	assert.Equal(t, 7, PlanWeekly.DefaultDays())
	_, err := NewPlan("monthly")
	assert.Error(t, err)

	assert.True(t, PaymentCOD.IsValid())
	_, err = NewPaymentMethod("card")
	assert.Error(t, err)
}
