package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawPreferences
		wantValid  bool
		wantErrors []string
		wantValues Preferences
	}{
		{
			name:      "valid lower case",
			raw:       RawPreferences{DietType: "veg", SpiceLevel: "mild", DeliveryTime: "lunch"},
			wantValid: true,
			wantValues: Preferences{
				DietType: DietVeg, SpiceLevel: SpiceMild, DeliveryTime: DeliveryLunch,
			},
		},
		{
			name:      "mixed case is normalized",
			raw:       RawPreferences{DietType: "Non-Veg", SpiceLevel: "SPICY", DeliveryTime: " Dinner "},
			wantValid: true,
			wantValues: Preferences{
				DietType: DietNonVeg, SpiceLevel: SpiceSpicy, DeliveryTime: DeliveryDinner,
			},
		},
		{
			name:       "only the invalid field is reported",
			raw:        RawPreferences{DietType: "vegan", SpiceLevel: "medium", DeliveryTime: "lunch"},
			wantErrors: []string{ErrMsgDietType},
		},
		{
			name:       "all fields missing",
			raw:        RawPreferences{},
			wantErrors: []string{ErrMsgDietType, ErrMsgSpiceLevel, ErrMsgDeliveryTime},
		},
		{
			name:       "two invalid fields keep field order",
			raw:        RawPreferences{DietType: "veg", SpiceLevel: "hot", DeliveryTime: "brunch"},
			wantErrors: []string{ErrMsgSpiceLevel, ErrMsgDeliveryTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePreferences(tt.raw)

			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
			if tt.wantValid {
				assert.Equal(t, tt.wantValues, got.Values)
			}
		})
	}
}

func TestValidatePreferences_KeepsNormalizedInvalidValues(t *testing.T) {
	got := ValidatePreferences(RawPreferences{DietType: "VEGAN", SpiceLevel: "Mild", DeliveryTime: "LUNCH"})

	require.False(t, got.Valid)
	assert.Equal(t, DietType("vegan"), got.Values.DietType)
	assert.Equal(t, SpiceMild, got.Values.SpiceLevel)
}

func TestNewPreferences(t *testing.T) {
	p, err := NewPreferences("non-veg", "medium", "breakfast")
	require.NoError(t, err)
	assert.Equal(t, DietNonVeg, p.DietType)

	_, err = NewPreferences("Veg", "medium", "breakfast")
	assert.Error(t, err)
}
