package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type DietType string

const (
	DietVeg    DietType = "veg"
	DietNonVeg DietType = "non-veg"
)

func (d DietType) IsValid() bool {
	return d == DietVeg || d == DietNonVeg
}

type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceSpicy  SpiceLevel = "spicy"
)

func (s SpiceLevel) IsValid() bool {
	return s == SpiceMild || s == SpiceMedium || s == SpiceSpicy
}

type DeliveryTime string

const (
	DeliveryBreakfast DeliveryTime = "breakfast"
	DeliveryLunch     DeliveryTime = "lunch"
	DeliveryDinner    DeliveryTime = "dinner"
)

func (t DeliveryTime) IsValid() bool {
	return t == DeliveryBreakfast || t == DeliveryLunch || t == DeliveryDinner
}

const (
	ErrMsgDietType     = "dietType must be veg or non-veg"
	ErrMsgSpiceLevel   = "spiceLevel must be mild, medium, or spicy"
	ErrMsgDeliveryTime = "deliveryTime must be breakfast, lunch, or dinner"
)

// Preferences are the meal choices attached to a subscription.
type Preferences struct {
	DietType     DietType
	SpiceLevel   SpiceLevel
	DeliveryTime DeliveryTime
}

// NewPreferences builds preferences from already-normalized values, as read
// back from storage.
func NewPreferences(dietType, spiceLevel, deliveryTime string) (Preferences, error) {
	p := Preferences{
		DietType:     DietType(dietType),
		SpiceLevel:   SpiceLevel(spiceLevel),
		DeliveryTime: DeliveryTime(deliveryTime),
	}
	if errs := p.violations(); len(errs) > 0 {
		return Preferences{}, fmt.Errorf("invalid preferences: %s", strings.Join(errs, ", "))
	}
	return p, nil
}

func (p Preferences) violations() []string {
	var errs []string
	if !p.DietType.IsValid() {
		errs = append(errs, ErrMsgDietType)
	}
	if !p.SpiceLevel.IsValid() {
		errs = append(errs, ErrMsgSpiceLevel)
	}
	if !p.DeliveryTime.IsValid() {
		errs = append(errs, ErrMsgDeliveryTime)
	}
	return errs
}

// RawPreferences is caller input before normalization. Missing fields are
// empty strings.
type RawPreferences struct {
	DietType     string
	SpiceLevel   string
	DeliveryTime string
}

// PreferenceValidation is the outcome of ValidatePreferences. Values holds
// the normalized input even when it is invalid.
type PreferenceValidation struct {
	Valid  bool
	Values Preferences
	Errors []string
}

// ValidatePreferences lower-cases each field and checks it against its
// allowed set. Every violation is reported, in field order.
func ValidatePreferences(raw RawPreferences) PreferenceValidation {
	values := Preferences{
		DietType:     DietType(normalize(raw.DietType)),
		SpiceLevel:   SpiceLevel(normalize(raw.SpiceLevel)),
		DeliveryTime: DeliveryTime(normalize(raw.DeliveryTime)),
	}
	errs := values.violations()
	return PreferenceValidation{
		Valid:  len(errs) == 0,
		Values: values,
		Errors: errs,
	}
}

// normalize builds a fresh Caser per call; Casers keep state and must not be
// shared between goroutines.
func normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
