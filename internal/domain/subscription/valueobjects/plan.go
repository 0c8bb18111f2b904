package valueobjects

import "fmt"

// Plan is the enrollment plan. Only the weekly plan is offered.
type Plan string

const PlanWeekly Plan = "weekly"

func (p Plan) IsValid() bool {
	return p == PlanWeekly
}

func (p Plan) String() string {
	return string(p)
}

// DefaultDays is the number of delivery days the plan covers.
func (p Plan) DefaultDays() int {
	switch p {
	case PlanWeekly:
		return 7
	}
	return 0
}

func NewPlan(s string) (Plan, error) {
	p := Plan(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid plan: %s", s)
	}
	return p, nil
}

// PaymentMethod is how the subscription is settled. Settlement itself is
// handled elsewhere; only cash on delivery is accepted.
type PaymentMethod string

const PaymentCOD PaymentMethod = "cod"

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCOD
}

func (m PaymentMethod) String() string {
	return string(m)
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", s)
	}
	return m, nil
}
