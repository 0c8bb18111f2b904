package subscription

import (
	"fmt"
	"time"

	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/biztime"
	"mealsub/internal/shared/id"
)

// Subscription is the meal subscription aggregate root. It owns the delivery
// schedule and derives its progress counters and status from it.
type Subscription struct {
	id                 uint
	sid                string
	userID             uint
	plan               vo.Plan
	status             vo.SubscriptionStatus
	paymentMethod      vo.PaymentMethod
	startDate          time.Time
	endDate            time.Time
	totalDays          int
	deliveredDays      int
	preferences        vo.Preferences
	deliveries         []Delivery
	scheduleGenerated  bool
	cancellationReason *string
	lastDeliveryDate   *time.Time
	lastDeliveredDay   *time.Time
	owner              *Owner
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSubscriptionParams holds the inputs for enrolling a user.
type NewSubscriptionParams struct {
	UserID        uint
	Plan          vo.Plan
	PaymentMethod vo.PaymentMethod
	// StartDate must already be normalized to a day boundary.
	StartDate   time.Time
	TotalDays   int
	Preferences vo.Preferences
	// Now is the creation instant; its calendar day decides whether the
	// subscription starts active or scheduled.
	Now time.Time
}

// NewSubscription creates a subscription and generates its schedule.
func NewSubscription(p NewSubscriptionParams) (*Subscription, error) {
	if p.UserID == 0 {
		return nil, errInvalidField("user_id", p.UserID)
	}
	if !p.Plan.IsValid() {
		return nil, errInvalidField("plan", p.Plan)
	}
	if !p.PaymentMethod.IsValid() {
		return nil, errInvalidField("payment_method", p.PaymentMethod)
	}
	if _, err := vo.NewPreferences(string(p.Preferences.DietType), string(p.Preferences.SpiceLevel), string(p.Preferences.DeliveryTime)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubscriptionFields, err)
	}
	if p.StartDate.IsZero() || !biztime.StartOfDayUTC(p.StartDate).Equal(p.StartDate) {
		return nil, ErrStartDateNotNormalized
	}

	sid, err := id.NewSubscriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	totalDays := p.TotalDays
	if totalDays == 0 {
		totalDays = p.Plan.DefaultDays()
	}

	status := vo.StatusScheduled
	if p.StartDate.Equal(biztime.StartOfDayUTC(p.Now)) {
		status = vo.StatusActive
	}

	now := p.Now.UTC()
	s := &Subscription{
		sid:           sid,
		userID:        p.UserID,
		plan:          p.Plan,
		status:        status,
		paymentMethod: p.PaymentMethod,
		startDate:     p.StartDate.UTC(),
		totalDays:     totalDays,
		preferences:   p.Preferences,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	if err := s.generateSchedule(); err != nil {
		return nil, err
	}

	return s, nil
}

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	ID                 uint
	SID                string
	UserID             uint
	Plan               vo.Plan
	Status             vo.SubscriptionStatus
	PaymentMethod      vo.PaymentMethod
	StartDate          time.Time
	EndDate            time.Time
	TotalDays          int
	DeliveredDays      int
	Preferences        vo.Preferences
	Deliveries         []Delivery
	ScheduleGenerated  bool
	CancellationReason *string
	LastDeliveryDate   *time.Time
	LastDeliveredDay   *time.Time
	Owner              *Owner
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence. Rows
// stored before their schedule existed get one generated here; a stored
// schedule is never rebuilt.
func ReconstructSubscription(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, errInvalidField("id", p.ID)
	}
	if p.UserID == 0 {
		return nil, errInvalidField("user_id", p.UserID)
	}
	if !p.Status.IsValid() {
		return nil, errInvalidField("status", p.Status)
	}
	for i, d := range p.Deliveries {
		if !d.Status.IsValid() {
			return nil, errInvalidField(fmt.Sprintf("deliveries[%d].status", i), d.Status)
		}
	}

	s := &Subscription{
		id:                 p.ID,
		sid:                p.SID,
		userID:             p.UserID,
		plan:               p.Plan,
		status:             p.Status,
		paymentMethod:      p.PaymentMethod,
		startDate:          p.StartDate,
		endDate:            p.EndDate,
		totalDays:          p.TotalDays,
		deliveredDays:      p.DeliveredDays,
		preferences:        p.Preferences,
		deliveries:         cloneDeliveries(p.Deliveries),
		scheduleGenerated:  p.ScheduleGenerated,
		cancellationReason: p.CancellationReason,
		lastDeliveryDate:   p.LastDeliveryDate,
		lastDeliveredDay:   p.LastDeliveredDay,
		owner:              p.Owner,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}

	if !s.scheduleGenerated && len(s.deliveries) == 0 {
		if s.startDate.IsZero() {
			return nil, errInvalidField("start_date", s.startDate)
		}
		if err := s.generateSchedule(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// generateSchedule builds the delivery list once per aggregate lifetime.
func (s *Subscription) generateSchedule() error {
	if s.scheduleGenerated {
		return ErrScheduleAlreadyGenerated
	}

	deliveries, endDate := GenerateSchedule(biztime.StartOfDayUTC(s.startDate), s.totalDays)
	s.deliveries = deliveries
	s.endDate = endDate
	s.totalDays = len(deliveries)
	s.scheduleGenerated = true
	return nil
}

func (s *Subscription) ID() uint {
	return s.id
}

// SID returns the external identifier (msub_xxx).
func (s *Subscription) SID() string {
	return s.sid
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) Plan() vo.Plan {
	return s.plan
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) PaymentMethod() vo.PaymentMethod {
	return s.paymentMethod
}

func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

func (s *Subscription) EndDate() time.Time {
	return s.endDate
}

func (s *Subscription) TotalDays() int {
	return s.totalDays
}

func (s *Subscription) DeliveredDays() int {
	return s.deliveredDays
}

func (s *Subscription) Preferences() vo.Preferences {
	return s.preferences
}

// Deliveries returns a copy of the schedule.
func (s *Subscription) Deliveries() []Delivery {
	return cloneDeliveries(s.deliveries)
}

func (s *Subscription) ScheduleGenerated() bool {
	return s.scheduleGenerated
}

func (s *Subscription) CancellationReason() *string {
	return s.cancellationReason
}

// LastDeliveryDate is when progress was last recalculated with at least one
// delivered day.
func (s *Subscription) LastDeliveryDate() *time.Time {
	return s.lastDeliveryDate
}

// LastDeliveredDay is the scheduled date of the latest delivered day.
func (s *Subscription) LastDeliveredDay() *time.Time {
	return s.lastDeliveredDay
}

func (s *Subscription) Owner() *Owner {
	return s.owner
}

// Version returns the aggregate version for optimistic locking
func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the database ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IncrementVersion is called by the repository after a successful
// conditional update.
func (s *Subscription) IncrementVersion() {
	s.version++
}

// AttachOwner sets the read-only owner display fields.
func (s *Subscription) AttachOwner(o *Owner) {
	s.owner = o
}

// RecalculateProgress derives deliveredDays, status and the last-delivery
// markers from the schedule. It is idempotent for an unchanged schedule.
//
// Completion is detected regardless of status. Below completion, paused and
// cancelled subscriptions keep their status and every other status becomes
// active. The first undelivered day is promoted from upcoming to scheduled.
func (s *Subscription) RecalculateProgress(now time.Time) {
	delivered := 0
	lastDelivered := -1
	for i, d := range s.deliveries {
		if d.IsDelivered() {
			delivered++
			lastDelivered = i
		}
	}
	s.deliveredDays = delivered

	target := s.totalDays
	if target <= 0 {
		target = len(s.deliveries)
	}

	switch {
	case delivered >= target:
		s.status = vo.StatusCompleted
	case !s.status.IsHeld():
		s.status = vo.StatusActive
	}

	for i := range s.deliveries {
		if s.deliveries[i].IsDelivered() {
			continue
		}
		if s.deliveries[i].Status == vo.DeliveryUpcoming {
			s.deliveries[i].Status = vo.DeliveryScheduled
		}
		break
	}

	if delivered > 0 {
		at := now.UTC()
		s.lastDeliveryDate = &at
		day := s.deliveries[lastDelivered].Date
		s.lastDeliveredDay = &day
	}

	s.updatedAt = now.UTC()
}

// MarkResult describes what MarkDelivered changed.
type MarkResult struct {
	DayIndex         int
	AlreadyDelivered bool
	// Completed is true only when this call moved the subscription into
	// the completed state.
	Completed bool
}

// MarkDelivered records the delivery at dayIndex and recalculates progress.
// Marking an already delivered day is not an error; progress is still
// recalculated so a retry converges on consistent state. Non-empty notes
// replace the existing ones.
func (s *Subscription) MarkDelivered(dayIndex int, notes string, now time.Time) (MarkResult, error) {
	if dayIndex < 0 {
		return MarkResult{}, ErrInvalidDeliveryIndex
	}
	if dayIndex >= len(s.deliveries) {
		return MarkResult{}, fmt.Errorf("%w: %d of %d", ErrDeliveryIndexOutOfRange, dayIndex, len(s.deliveries))
	}

	result := MarkResult{DayIndex: dayIndex}
	wasCompleted := s.status.IsCompleted()

	d := &s.deliveries[dayIndex]
	if d.IsDelivered() {
		result.AlreadyDelivered = true
	} else {
		at := now.UTC()
		d.Status = vo.DeliveryDelivered
		d.DeliveredAt = &at
		if notes != "" {
			d.Notes = notes
		}
	}

	s.RecalculateProgress(now)

	result.Completed = !wasCompleted && s.status.IsCompleted()
	return result, nil
}
