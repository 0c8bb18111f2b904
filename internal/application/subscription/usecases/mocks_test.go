package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"mealsub/internal/domain/shared/events"
	"mealsub/internal/domain/subscription"
	vo "mealsub/internal/domain/subscription/valueobjects"
	"mealsub/internal/shared/biztime"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetLatestByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetByUserIDAndStatuses(ctx context.Context, userID uint, statuses []vo.SubscriptionStatus) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, userID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) List(ctx context.Context, filter subscription.SubscriptionFilter) ([]*subscription.Subscription, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*subscription.Subscription), args.Get(1).(int64), args.Error(2)
}

// fakeLocker grants each key once until it is released.
type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
	keys []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) TryLock(_ context.Context, key string) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) PublishAll(es []events.DomainEvent) error {
	for _, e := range es {
		_ = p.Publish(e)
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(s string) string { return s }

// fixedClock pins "now" to 10:00 business time on day.
func fixedClock(day string) Clock {
	d, err := biztime.ParseDate(day)
	if err != nil {
		panic(err)
	}
	at := d.Add(10 * time.Hour)
	return func() time.Time { return at }
}

func testSubscription(id uint, status vo.SubscriptionStatus, start string) *subscription.Subscription {
	startDay, err := biztime.ParseDate(start)
	if err != nil {
		panic(err)
	}
	deliveries, end := subscription.GenerateSchedule(startDay, 7)
	sub, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:                id,
		SID:               "msub_abcdefghijkl",
		UserID:            42,
		Plan:              vo.PlanWeekly,
		Status:            status,
		PaymentMethod:     vo.PaymentCOD,
		StartDate:         startDay,
		EndDate:           end,
		TotalDays:         7,
		Preferences:       vo.Preferences{DietType: vo.DietVeg, SpiceLevel: vo.SpiceMild, DeliveryTime: vo.DeliveryLunch},
		Deliveries:        deliveries,
		ScheduleGenerated: true,
		Version:           1,
		CreatedAt:         startDay,
		UpdatedAt:         startDay,
	})
	if err != nil {
		panic(err)
	}
	return sub
}
