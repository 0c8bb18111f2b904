package events

import (
	"fmt"
	"sync"

	"mealsub/internal/shared/logger"
)

// InMemoryEventDispatcher delivers events to subscribed handlers from a
// single background goroutine. Publishing never blocks: a full buffer is
// reported to the caller.
type InMemoryEventDispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	eventCh  chan DomainEvent
	wg       sync.WaitGroup
	logger   logger.Interface
}

// NewInMemoryEventDispatcher creates a new in-memory event dispatcher
func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		stopCh:   make(chan struct{}),
		eventCh:  make(chan DomainEvent, bufferSize),
		logger:   log,
	}
}

// Publish publishes a single event
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full")
	}
}

// PublishAll publishes multiple events
func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.GetEventType(), err)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// Start starts the event dispatcher
func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}

	d.running = true
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.processEvents()
	}()

	return nil
}

// Stop stops the dispatcher after draining buffered events.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *InMemoryEventDispatcher) processEvents() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.handleEvent(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.handleEvent(event)
		}
	}
}

// handleEvent runs handlers in order on the dispatcher goroutine so events
// for one aggregate are observed in publish order.
func (d *InMemoryEventDispatcher) handleEvent(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, h := range handlers {
		if !h.CanHandle(event.GetEventType()) {
			continue
		}
		d.safeHandle(h, event)
	}
}

func (d *InMemoryEventDispatcher) safeHandle(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("event handler panicked",
				"event_type", event.GetEventType(),
				"aggregate_id", event.GetAggregateID(),
				"panic", r,
			)
		}
	}()

	if err := h.Handle(event); err != nil {
		d.logger.Warnw("event handler failed",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}

// SimpleEventHandler adapts a function to EventHandler.
type SimpleEventHandler struct {
	eventType string
	handler   func(DomainEvent) error
}

func NewSimpleEventHandler(eventType string, handler func(DomainEvent) error) *SimpleEventHandler {
	return &SimpleEventHandler{
		eventType: eventType,
		handler:   handler,
	}
}

func (h *SimpleEventHandler) Handle(event DomainEvent) error {
	if h.handler != nil {
		return h.handler(event)
	}
	return nil
}

func (h *SimpleEventHandler) CanHandle(eventType string) bool {
	return h.eventType == eventType
}

// NoopPublisher drops every event. Used where no dispatcher is wired.
type NoopPublisher struct{}

func (NoopPublisher) Publish(DomainEvent) error      { return nil }
func (NoopPublisher) PublishAll([]DomainEvent) error { return nil }
