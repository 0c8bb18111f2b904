package valueobjects

import "fmt"

// DeliveryStatus is the fulfilment state of a single scheduled day.
type DeliveryStatus string

const (
	DeliveryUpcoming  DeliveryStatus = "upcoming"
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryDelivered DeliveryStatus = "delivered"
	// DeliverySkipped and DeliveryCancelled are reserved for administrative
	// tooling outside this service and have no write path here.
	DeliverySkipped   DeliveryStatus = "skipped"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

var ValidDeliveryStatuses = map[DeliveryStatus]bool{
	DeliveryUpcoming:  true,
	DeliveryScheduled: true,
	DeliveryDelivered: true,
	DeliverySkipped:   true,
	DeliveryCancelled: true,
}

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsValid() bool {
	return ValidDeliveryStatuses[s]
}

func (s DeliveryStatus) IsDelivered() bool {
	return s == DeliveryDelivered
}

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid delivery status: %s", s)
	}
	return status, nil
}
