package subscription

// Owner carries the display fields of the subscribing user. It is resolved
// from the user store and never written by this service.
type Owner struct {
	ID    uint
	Name  string
	Email string
	Phone string
}
