package permission

import "mealsub/internal/shared/authorization"

const (
	ResourceSubscription = "subscription"
	ResourceDelivery     = "delivery"

	ActionCreate  = "create"
	ActionReadOwn = "read_own"
	ActionList    = "list"
	ActionMark    = "mark"
)

// DefaultPolicies grants subscribers self-service and admins the operator
// endpoints. Admins also hold every subscriber permission.
func DefaultPolicies() [][]string {
	admin := string(authorization.RoleAdmin)
	user := string(authorization.RoleUser)

	return [][]string{
		{user, ResourceSubscription, ActionCreate},
		{user, ResourceSubscription, ActionReadOwn},

		{admin, ResourceSubscription, ActionCreate},
		{admin, ResourceSubscription, ActionReadOwn},
		{admin, ResourceSubscription, ActionList},
		{admin, ResourceDelivery, ActionMark},
	}
}
