// Package rbac decides which principal may perform which action on a
// resource owned by a country. It is a pure lookup over a static policy
// table; it never touches the database.
package rbac

import (
	"errors"
	"fmt"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

type Action string

const (
	ActionManageRestaurant    Action = "manage-restaurant"
	ActionManageMenu          Action = "manage-menu"
	ActionViewRestaurant      Action = "view-restaurant"
	ActionCreateOrder         Action = "create-order"
	ActionAddOrderItem        Action = "add-order-item"
	ActionCheckoutOrder       Action = "checkout-order"
	ActionCancelOrder         Action = "cancel-order"
	ActionManagePaymentMethod Action = "manage-payment-method"
	ActionViewPaymentMethod   Action = "view-payment-method"
)

// Principal is the authenticated actor, as resolved by the auth middleware.
// It is read-only for the duration of a request.
type Principal struct {
	Uid     string
	Role    string
	Country string
}

// scope is the country constraint attached to a (role, action) grant.
type scope int

const (
	scopeNone scope = iota // action not permitted for the role at all
	scopeOwnCountry
	scopeAny
)

// policy is the full rule table. A missing role or action means deny.
var policy = map[string]map[Action]scope{
	RoleAdmin: {
		ActionManageRestaurant:    scopeAny,
		ActionManageMenu:          scopeAny,
		ActionViewRestaurant:      scopeAny,
		ActionCreateOrder:         scopeAny,
		ActionAddOrderItem:        scopeAny,
		ActionCheckoutOrder:       scopeAny,
		ActionCancelOrder:         scopeAny,
		ActionManagePaymentMethod: scopeAny,
		ActionViewPaymentMethod:   scopeAny,
	},
	RoleManager: {
		ActionViewRestaurant:    scopeOwnCountry,
		ActionCreateOrder:       scopeOwnCountry,
		ActionAddOrderItem:      scopeOwnCountry,
		ActionCheckoutOrder:     scopeOwnCountry,
		ActionCancelOrder:       scopeOwnCountry,
		ActionViewPaymentMethod: scopeOwnCountry,
	},
	RoleMember: {
		ActionViewRestaurant:    scopeOwnCountry,
		ActionCreateOrder:       scopeOwnCountry,
		ActionAddOrderItem:      scopeOwnCountry,
		ActionViewPaymentMethod: scopeOwnCountry,
	},
}

// ErrPermissionDenied is the sentinel every deny unwraps to.
var ErrPermissionDenied = errors.New("permission denied")

type DenyReason string

const (
	DenyRole    DenyReason = "role not permitted"
	DenyCountry DenyReason = "country mismatch"
)

// PermissionError carries the classified reason for a deny.
type PermissionError struct {
	Reason DenyReason
	Role   string
	Action Action
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s (role=%s action=%s)", e.Reason, e.Role, e.Action)
}

func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }

// Authorize decides whether principal may perform action on a resource owned
// by resourceCountry. A nil return means allow; otherwise the error unwraps
// to ErrPermissionDenied and names the reason.
func Authorize(principal Principal, action Action, resourceCountry string) error {
	grants, ok := policy[principal.Role]
	if !ok {
		return &PermissionError{Reason: DenyRole, Role: principal.Role, Action: action}
	}
	switch grants[action] {
	case scopeAny:
		return nil
	case scopeOwnCountry:
		if principal.Country == resourceCountry {
			return nil
		}
		return &PermissionError{Reason: DenyCountry, Role: principal.Role, Action: action}
	default:
		return &PermissionError{Reason: DenyRole, Role: principal.Role, Action: action}
	}
}

// CountryScope is the visibility predicate applied to every list query.
type CountryScope struct {
	All     bool
	Country string
}

// Matches reports whether a resource owned by country is visible in the scope.
func (s CountryScope) Matches(country string) bool {
	return s.All || s.Country == country
}

// ScopeFilter returns the country predicate for principal: every country for
// ADMIN, the principal's own country for everyone else.
func ScopeFilter(principal Principal) CountryScope {
	if principal.Role == RoleAdmin {
		return CountryScope{All: true}
	}
	return CountryScope{Country: principal.Country}
}
