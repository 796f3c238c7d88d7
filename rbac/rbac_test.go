package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allActions = []Action{
	ActionManageRestaurant,
	ActionManageMenu,
	ActionViewRestaurant,
	ActionCreateOrder,
	ActionAddOrderItem,
	ActionCheckoutOrder,
	ActionCancelOrder,
	ActionManagePaymentMethod,
	ActionViewPaymentMethod,
}

func TestAuthorizeRuleTable(t *testing.T) {
	tests := []struct {
		name            string
		role            string
		action          Action
		resourceCountry string
		allowed         bool
		reason          DenyReason
	}{
		{"admin_manages_any_country", RoleAdmin, ActionManageRestaurant, "SG", true, ""},
		{"admin_checkout_any_country", RoleAdmin, ActionCheckoutOrder, "SG", true, ""},
		{"manager_views_own_country", RoleManager, ActionViewRestaurant, "TH", true, ""},
		{"manager_views_other_country", RoleManager, ActionViewRestaurant, "SG", false, DenyCountry},
		{"manager_orders_own_country", RoleManager, ActionCreateOrder, "TH", true, ""},
		{"manager_checkout_own_country", RoleManager, ActionCheckoutOrder, "TH", true, ""},
		{"manager_checkout_other_country", RoleManager, ActionCheckoutOrder, "SG", false, DenyCountry},
		{"manager_cannot_manage_restaurant", RoleManager, ActionManageRestaurant, "TH", false, DenyRole},
		{"manager_cannot_manage_payments", RoleManager, ActionManagePaymentMethod, "TH", false, DenyRole},
		{"member_orders_own_country", RoleMember, ActionAddOrderItem, "TH", true, ""},
		{"member_orders_other_country", RoleMember, ActionAddOrderItem, "SG", false, DenyCountry},
		{"member_never_checks_out", RoleMember, ActionCheckoutOrder, "TH", false, DenyRole},
		{"member_never_cancels", RoleMember, ActionCancelOrder, "TH", false, DenyRole},
		{"member_cannot_manage_menu", RoleMember, ActionManageMenu, "TH", false, DenyRole},
		{"unknown_role", "INTERN", ActionViewRestaurant, "TH", false, DenyRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := Principal{Uid: "u-1", Role: tt.role, Country: "TH"}
			err := Authorize(principal, tt.action, tt.resourceCountry)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrPermissionDenied)
			var permErr *PermissionError
			require.True(t, errors.As(err, &permErr))
			assert.Equal(t, tt.reason, permErr.Reason)
		})
	}
}

func TestAuthorizeIsDeterministic(t *testing.T) {
	principal := Principal{Uid: "u-1", Role: RoleManager, Country: "TH"}
	for _, action := range allActions {
		for _, country := range []string{"TH", "SG"} {
			first := Authorize(principal, action, country)
			for i := 0; i < 3; i++ {
				again := Authorize(principal, action, country)
				assert.Equal(t, first == nil, again == nil, "action %s country %s", action, country)
			}
		}
	}
}

func TestMemberNeverCheckoutOrCancelAnywhere(t *testing.T) {
	for _, country := range []string{"TH", "SG", "US"} {
		principal := Principal{Uid: "u-1", Role: RoleMember, Country: country}
		for _, action := range []Action{ActionCheckoutOrder, ActionCancelOrder} {
			// Even a country match must not help.
			err := Authorize(principal, action, country)
			assert.ErrorIs(t, err, ErrPermissionDenied)
		}
	}
}

func TestCountryMismatchAlwaysDeniesNonAdmins(t *testing.T) {
	for _, role := range []string{RoleManager, RoleMember} {
		principal := Principal{Uid: "u-1", Role: role, Country: "TH"}
		for _, action := range allActions {
			if err := Authorize(principal, action, "SG"); err == nil {
				t.Errorf("role %s allowed %s across countries", role, action)
			}
		}
	}
	adminPrincipal := Principal{Uid: "u-2", Role: RoleAdmin, Country: "TH"}
	for _, action := range allActions {
		assert.NoError(t, Authorize(adminPrincipal, action, "SG"))
	}
}

func TestScopeFilter(t *testing.T) {
	adminScope := ScopeFilter(Principal{Role: RoleAdmin, Country: "US"})
	assert.True(t, adminScope.Matches("TH"))
	assert.True(t, adminScope.Matches("SG"))

	memberScope := ScopeFilter(Principal{Role: RoleMember, Country: "TH"})
	assert.True(t, memberScope.Matches("TH"))
	assert.False(t, memberScope.Matches("SG"))
}
