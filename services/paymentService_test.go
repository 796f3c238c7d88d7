package services

import (
	"context"
	"testing"

	"food-ordering-backend/models"
	"food-ordering-backend/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentMethod(userID string, isDefault bool) *models.PaymentMethod {
	methodType := "CARD"
	provider := "visa"
	lastFour := "4242"
	return &models.PaymentMethod{
		User_id:    &userID,
		Type:       &methodType,
		Provider:   &provider,
		Last_four:  &lastFour,
		Is_default: isDefault,
	}
}

func TestAddPaymentMethodDefaultInvariant(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewPaymentService(store)

	first, err := svc.AddPaymentMethod(ctx, admin, newPaymentMethod("user-1", true))
	require.NoError(t, err)
	second, err := svc.AddPaymentMethod(ctx, admin, newPaymentMethod("user-1", true))
	require.NoError(t, err)

	assert.Equal(t, 1, store.defaultCount("user-1"))
	got, err := store.PaymentMethodByID(ctx, second.Payment_method_id)
	require.NoError(t, err)
	assert.True(t, got.Is_default)
	old, err := store.PaymentMethodByID(ctx, first.Payment_method_id)
	require.NoError(t, err)
	assert.False(t, old.Is_default)
}

func TestSetDefaultSequence(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewPaymentService(store)

	store.seedPaymentMethod("pm-a", "user-1", false)
	store.seedPaymentMethod("pm-b", "user-1", false)
	store.seedPaymentMethod("pm-c", "user-1", false)
	store.seedPaymentMethod("pm-x", "user-2", true)

	for _, id := range []string{"pm-a", "pm-b", "pm-a", "pm-c", "pm-b"} {
		require.NoError(t, svc.SetDefault(ctx, admin, id))
		assert.Equal(t, 1, store.defaultCount("user-1"))
	}

	got, err := store.PaymentMethodByID(ctx, "pm-b")
	require.NoError(t, err)
	assert.True(t, got.Is_default)

	// Another user's default is untouched.
	assert.Equal(t, 1, store.defaultCount("user-2"))
}

func TestSetDefaultMissingMethod(t *testing.T) {
	store := newMemoryStore()
	svc := NewPaymentService(store)
	err := svc.SetDefault(context.Background(), admin, "pm-ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManagePaymentMethodIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.seedPaymentMethod("pm-a", managerTH.Uid, false)
	svc := NewPaymentService(store)

	for _, principal := range []rbac.Principal{managerTH, memberTH} {
		_, err := svc.AddPaymentMethod(ctx, principal, newPaymentMethod(principal.Uid, false))
		require.ErrorIs(t, err, rbac.ErrPermissionDenied)

		err = svc.SetDefault(ctx, principal, "pm-a")
		require.ErrorIs(t, err, rbac.ErrPermissionDenied)
	}
}

func TestUpdatePaymentMethodDefaultFlag(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewPaymentService(store)

	store.seedPaymentMethod("pm-a", "user-1", true)
	store.seedPaymentMethod("pm-b", "user-1", false)

	isDefault := true
	provider := "mastercard"
	require.NoError(t, svc.UpdatePaymentMethod(ctx, admin, "pm-b", &provider, &isDefault))

	assert.Equal(t, 1, store.defaultCount("user-1"))
	got, err := store.PaymentMethodByID(ctx, "pm-b")
	require.NoError(t, err)
	assert.True(t, got.Is_default)
	assert.Equal(t, "mastercard", *got.Provider)
}

func TestListPaymentMethodsVisibility(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewPaymentService(store)

	store.seedPaymentMethod("pm-a", memberTH.Uid, true)
	store.seedPaymentMethod("pm-b", managerTH.Uid, true)

	own, err := svc.ListPaymentMethods(ctx, memberTH, memberTH.Uid, 0, 20)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = svc.ListPaymentMethods(ctx, memberTH, managerTH.Uid, 0, 20)
	require.ErrorIs(t, err, rbac.ErrPermissionDenied)

	any, err := svc.ListPaymentMethods(ctx, admin, managerTH.Uid, 0, 20)
	require.NoError(t, err)
	assert.Len(t, any, 1)
}
