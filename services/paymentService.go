package services

import (
	"context"
	"fmt"
	"time"

	"food-ordering-backend/models"
	"food-ordering-backend/rbac"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentService stores payment method metadata and keeps the single-default
// invariant: a user has at most one method with is_default set, and a new
// default clears the old one inside the same transaction.
type PaymentService struct {
	store PaymentStore
}

func NewPaymentService(store PaymentStore) *PaymentService {
	return &PaymentService{store: store}
}

func (s *PaymentService) AddPaymentMethod(ctx context.Context, principal rbac.Principal, method *models.PaymentMethod) (*models.PaymentMethod, error) {
	if err := rbac.Authorize(principal, rbac.ActionManagePaymentMethod, principal.Country); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	method.ID = primitive.NewObjectID()
	method.Payment_method_id = method.ID.Hex()
	method.Created_at = now
	method.Updated_at = now

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if method.Is_default {
			if err := s.store.ClearDefaultFlags(ctx, *method.User_id, method.Payment_method_id); err != nil {
				return err
			}
		}
		return s.store.InsertPaymentMethod(ctx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

func (s *PaymentService) SetDefault(ctx context.Context, principal rbac.Principal, paymentMethodID string) error {
	if err := rbac.Authorize(principal, rbac.ActionManagePaymentMethod, principal.Country); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context) error {
		method, err := s.store.PaymentMethodByID(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if err := s.store.ClearDefaultFlags(ctx, *method.User_id, paymentMethodID); err != nil {
			return err
		}
		return s.store.SetDefaultFlag(ctx, paymentMethodID)
	})
}

func (s *PaymentService) UpdatePaymentMethod(ctx context.Context, principal rbac.Principal, paymentMethodID string, provider *string, isDefault *bool) error {
	if err := rbac.Authorize(principal, rbac.ActionManagePaymentMethod, principal.Country); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context) error {
		method, err := s.store.PaymentMethodByID(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if isDefault != nil && *isDefault {
			if err := s.store.ClearDefaultFlags(ctx, *method.User_id, paymentMethodID); err != nil {
				return err
			}
		}
		return s.store.UpdatePaymentMethod(ctx, paymentMethodID, provider, isDefault)
	})
}

// ListPaymentMethods returns userID's methods. Non-admins may only read
// their own, whatever the country.
func (s *PaymentService) ListPaymentMethods(ctx context.Context, principal rbac.Principal, userID string, startIndex, recordPerPage int64) ([]models.PaymentMethod, error) {
	if err := rbac.Authorize(principal, rbac.ActionViewPaymentMethod, principal.Country); err != nil {
		return nil, err
	}
	if principal.Role != rbac.RoleAdmin && userID != principal.Uid {
		return nil, fmt.Errorf("%w: can only view own payment methods", rbac.ErrPermissionDenied)
	}
	return s.store.ListPaymentMethods(ctx, userID, startIndex, recordPerPage)
}
