package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"international-payments-backend/internal/apperrors"
	"international-payments-backend/internal/models"
)

// ActorRepository resolves the identities referenced by a payment: the
// submitting employee and the customer on whose behalf it is made.
type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.NotFoundError{Kind: "employee", ID: id.String()}
	}
	if err != nil {
		return nil, &apperrors.DependencyError{Op: "employee.get", Retryable: true, Err: err}
	}
	return &emp, nil
}

func (r *ActorRepository) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, &apperrors.DependencyError{Op: "customer.exists", Retryable: true, Err: err}
	}
	return count > 0, nil
}
