package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"international-payments-backend/internal/apperrors"
	"international-payments-backend/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListOptions filters and pages payment queries.
type ListOptions struct {
	EmployeeID  *uuid.UUID
	CustomerID  *uuid.UUID
	Status      models.PaymentStatus
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
	OldestFirst bool
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return &apperrors.DependencyError{Op: "payment.create", Retryable: false, Err: err}
	}
	return nil
}

// GetByTransactionID fetches a payment by its public transaction id.
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).First(&p, "transaction_id = ?", txID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.NotFoundError{Kind: "payment", ID: txID}
	}
	if err != nil {
		return nil, &apperrors.DependencyError{Op: "payment.get", Retryable: true, Err: err}
	}
	return &p, nil
}

// Save writes a modified payment back with an optimistic concurrency check:
// the UPDATE only matches when the stored version equals the version the
// entity was loaded with, so two racing transitions cannot both succeed.
func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	prev := p.Version
	p.Version = prev + 1

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND version = ?", p.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(p)

	if res.Error != nil {
		p.Version = prev
		return &apperrors.DependencyError{Op: "payment.save", Retryable: false, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		p.Version = prev
		return &apperrors.DependencyError{Op: "payment.save", Retryable: false, Err: apperrors.ErrConflict}
	}
	return nil
}

// List returns a page of payments plus the total row count for the filter.
func (r *PaymentRepository) List(ctx context.Context, opts ListOptions) ([]models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})

	if opts.EmployeeID != nil {
		query = query.Where("submitting_employee_id = ?", *opts.EmployeeID)
	}
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.From != nil {
		query = query.Where("created_at >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("created_at <= ?", *opts.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &apperrors.DependencyError{Op: "payment.list", Retryable: true, Err: err}
	}

	order := "created_at DESC"
	if opts.OldestFirst {
		order = "created_at ASC"
	}

	var payments []models.Payment
	err := query.
		Order(order).
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&payments).Error
	if err != nil {
		return nil, 0, &apperrors.DependencyError{Op: "payment.list", Retryable: true, Err: err}
	}
	return payments, total, nil
}

// StatusStat is one row of the per-status rollup.
type StatusStat struct {
	Status models.PaymentStatus `json:"status"`
	Count  int64                `json:"count"`
	Sum    float64              `json:"sum"`
}

// Stats aggregates count and amount sum per status, optionally scoped to
// one submitting employee.
func (r *PaymentRepository) Stats(ctx context.Context, employeeID *uuid.UUID) ([]StatusStat, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if employeeID != nil {
		query = query.Where("submitting_employee_id = ?", *employeeID)
	}

	var rows []StatusStat
	err := query.
		Select("status, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, &apperrors.DependencyError{Op: "payment.stats", Retryable: true, Err: err}
	}
	return rows, nil
}

// CountryStat is one row of the per-destination-country rollup.
type CountryStat struct {
	Country string  `json:"country"`
	Count   int64   `json:"count"`
	Sum     float64 `json:"sum"`
}

// ByCountry aggregates payments by destination country.
func (r *PaymentRepository) ByCountry(ctx context.Context) ([]CountryStat, error) {
	var rows []CountryStat
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("bank_country as country, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("bank_country").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, &apperrors.DependencyError{Op: "payment.by_country", Retryable: true, Err: err}
	}
	return rows, nil
}

// CountRecentPayments implements risk.HistoryReader.
func (r *PaymentRepository) CountRecentPayments(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("customer_id = ? AND created_at >= ?", customerID, since).
		Count(&count).Error
	if err != nil {
		return 0, &apperrors.DependencyError{Op: "payment.count_recent", Retryable: true, Err: err}
	}
	return int(count), nil
}

// HasPaymentToCountry implements risk.HistoryReader. Only payments that got
// past approval count as prior exposure to a destination.
func (r *PaymentRepository) HasPaymentToCountry(ctx context.Context, customerID uuid.UUID, country string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("customer_id = ? AND bank_country = ?", customerID, country).
		Where("status IN ?", []models.PaymentStatus{models.StatusCompleted, models.StatusProcessing, models.StatusSent}).
		Count(&count).Error
	if err != nil {
		return false, &apperrors.DependencyError{Op: "payment.has_country", Retryable: true, Err: err}
	}
	return count > 0, nil
}
