package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"international-payments-backend/internal/apperrors"
	"international-payments-backend/internal/events"
	"international-payments-backend/internal/models"
	"international-payments-backend/internal/repository"
	"international-payments-backend/internal/services/risk"
	"international-payments-backend/internal/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	minRejectionReasonLen = 10
)

// PaymentStore is the persistence surface the service needs. Implemented by
// repository.PaymentRepository.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByTransactionID(ctx context.Context, txID string) (*models.Payment, error)
	Save(ctx context.Context, p *models.Payment) error
	List(ctx context.Context, opts repository.ListOptions) ([]models.Payment, int64, error)
	Stats(ctx context.Context, employeeID *uuid.UUID) ([]repository.StatusStat, error)
	ByCountry(ctx context.Context) ([]repository.CountryStat, error)
}

// IdentityStore resolves acting employees and customers.
type IdentityStore interface {
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service orchestrates validation, risk assessment and the payment
// lifecycle behind the use-case operations.
type Service struct {
	store     PaymentStore
	identity  IdentityStore
	assessor  *risk.Assessor
	publisher events.Publisher
	log       *slog.Logger
}

func NewService(store PaymentStore, identity IdentityStore, assessor *risk.Assessor, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		identity:  identity,
		assessor:  assessor,
		publisher: publisher,
		log:       log,
	}
}

func (s *Service) activeEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	emp, err := s.identity.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !emp.IsActive {
		return nil, &apperrors.AuthorizationError{
			ActorID: id.String(),
			Action:  "act on payments",
			Reason:  "employee account is inactive",
		}
	}
	return emp, nil
}

// CreatePayment validates raw input, scores it, and persists a new draft.
func (s *Service) CreatePayment(ctx context.Context, req validation.PaymentRequest, employeeID, customerID uuid.UUID) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.identity.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &apperrors.NotFoundError{Kind: "customer", ID: customerID.String()}
	}

	draft, verr := validation.ValidatePaymentRequest(req)
	if verr != nil {
		return nil, verr
	}

	assessment, err := s.assessor.Assess(ctx, customerID, draft.Amount, draft.BeneficiaryBank.Country)
	if err != nil {
		return nil, err
	}

	p := models.NewPayment(models.NewTransactionID(), emp.ID, customerID)
	p.Amount = draft.Amount
	p.Currency = draft.Currency
	p.Beneficiary = draft.Beneficiary
	p.BeneficiaryBank = draft.BeneficiaryBank
	p.Intermediary = draft.Intermediary
	p.Compliance = draft.Compliance
	p.Compliance.AMLRiskLevel = assessment.Tier
	p.FraudScore = assessment.Score

	if flags, err := json.Marshal(assessment.Flags); err == nil {
		p.FraudFlags = flags
	}
	if details, err := json.Marshal(assessment.Details); err == nil {
		p.RiskDetails = details
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("payment created",
		"transaction_id", p.TransactionID,
		"amount", p.Amount.String(),
		"currency", p.Currency,
		"destination", p.DestinationCountry(),
		"fraud_score", p.FraudScore,
		"aml_risk", p.Compliance.AMLRiskLevel,
	)
	return toView(p), nil
}

// SubmitForReview moves a draft into the review queue. A very_high AML tier
// auto-rejects instead.
func (s *Service) SubmitForReview(ctx context.Context, txID string, employeeID uuid.UUID) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if p.SubmittingEmployeeID != emp.ID && !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "submit payment " + txID,
			Reason:  "payment belongs to another employee",
		}
	}

	return s.transition(ctx, p, emp.ID, func() error {
		return p.Submit(emp.ID)
	})
}

// ApprovePayment records an approval decision by an elevated, non-submitting
// employee.
func (s *Service) ApprovePayment(ctx context.Context, txID string, approverID uuid.UUID, note string) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, approverID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, p, emp.ID, func() error {
		return p.Approve(*emp, note)
	})
}

// RejectPayment records a rejection. The reason must carry enough substance
// for the audit trail.
func (s *Service) RejectPayment(ctx context.Context, txID string, approverID uuid.UUID, reason string) (*PaymentView, error) {
	if len(strings.TrimSpace(reason)) < minRejectionReasonLen {
		return nil, &apperrors.ValidationError{Fields: []apperrors.FieldError{
			{Field: "reason", Reason: "rejection reason must be at least 10 characters"},
		}}
	}

	emp, err := s.activeEmployee(ctx, approverID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, p, emp.ID, func() error {
		return p.Reject(*emp, strings.TrimSpace(reason))
	})
}

// ProcessPayment hands an approved payment to settlement.
func (s *Service) ProcessPayment(ctx context.Context, txID string, actorID uuid.UUID) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "process payment " + txID,
			Reason:  "role " + string(emp.Role) + " may not process payments",
		}
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, p, emp.ID, func() error {
		return p.StartProcessing(emp.ID)
	})
}

// CancelPayment cancels a payment that has not yet reached processing.
func (s *Service) CancelPayment(ctx context.Context, txID string, actorID uuid.UUID, reason string) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if p.SubmittingEmployeeID != emp.ID && !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "cancel payment " + txID,
			Reason:  "payment belongs to another employee",
		}
	}

	return s.transition(ctx, p, emp.ID, func() error {
		return p.Cancel(emp.ID, reason)
	})
}

// transition runs a lifecycle mutation, persists it, and publishes the
// status change when one happened.
func (s *Service) transition(ctx context.Context, p *models.Payment, actor uuid.UUID, mutate func() error) (*PaymentView, error) {
	oldStatus := p.Status
	if err := mutate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}

	if p.Status != oldStatus {
		s.publisher.PublishStatusChange(ctx, events.StatusEvent{
			TransactionID: p.TransactionID,
			OldStatus:     oldStatus,
			NewStatus:     p.Status,
			Actor:         actor.String(),
			OccurredAt:    time.Now(),
		})
		s.log.Info("payment status changed",
			"transaction_id", p.TransactionID,
			"from", oldStatus,
			"to", p.Status,
			"actor", actor.String(),
		)
	}
	return toView(p), nil
}

// GetPayment returns one payment; staff may only read their own.
func (s *Service) GetPayment(ctx context.Context, txID string, requesterID uuid.UUID) (*PaymentView, error) {
	emp, err := s.activeEmployee(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if p.SubmittingEmployeeID != emp.ID && !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "read payment " + txID,
			Reason:  "payment belongs to another employee",
		}
	}
	return toView(p), nil
}

// Query bounds a payment list request.
type Query struct {
	Status   models.PaymentStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

func (q *Query) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// GetEmployeePayments lists an employee's payments newest-first. Reading
// another employee's payments requires an elevated role.
func (s *Service) GetEmployeePayments(ctx context.Context, employeeID, requesterID uuid.UUID, q Query) (*PaymentList, error) {
	emp, err := s.activeEmployee(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if employeeID != emp.ID && !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "list payments of employee " + employeeID.String(),
			Reason:  "role " + string(emp.Role) + " may only list its own payments",
		}
	}

	q.normalize()
	items, total, err := s.store.List(ctx, repository.ListOptions{
		EmployeeID: &employeeID,
		Status:     q.Status,
		From:       q.From,
		To:         q.To,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &PaymentList{Items: toViews(items), Meta: pageMeta(q.Page, q.PageSize, total)}, nil
}

// GetPendingApprovals lists the review queue oldest-first so reviews are
// worked in submission order.
func (s *Service) GetPendingApprovals(ctx context.Context, requesterID uuid.UUID, q Query) (*PaymentList, error) {
	emp, err := s.activeEmployee(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "list pending approvals",
			Reason:  "role " + string(emp.Role) + " may not review payments",
		}
	}

	q.normalize()
	items, total, err := s.store.List(ctx, repository.ListOptions{
		Status:      models.StatusPendingReview,
		From:        q.From,
		To:          q.To,
		Page:        q.Page,
		PageSize:    q.PageSize,
		OldestFirst: true,
	})
	if err != nil {
		return nil, err
	}
	return &PaymentList{Items: toViews(items), Meta: pageMeta(q.Page, q.PageSize, total)}, nil
}

// GetPaymentStats returns the per-status rollup: global for elevated roles,
// scoped to the requester otherwise.
func (s *Service) GetPaymentStats(ctx context.Context, requesterID uuid.UUID) ([]repository.StatusStat, error) {
	emp, err := s.activeEmployee(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	scope := &emp.ID
	if emp.Role.Elevated() {
		scope = nil
	}
	return s.store.Stats(ctx, scope)
}

// GetPaymentsByCountry returns the per-destination-country rollup.
func (s *Service) GetPaymentsByCountry(ctx context.Context, requesterID uuid.UUID) ([]repository.CountryStat, error) {
	emp, err := s.activeEmployee(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !emp.Role.Elevated() {
		return nil, &apperrors.AuthorizationError{
			ActorID: emp.ID.String(),
			Action:  "read country statistics",
			Reason:  "role " + string(emp.Role) + " may not read global statistics",
		}
	}
	return s.store.ByCountry(ctx)
}
