package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"international-payments-backend/internal/apperrors"
)

const settlementLagDays = 3

// NewTransactionID generates the immutable public identifier assigned at
// creation.
func NewTransactionID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	return fmt.Sprintf("INTL-%d-%s", time.Now().Unix(), suffix)
}

// NewPayment constructs the entity in draft with a pending approval decision
// and the creation event already on the audit trail.
func NewPayment(transactionID string, employeeID, customerID uuid.UUID) *Payment {
	p := &Payment{
		ID:                   uuid.New(),
		TransactionID:        transactionID,
		Status:               StatusDraft,
		ApprovalStatus:       ApprovalPending,
		SubmittingEmployeeID: employeeID,
		CustomerID:           customerID,
		CreatedAt:            time.Now(),
	}
	p.StatusHistory.Record(StatusChange{
		Status:    StatusDraft,
		Timestamp: p.CreatedAt,
		ActorID:   employeeID,
		Note:      "Payment created",
	})
	return p
}

func (p *Payment) setStatus(status PaymentStatus, actor uuid.UUID, note string) {
	p.Status = status
	p.StatusHistory.Record(StatusChange{
		Status:    status,
		Timestamp: time.Now(),
		ActorID:   actor,
		Note:      note,
	})
}

func (p *Payment) stateError(attempted string) error {
	return &apperrors.StateError{
		TransactionID: p.TransactionID,
		Current:       string(p.Status),
		Attempted:     attempted,
	}
}

// Submit moves a draft into review. Compliance checks are stamped here; a
// very_high AML tier short-circuits into rejection without ever reaching
// pending_review.
func (p *Payment) Submit(actor uuid.UUID) error {
	if p.Status != StatusDraft {
		return p.stateError("submit")
	}

	now := time.Now()
	p.Compliance.AMLChecked = true
	p.Compliance.AMLCheckedAt = &now
	p.Compliance.SanctionsChecked = true
	p.Compliance.SanctionsCheckedAt = &now

	if p.Compliance.AMLRiskLevel == RiskVeryHigh {
		p.ApprovalStatus = ApprovalRejected
		p.RejectionReason = "Automatically rejected: very high AML risk"
		p.setStatus(StatusRejected, actor, p.RejectionReason)
		return nil
	}

	p.setStatus(StatusPendingReview, actor, "Submitted for review")
	return nil
}

// CanApprove reports whether an approval decision is still open.
func (p *Payment) CanApprove() bool {
	return p.Status == StatusPendingReview && p.ApprovalStatus == ApprovalPending
}

// Approve records the approval decision. The approver must hold an elevated
// role and must not be the employee who submitted the payment.
func (p *Payment) Approve(by Employee, note string) error {
	if !p.CanApprove() {
		return p.stateError("approve")
	}
	if !by.Role.Elevated() {
		return &apperrors.AuthorizationError{
			ActorID: by.ID.String(),
			Action:  "approve payment " + p.TransactionID,
			Reason:  "role " + string(by.Role) + " may not approve payments",
		}
	}
	if by.ID == p.SubmittingEmployeeID {
		return &apperrors.AuthorizationError{
			ActorID: by.ID.String(),
			Action:  "approve payment " + p.TransactionID,
			Reason:  "self-approval is not permitted",
		}
	}

	if note == "" {
		note = "Payment approved"
	}
	now := time.Now()
	p.ApprovalStatus = ApprovalApproved
	p.ApprovedBy = &by.ID
	p.ApprovedAt = &now
	p.setStatus(StatusApproved, by.ID, note)
	return nil
}

// Reject records a rejection with its reason. Same eligibility guard as
// Approve; rejecting one's own submission is allowed.
func (p *Payment) Reject(by Employee, reason string) error {
	if !p.CanApprove() {
		return p.stateError("reject")
	}
	if !by.Role.Elevated() {
		return &apperrors.AuthorizationError{
			ActorID: by.ID.String(),
			Action:  "reject payment " + p.TransactionID,
			Reason:  "role " + string(by.Role) + " may not reject payments",
		}
	}
	if reason == "" {
		return &apperrors.StateError{
			TransactionID: p.TransactionID,
			Current:       string(p.Status),
			Attempted:     "reject without a reason",
		}
	}

	p.ApprovalStatus = ApprovalRejected
	p.RejectionReason = reason
	p.setStatus(StatusRejected, by.ID, reason)
	return nil
}

// StartProcessing hands an approved payment to settlement: assigns the
// settlement reference and the expected delivery date (standard 3-day
// correspondent-banking lag).
func (p *Payment) StartProcessing(actor uuid.UUID) error {
	if p.Status != StatusApproved {
		return p.stateError("process")
	}

	delivery := time.Now().AddDate(0, 0, settlementLagDays)
	p.ExpectedDelivery = &delivery
	p.SettlementReference = "INT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	p.setStatus(StatusProcessing, actor, "Payment processing started")
	return nil
}

// CanCancel holds for anything not yet mid-processing or terminal.
func (p *Payment) CanCancel() bool {
	switch p.Status {
	case StatusDraft, StatusPendingReview, StatusApproved:
		return true
	}
	return false
}

func (p *Payment) Cancel(actor uuid.UUID, reason string) error {
	if !p.CanCancel() {
		return p.stateError("cancel")
	}
	if reason == "" {
		reason = "Payment cancelled"
	}
	p.setStatus(StatusCancelled, actor, reason)
	return nil
}
