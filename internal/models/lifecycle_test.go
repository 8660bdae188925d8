package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"international-payments-backend/internal/apperrors"
)

func newTestPayment() (*Payment, uuid.UUID) {
	employeeID := uuid.New()
	p := NewPayment(NewTransactionID(), employeeID, uuid.New())
	p.Compliance.AMLRiskLevel = RiskLow
	return p, employeeID
}

func manager() Employee {
	return Employee{ID: uuid.New(), Role: RoleManager, IsActive: true}
}

func TestNewPayment(t *testing.T) {
	p, employeeID := newTestPayment()

	if p.Status != StatusDraft {
		t.Errorf("status = %s, want draft", p.Status)
	}
	if p.ApprovalStatus != ApprovalPending {
		t.Errorf("approval status = %s, want pending", p.ApprovalStatus)
	}
	if p.TransactionID == "" {
		t.Error("transaction id not assigned")
	}
	if p.StatusHistory.Len() != 1 {
		t.Fatalf("history length = %d, want 1", p.StatusHistory.Len())
	}
	entry, _ := p.StatusHistory.Last()
	if entry.Status != StatusDraft || entry.ActorID != employeeID {
		t.Errorf("creation entry = %+v", entry)
	}
}

func TestSubmit_FromDraft(t *testing.T) {
	p, employeeID := newTestPayment()

	if err := p.Submit(employeeID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if p.Status != StatusPendingReview {
		t.Errorf("status = %s, want pending_review", p.Status)
	}
	if !p.Compliance.AMLChecked || !p.Compliance.SanctionsChecked {
		t.Error("compliance checks not stamped")
	}
	if p.Compliance.AMLCheckedAt == nil || p.Compliance.SanctionsCheckedAt == nil {
		t.Error("compliance check dates not stamped")
	}

	// A second submit is an invalid transition.
	err := p.Submit(employeeID)
	var serr *apperrors.StateError
	if !errors.As(err, &serr) {
		t.Fatalf("second submit error = %v, want StateError", err)
	}
	if serr.Current != "pending_review" {
		t.Errorf("StateError.Current = %q", serr.Current)
	}
}

func TestSubmit_VeryHighRiskAutoRejects(t *testing.T) {
	p, employeeID := newTestPayment()
	p.Compliance.AMLRiskLevel = RiskVeryHigh

	if err := p.Submit(employeeID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if p.Status != StatusRejected {
		t.Errorf("status = %s, want rejected", p.Status)
	}
	if p.ApprovalStatus != ApprovalRejected {
		t.Errorf("approval status = %s, want rejected", p.ApprovalStatus)
	}
	if p.RejectionReason == "" {
		t.Error("rejection reason not set")
	}
	entry, _ := p.StatusHistory.Last()
	if entry.Status != StatusRejected {
		t.Errorf("last history entry = %s, want rejected", entry.Status)
	}
}

func TestApprove_OnlyFromPendingReview(t *testing.T) {
	p, _ := newTestPayment()

	err := p.Approve(manager(), "looks fine")
	var serr *apperrors.StateError
	if !errors.As(err, &serr) {
		t.Fatalf("approve on draft = %v, want StateError", err)
	}
	if serr.Current != "draft" {
		t.Errorf("StateError.Current = %q, want draft", serr.Current)
	}
}

func TestApprove_RequiresElevatedRole(t *testing.T) {
	p, employeeID := newTestPayment()
	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}

	staff := Employee{ID: uuid.New(), Role: RoleStaff, IsActive: true}
	err := p.Approve(staff, "")
	var aerr *apperrors.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("staff approve = %v, want AuthorizationError", err)
	}
}

func TestApprove_SelfApprovalForbidden(t *testing.T) {
	p, employeeID := newTestPayment()
	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}

	// Elevated role does not override the self-approval ban.
	self := Employee{ID: employeeID, Role: RoleAdmin, IsActive: true}
	err := p.Approve(self, "")
	var aerr *apperrors.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("self approve = %v, want AuthorizationError", err)
	}
	if p.Status != StatusPendingReview {
		t.Errorf("status changed to %s on refused approval", p.Status)
	}
}

func TestApprove_Success(t *testing.T) {
	p, employeeID := newTestPayment()
	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}

	m := manager()
	if err := p.Approve(m, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if p.Status != StatusApproved || p.ApprovalStatus != ApprovalApproved {
		t.Errorf("status = %s/%s", p.Status, p.ApprovalStatus)
	}
	if p.ApprovedBy == nil || *p.ApprovedBy != m.ID {
		t.Error("approvedBy not recorded")
	}
	if p.ApprovedAt == nil {
		t.Error("approvedAt not recorded")
	}
	entry, _ := p.StatusHistory.Last()
	if entry.Note != "Payment approved" {
		t.Errorf("default note = %q", entry.Note)
	}

	// The approval decision is made once.
	if err := p.Approve(manager(), ""); err == nil {
		t.Fatal("second approve succeeded")
	}
}

func TestReject(t *testing.T) {
	p, employeeID := newTestPayment()
	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}

	m := manager()
	if err := p.Reject(m, ""); err == nil {
		t.Fatal("reject with empty reason succeeded")
	}
	if err := p.Reject(m, "missing source of funds"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if p.Status != StatusRejected || p.ApprovalStatus != ApprovalRejected {
		t.Errorf("status = %s/%s", p.Status, p.ApprovalStatus)
	}
	if p.RejectionReason != "missing source of funds" {
		t.Errorf("reason = %q", p.RejectionReason)
	}
}

func TestStartProcessing(t *testing.T) {
	p, employeeID := newTestPayment()

	// Straight from draft is illegal.
	err := p.StartProcessing(employeeID)
	var serr *apperrors.StateError
	if !errors.As(err, &serr) {
		t.Fatalf("process on draft = %v, want StateError", err)
	}

	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}
	if err := p.Approve(manager(), "ok"); err != nil {
		t.Fatal(err)
	}
	if err := p.StartProcessing(employeeID); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if p.Status != StatusProcessing {
		t.Errorf("status = %s", p.Status)
	}
	if p.ExpectedDelivery == nil {
		t.Fatal("expected delivery not set")
	}
	if p.SettlementReference == "" {
		t.Error("settlement reference not assigned")
	}
}

func TestCanCancel(t *testing.T) {
	p, employeeID := newTestPayment()
	if !p.CanCancel() {
		t.Error("draft should be cancellable")
	}

	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}
	if !p.CanCancel() {
		t.Error("pending_review should be cancellable")
	}

	if err := p.Approve(manager(), ""); err != nil {
		t.Fatal(err)
	}
	if !p.CanCancel() {
		t.Error("approved should be cancellable")
	}

	if err := p.StartProcessing(employeeID); err != nil {
		t.Fatal(err)
	}
	if p.CanCancel() {
		t.Error("processing should not be cancellable")
	}
	if err := p.Cancel(employeeID, ""); err == nil {
		t.Error("cancel from processing succeeded")
	}
}

func TestStatusHistory_AppendOnly(t *testing.T) {
	p, employeeID := newTestPayment()
	if err := p.Submit(employeeID); err != nil {
		t.Fatal(err)
	}
	firstSnapshot := p.StatusHistory.Entries()

	if err := p.Approve(manager(), "ok"); err != nil {
		t.Fatal(err)
	}
	if err := p.StartProcessing(employeeID); err != nil {
		t.Fatal(err)
	}

	// Creation + submit + approve + process.
	if p.StatusHistory.Len() != 4 {
		t.Fatalf("history length = %d, want 4", p.StatusHistory.Len())
	}

	// Earlier entries are unchanged by later transitions.
	current := p.StatusHistory.Entries()
	for i, entry := range firstSnapshot {
		if current[i] != entry {
			t.Errorf("history entry %d changed: %+v -> %+v", i, entry, current[i])
		}
	}

	// Mutating a returned copy must not touch the log.
	entries := p.StatusHistory.Entries()
	entries[0].Note = "tampered"
	fresh := p.StatusHistory.Entries()
	if fresh[0].Note == "tampered" {
		t.Error("Entries() exposed internal storage")
	}
}
