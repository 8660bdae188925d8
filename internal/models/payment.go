package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentStatus is the lifecycle state of an international payment.
type PaymentStatus string

const (
	StatusDraft         PaymentStatus = "draft"
	StatusPendingReview PaymentStatus = "pending_review"
	StatusApproved      PaymentStatus = "approved"
	StatusProcessing    PaymentStatus = "processing"
	StatusSent          PaymentStatus = "sent"
	StatusCompleted     PaymentStatus = "completed"
	StatusFailed        PaymentStatus = "failed"
	StatusCancelled     PaymentStatus = "cancelled"
	StatusRejected      PaymentStatus = "rejected"
)

// ApprovalStatus is the approval decision sub-state, decoupled from
// PaymentStatus so "approved but not yet processed" is representable.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// AMLRiskLevel is the compliance risk tier assigned at submission.
type AMLRiskLevel string

const (
	RiskLow      AMLRiskLevel = "low"
	RiskMedium   AMLRiskLevel = "medium"
	RiskHigh     AMLRiskLevel = "high"
	RiskVeryHigh AMLRiskLevel = "very_high"
)

// Fraud flags attached by the risk assessor.
const (
	FlagHighAmount     = "high_amount"
	FlagVelocityCheck  = "velocity_check"
	FlagNewDestination = "new_destination"
)

// Beneficiary is the receiving party. AccountNumber holds either an IBAN or
// a generic 8-34 char account identifier.
type Beneficiary struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	Street        string `json:"street,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
}

// BankDetails identifies the beneficiary bank by SWIFT/BIC.
type BankDetails struct {
	Name      string `json:"name"`
	SwiftCode string `json:"swift_code"`
	Country   string `json:"country"`
	City      string `json:"city,omitempty"`
}

// IntermediaryBank is an optional correspondent bank on the route.
type IntermediaryBank struct {
	Name          string `json:"name,omitempty"`
	SwiftCode     string `json:"swift_code,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

// ComplianceInfo carries the purpose declaration and the stamped AML /
// sanctions check results. The checks themselves are simulated; only the
// fact and time of the check is recorded.
type ComplianceInfo struct {
	PurposeCode        string       `json:"purpose_code"`
	PurposeDescription string       `json:"purpose_description,omitempty"`
	PaymentReference   string       `json:"payment_reference,omitempty"`
	SourceOfFunds      string       `json:"source_of_funds,omitempty"`
	AMLChecked         bool         `json:"aml_checked"`
	AMLCheckedAt       *time.Time   `json:"aml_checked_at,omitempty"`
	SanctionsChecked   bool         `json:"sanctions_checked"`
	SanctionsCheckedAt *time.Time   `json:"sanctions_checked_at,omitempty"`
	AMLRiskLevel       AMLRiskLevel `json:"aml_risk_level"`
}

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID string    `gorm:"uniqueIndex" json:"transaction_id"`

	Amount   decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	Currency string          `gorm:"size:3;index" json:"currency"`

	Beneficiary     Beneficiary      `gorm:"embedded;embeddedPrefix:beneficiary_" json:"beneficiary"`
	BeneficiaryBank BankDetails      `gorm:"embedded;embeddedPrefix:bank_" json:"beneficiary_bank"`
	Intermediary    IntermediaryBank `gorm:"embedded;embeddedPrefix:intermediary_" json:"intermediary_bank,omitempty"`
	Compliance      ComplianceInfo   `gorm:"embedded;embeddedPrefix:compliance_" json:"compliance"`

	Status         PaymentStatus  `gorm:"index" json:"status"`
	ApprovalStatus ApprovalStatus `gorm:"index" json:"approval_status"`

	FraudScore  int            `json:"fraud_score"`
	FraudFlags  datatypes.JSON `json:"fraud_flags,omitempty"`
	RiskDetails datatypes.JSON `json:"risk_details,omitempty"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	ExpectedDelivery    *time.Time `json:"expected_delivery,omitempty"`
	SettlementReference string     `json:"settlement_reference,omitempty"`
	InternalNotes       string     `json:"-"`

	SubmittingEmployeeID uuid.UUID `gorm:"type:uuid;index" json:"submitting_employee_id"`
	CustomerID           uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`

	StatusHistory StatusLog `gorm:"type:jsonb;serializer:json" json:"status_history"`

	// Version backs the optimistic-concurrency check in the repository.
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DestinationCountry is the country of the beneficiary bank, which drives the
// high-risk country checks.
func (p *Payment) DestinationCountry() string {
	return p.BeneficiaryBank.Country
}
