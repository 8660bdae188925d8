package payments

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"international-payments-backend/internal/models"
)

// PaymentView is the sanitized representation returned to callers. Internal
// notes and the optimistic-lock version never leave the service; beneficiary
// account numbers are masked.
type PaymentView struct {
	TransactionID  string                `json:"transaction_id"`
	Amount         decimal.Decimal       `json:"amount"`
	Currency       string                `json:"currency"`
	Status         models.PaymentStatus  `json:"status"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`

	BeneficiaryName     string `json:"beneficiary_name"`
	AccountNumberMasked string `json:"account_number_masked"`
	BankName            string `json:"bank_name"`
	SwiftCode           string `json:"swift_code"`
	DestinationCountry  string `json:"destination_country"`

	PurposeCode        string              `json:"purpose_code"`
	PurposeDescription string              `json:"purpose_description,omitempty"`
	PaymentReference   string              `json:"payment_reference,omitempty"`
	AMLRiskLevel       models.AMLRiskLevel `json:"aml_risk_level"`

	FraudScore int      `json:"fraud_score"`
	FraudFlags []string `json:"fraud_flags,omitempty"`

	ApprovedBy          string     `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	RejectionReason     string     `json:"rejection_reason,omitempty"`
	ExpectedDelivery    *time.Time `json:"expected_delivery,omitempty"`
	SettlementReference string     `json:"settlement_reference,omitempty"`

	StatusHistory []models.StatusChange `json:"status_history"`
	CreatedAt     time.Time             `json:"created_at"`
}

// PageMeta carries pagination metadata alongside list results.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaymentList is a page of sanitized payments.
type PaymentList struct {
	Items []PaymentView `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

func maskAccountNumber(acct string) string {
	if len(acct) <= 4 {
		return acct
	}
	return strings.Repeat("*", len(acct)-4) + acct[len(acct)-4:]
}

func toView(p *models.Payment) *PaymentView {
	v := &PaymentView{
		TransactionID:       p.TransactionID,
		Amount:              p.Amount,
		Currency:            p.Currency,
		Status:              p.Status,
		ApprovalStatus:      p.ApprovalStatus,
		BeneficiaryName:     p.Beneficiary.Name,
		AccountNumberMasked: maskAccountNumber(p.Beneficiary.AccountNumber),
		BankName:            p.BeneficiaryBank.Name,
		SwiftCode:           p.BeneficiaryBank.SwiftCode,
		DestinationCountry:  p.BeneficiaryBank.Country,
		PurposeCode:         p.Compliance.PurposeCode,
		PurposeDescription:  p.Compliance.PurposeDescription,
		PaymentReference:    p.Compliance.PaymentReference,
		AMLRiskLevel:        p.Compliance.AMLRiskLevel,
		FraudScore:          p.FraudScore,
		ApprovedAt:          p.ApprovedAt,
		RejectionReason:     p.RejectionReason,
		ExpectedDelivery:    p.ExpectedDelivery,
		SettlementReference: p.SettlementReference,
		StatusHistory:       p.StatusHistory.Entries(),
		CreatedAt:           p.CreatedAt,
	}
	if p.ApprovedBy != nil {
		v.ApprovedBy = p.ApprovedBy.String()
	}
	if len(p.FraudFlags) > 0 {
		// Stored as a JSON array; decode failures leave the field empty.
		_ = json.Unmarshal(p.FraudFlags, &v.FraudFlags)
	}
	return v
}

func toViews(payments []models.Payment) []PaymentView {
	out := make([]PaymentView, 0, len(payments))
	for i := range payments {
		out = append(out, *toView(&payments[i]))
	}
	return out
}

func pageMeta(page, pageSize int, total int64) PageMeta {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return PageMeta{Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}
