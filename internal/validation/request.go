package validation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"international-payments-backend/internal/apperrors"
	"international-payments-backend/internal/models"
)

var errBankNameRequired = errors.New("beneficiary bank name is required")

// PaymentRequest is the raw, untrusted input for a new payment. This is the
// single gate between external payloads and the typed entity; unknown JSON
// fields are refused at the decoding layer.
type PaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	Beneficiary struct {
		Name          string `json:"name"`
		AccountNumber string `json:"account_number"`
		Street        string `json:"street"`
		City          string `json:"city"`
		State         string `json:"state"`
		PostalCode    string `json:"postal_code"`
		Country       string `json:"country"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
	} `json:"beneficiary"`

	BeneficiaryBank struct {
		Name      string `json:"name"`
		SwiftCode string `json:"swift_code"`
		Country   string `json:"country"`
		City      string `json:"city"`
	} `json:"beneficiary_bank"`

	Intermediary struct {
		Name          string `json:"name"`
		SwiftCode     string `json:"swift_code"`
		AccountNumber string `json:"account_number"`
	} `json:"intermediary_bank"`

	PurposeCode        string `json:"purpose_code"`
	PurposeDescription string `json:"purpose_description"`
	PaymentReference   string `json:"payment_reference"`
	SourceOfFunds      string `json:"source_of_funds"`
}

// Draft is a fully validated, normalized payment awaiting entity
// construction and risk assessment.
type Draft struct {
	Amount          decimal.Decimal
	Currency        string
	Beneficiary     models.Beneficiary
	BeneficiaryBank models.BankDetails
	Intermediary    models.IntermediaryBank
	Compliance      models.ComplianceInfo
}

// ValidatePaymentRequest checks every field and collects every failure, so
// the caller can surface all problems at once rather than one per attempt.
func ValidatePaymentRequest(req PaymentRequest) (*Draft, *apperrors.ValidationError) {
	var fieldErrs []apperrors.FieldError
	fail := func(field string, err error) {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: field, Reason: err.Error()})
	}

	draft := &Draft{}

	amount, err := ValidateAmount(req.Amount)
	if err != nil {
		fail("amount", err)
	} else {
		draft.Amount = amount
	}

	if cur, err := ValidateCurrency(req.Currency); err != nil {
		fail("currency", err)
	} else {
		draft.Currency = cur
	}

	if name, err := ValidateBeneficiaryName(req.Beneficiary.Name); err != nil {
		fail("beneficiary.name", err)
	} else {
		draft.Beneficiary.Name = name
	}

	if acct, err := ValidateAccountNumber(req.Beneficiary.AccountNumber); err != nil {
		fail("beneficiary.account_number", err)
	} else {
		draft.Beneficiary.AccountNumber = acct
	}

	if req.Beneficiary.Country != "" {
		if cc, err := ValidateCountryCode(req.Beneficiary.Country); err != nil {
			fail("beneficiary.country", err)
		} else {
			draft.Beneficiary.Country = cc
		}
	}
	draft.Beneficiary.Street = strings.TrimSpace(req.Beneficiary.Street)
	draft.Beneficiary.City = strings.TrimSpace(req.Beneficiary.City)
	draft.Beneficiary.State = strings.TrimSpace(req.Beneficiary.State)
	draft.Beneficiary.PostalCode = strings.TrimSpace(req.Beneficiary.PostalCode)
	draft.Beneficiary.Phone = strings.TrimSpace(req.Beneficiary.Phone)
	draft.Beneficiary.Email = strings.TrimSpace(req.Beneficiary.Email)

	if strings.TrimSpace(req.BeneficiaryBank.Name) == "" {
		fail("beneficiary_bank.name", errBankNameRequired)
	} else {
		draft.BeneficiaryBank.Name = strings.TrimSpace(req.BeneficiaryBank.Name)
	}

	if bic, err := ValidateSWIFT(req.BeneficiaryBank.SwiftCode); err != nil {
		fail("beneficiary_bank.swift_code", err)
	} else {
		draft.BeneficiaryBank.SwiftCode = bic
	}

	if cc, err := ValidateCountryCode(req.BeneficiaryBank.Country); err != nil {
		fail("beneficiary_bank.country", err)
	} else {
		draft.BeneficiaryBank.Country = cc
	}
	draft.BeneficiaryBank.City = strings.TrimSpace(req.BeneficiaryBank.City)

	// The intermediary bank is optional as a whole; when any of its fields
	// are present the SWIFT code must be valid.
	if req.Intermediary.Name != "" || req.Intermediary.SwiftCode != "" || req.Intermediary.AccountNumber != "" {
		if bic, err := ValidateSWIFT(req.Intermediary.SwiftCode); err != nil {
			fail("intermediary_bank.swift_code", err)
		} else {
			draft.Intermediary.SwiftCode = bic
		}
		draft.Intermediary.Name = strings.TrimSpace(req.Intermediary.Name)
		if req.Intermediary.AccountNumber != "" {
			if acct, err := ValidateAccountNumber(req.Intermediary.AccountNumber); err != nil {
				fail("intermediary_bank.account_number", err)
			} else {
				draft.Intermediary.AccountNumber = acct
			}
		}
	}

	if pc, desc, err := ValidatePurposeCode(req.PurposeCode); err != nil {
		fail("purpose_code", err)
	} else {
		draft.Compliance.PurposeCode = pc
		draft.Compliance.PurposeDescription = desc
		if d := strings.TrimSpace(req.PurposeDescription); d != "" {
			draft.Compliance.PurposeDescription = d
		}
	}

	if ref, err := ValidatePaymentReference(req.PaymentReference); err != nil {
		fail("payment_reference", err)
	} else {
		draft.Compliance.PaymentReference = ref
	}
	draft.Compliance.SourceOfFunds = strings.TrimSpace(req.SourceOfFunds)

	if len(fieldErrs) > 0 {
		return nil, &apperrors.ValidationError{Fields: fieldErrs}
	}
	return draft, nil
}
