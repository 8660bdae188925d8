package validation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var maxPaymentAmount = decimal.NewFromInt(10_000_000)

// ValidateCountryCode checks a 2-letter ISO 3166-1 alpha-2 code.
func ValidateCountryCode(code string) (string, error) {
	cc := strings.ToUpper(strings.TrimSpace(code))
	if len(cc) != 2 || !isLetter(cc[0]) || !isLetter(cc[1]) {
		return "", errors.New("country code must be 2 letters")
	}
	if !isoCountries[cc] {
		return "", errors.New("unknown ISO country code")
	}
	return cc, nil
}

// ValidateCurrency checks a 3-letter code against the international
// currency allow-list.
func ValidateCurrency(code string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(code))
	if len(cur) != 3 {
		return "", errors.New("currency code must be 3 letters")
	}
	for i := 0; i < 3; i++ {
		if !isLetter(cur[i]) {
			return "", errors.New("currency code must be 3 letters")
		}
	}
	if !internationalCurrencies[cur] {
		return "", errors.New("currency not supported for international payments")
	}
	return cur, nil
}

// ValidatePurposeCode checks membership in the closed purpose enumeration
// and returns the code with its description.
func ValidatePurposeCode(code string) (string, string, error) {
	pc := strings.ToUpper(strings.TrimSpace(code))
	desc, ok := purposeCodes[pc]
	if !ok {
		return "", "", errors.New("unknown payment purpose code")
	}
	return pc, desc, nil
}

// ValidateBeneficiaryName accepts 2-100 characters of letters, spaces,
// hyphens and periods.
func ValidateBeneficiaryName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if len(n) < 2 || len(n) > 100 {
		return "", errors.New("beneficiary name must be 2-100 characters")
	}
	for _, r := range n {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == ' ', r == '-', r == '.':
		default:
			return "", errors.New("beneficiary name may only contain letters, spaces, hyphens and periods")
		}
	}
	return n, nil
}

// ValidatePaymentReference accepts an optional reference of at most 35
// characters from the restricted SWIFT character set (letters, digits,
// spaces, hyphen, slash). Empty input is valid.
func ValidatePaymentReference(ref string) (string, error) {
	r := strings.TrimSpace(ref)
	if r == "" {
		return "", nil
	}
	if len(r) > 35 {
		return "", errors.New("payment reference must be at most 35 characters")
	}
	for _, c := range r {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == ' ', c == '-', c == '/':
		default:
			return "", errors.New("payment reference may only contain letters, digits, spaces, hyphens and slashes")
		}
	}
	return r, nil
}

// ValidateAccountNumber accepts a generic 8-34 character alphanumeric
// account identifier, or a full IBAN when the input parses as one.
func ValidateAccountNumber(acct string) (string, error) {
	a := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(acct), " ", ""))
	if a == "" {
		return "", errors.New("account number is required")
	}

	// Anything shaped like an IBAN must pass the full IBAN check.
	if len(a) >= 4 && isLetter(a[0]) && isLetter(a[1]) && isDigit(a[2]) && isDigit(a[3]) {
		return ValidateIBAN(a)
	}

	if len(a) < 8 || len(a) > 34 {
		return "", errors.New("account number must be 8-34 characters")
	}
	for i := 0; i < len(a); i++ {
		if !isAlphanumeric(a[i]) {
			return "", errors.New("account number may only contain letters and digits")
		}
	}
	return a, nil
}

// ValidateAmount checks a positive amount within the hard ceiling and with
// at most 2 fractional digits. Over-precise amounts are rejected, not
// rounded.
func ValidateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}
	if amount.GreaterThan(maxPaymentAmount) {
		return decimal.Zero, errors.New("amount exceeds the 10,000,000 limit")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, errors.New("amount may have at most 2 decimal places")
	}
	return amount, nil
}
