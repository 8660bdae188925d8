package validation

import (
	"errors"
	"strings"
)

// ValidateSWIFT checks a SWIFT/BIC code structurally and returns it
// normalized to uppercase. A BIC is 8 or 11 characters: 4-letter bank code,
// 2-letter country code, 2 alphanumeric location characters, and an optional
// 3 alphanumeric branch code. Each sub-field is checked explicitly; a single
// pattern match would accept strings that decompose incorrectly.
func ValidateSWIFT(code string) (string, error) {
	bic := strings.ToUpper(strings.TrimSpace(code))

	if len(bic) != 8 && len(bic) != 11 {
		return "", errors.New("SWIFT/BIC code must be 8 or 11 characters")
	}

	for i := 0; i < 4; i++ {
		if !isLetter(bic[i]) {
			return "", errors.New("SWIFT/BIC bank code (characters 1-4) must be letters")
		}
	}
	for i := 4; i < 6; i++ {
		if !isLetter(bic[i]) {
			return "", errors.New("SWIFT/BIC country code (characters 5-6) must be letters")
		}
	}
	if !isoCountries[bic[4:6]] {
		return "", errors.New("SWIFT/BIC country code is not a valid ISO country")
	}
	for i := 6; i < 8; i++ {
		if !isAlphanumeric(bic[i]) {
			return "", errors.New("SWIFT/BIC location code (characters 7-8) must be alphanumeric")
		}
	}
	if len(bic) == 11 {
		for i := 8; i < 11; i++ {
			if !isAlphanumeric(bic[i]) {
				return "", errors.New("SWIFT/BIC branch code (characters 9-11) must be alphanumeric")
			}
		}
	}

	return bic, nil
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(c byte) bool {
	return isLetter(c) || isDigit(c)
}
