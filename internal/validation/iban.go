package validation

import (
	"errors"
	"strings"
)

// ValidateIBAN normalizes an IBAN (strips spaces, uppercases) and verifies
// its structure, country-specific length when the country is in the length
// table, and the ISO 7064 MOD-97-10 checksum.
func ValidateIBAN(input string) (string, error) {
	iban := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))

	if len(iban) < 15 || len(iban) > 34 {
		return "", errors.New("IBAN must be between 15 and 34 characters")
	}
	if !isLetter(iban[0]) || !isLetter(iban[1]) {
		return "", errors.New("IBAN must start with a 2-letter country code")
	}
	if !isDigit(iban[2]) || !isDigit(iban[3]) {
		return "", errors.New("IBAN check digits (characters 3-4) must be numeric")
	}
	for i := 4; i < len(iban); i++ {
		if !isAlphanumeric(iban[i]) {
			return "", errors.New("IBAN may only contain letters and digits")
		}
	}

	country := iban[:2]
	if !isoCountries[country] {
		return "", errors.New("IBAN country code is not a valid ISO country")
	}
	if want, ok := ibanLengths[country]; ok && len(iban) != want {
		return "", errors.New("IBAN has the wrong length for country " + country)
	}

	if mod97(iban) != 1 {
		return "", errors.New("IBAN checksum is invalid")
	}

	return iban, nil
}

// mod97 computes the ISO 7064 MOD-97-10 remainder. The IBAN is rearranged
// (body + first four characters), letters are expanded to two digits
// (A=10 .. Z=35), and the resulting digit string is reduced incrementally
// so no big-integer arithmetic is needed: digits accumulate in a buffer that
// is folded back to its remainder once it reaches 9 characters.
func mod97(iban string) int {
	rearranged := iban[4:] + iban[:4]

	var digits strings.Builder
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		if isLetter(c) {
			n := int(c) - 55
			digits.WriteByte(byte('0' + n/10))
			digits.WriteByte(byte('0' + n%10))
		} else {
			digits.WriteByte(c)
		}
	}

	remainder := 0
	for _, d := range digits.String() {
		remainder = (remainder*10 + int(d-'0')) % 97
	}
	return remainder
}
