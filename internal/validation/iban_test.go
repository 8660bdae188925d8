package validation

import (
	"strings"
	"testing"
)

// Known-good IBANs from the official registry examples.
var validIBANs = []string{
	"GB82WEST12345698765432",
	"DE89370400440532013000",
	"FR1420041010050500013M02606",
	"NL91ABNA0417164300",
	"ES9121000418450200051332",
	"IT60X0542811101000000123456",
	"CH9300762011623852957",
	"NO9386011117947",
	"PL61109010140000071219812874",
	"AE070331234567890123456",
	"SA0380000000608010167519",
}

func TestValidateIBAN_KnownGood(t *testing.T) {
	for _, iban := range validIBANs {
		got, err := ValidateIBAN(iban)
		if err != nil {
			t.Errorf("ValidateIBAN(%q) returned error: %v", iban, err)
			continue
		}
		if got != iban {
			t.Errorf("ValidateIBAN(%q) = %q, want unchanged", iban, got)
		}
	}
}

func TestValidateIBAN_Normalization(t *testing.T) {
	got, err := ValidateIBAN("gb82 west 1234 5698 7654 32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "GB82WEST12345698765432" {
		t.Fatalf("got %q", got)
	}
}

// Flipping any single character of a valid IBAN must cause rejection,
// either through the checksum or a structural check.
func TestValidateIBAN_SingleCharacterFlip(t *testing.T) {
	for _, iban := range validIBANs {
		for i := 0; i < len(iban); i++ {
			flipped := flipChar(iban, i)
			if _, err := ValidateIBAN(flipped); err == nil {
				t.Errorf("ValidateIBAN accepted %q (flip of %q at position %d)", flipped, iban, i)
			}
		}
	}
}

func flipChar(s string, i int) string {
	b := []byte(s)
	switch {
	case b[i] == 'Z':
		b[i] = 'A'
	case b[i] >= 'A' && b[i] < 'Z':
		b[i]++
	case b[i] == '9':
		b[i] = '0'
	default:
		b[i]++
	}
	return string(b)
}

func TestValidateIBAN_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too short", input: "GB82WEST"},
		{name: "too long", input: "GB82WEST12345698765432" + strings.Repeat("1", 20)},
		{name: "bad check digit", input: "GB83WEST12345698765432"},
		{name: "letters in check digits", input: "GBAAWEST12345698765432"},
		{name: "digits in country code", input: "1282WEST12345698765432"},
		{name: "unknown country", input: "XX82WEST12345698765432"},
		{name: "wrong length for country", input: "DE8937040044053201300"},
		{name: "symbol in body", input: "GB82WEST1234569876543!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got, err := ValidateIBAN(tc.input); err == nil {
				t.Fatalf("ValidateIBAN(%q) = %q, want error", tc.input, got)
			}
		})
	}
}

// Countries absent from the length table still get the generic shape and
// checksum checks. A checksum-valid IBAN with an unlisted country passes.
func TestValidateIBAN_UnlistedCountryFallback(t *testing.T) {
	// Costa Rica is not in the length table; this is the registry example.
	got, err := ValidateIBAN("CR05015202001026284066")
	if err != nil {
		t.Fatalf("unexpected error for unlisted country: %v", err)
	}
	if got != "CR05015202001026284066" {
		t.Fatalf("got %q", got)
	}
}

func TestMod97(t *testing.T) {
	if r := mod97("GB82WEST12345698765432"); r != 1 {
		t.Fatalf("mod97 of valid IBAN = %d, want 1", r)
	}
	if r := mod97("GB83WEST12345698765432"); r == 1 {
		t.Fatal("mod97 of corrupted IBAN unexpectedly 1")
	}
}
