package validation

import "testing"

func TestValidateSWIFT(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid 8 char", input: "DEUTDEFF", want: "DEUTDEFF"},
		{name: "valid 11 char", input: "DEUTDEFF500", want: "DEUTDEFF500"},
		{name: "lowercase normalized", input: "deutdeff", want: "DEUTDEFF"},
		{name: "surrounding whitespace", input: "  DEUTDEFF ", want: "DEUTDEFF"},
		{name: "valid alphanumeric location", input: "BARCGB22", want: "BARCGB22"},
		{name: "digits in bank code", input: "DEUT12FF", wantErr: true},
		{name: "too short", input: "DEUTDE", wantErr: true},
		{name: "length 9", input: "DEUTDEFF5", wantErr: true},
		{name: "length 10", input: "DEUTDEFF50", wantErr: true},
		{name: "too long", input: "DEUTDEFF5000", wantErr: true},
		{name: "digits in country code", input: "DEUT12AA500", wantErr: true},
		{name: "unknown country code", input: "DEUTXXFF", wantErr: true},
		{name: "symbol in location code", input: "DEUTDE-F", wantErr: true},
		{name: "symbol in branch code", input: "DEUTDEFF5-0", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateSWIFT(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ValidateSWIFT(%q) = %q, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateSWIFT(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ValidateSWIFT(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
