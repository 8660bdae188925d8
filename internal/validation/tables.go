package validation

import "sort"

// Static lookup tables for international payment validation. Initialized
// once; nothing mutates them at runtime.

// isoCountries is the ISO 3166-1 alpha-2 membership set.
var isoCountries = map[string]bool{
	"AD": true, "AE": true, "AF": true, "AG": true, "AL": true, "AM": true,
	"AO": true, "AR": true, "AT": true, "AU": true, "AZ": true, "BA": true,
	"BB": true, "BD": true, "BE": true, "BF": true, "BG": true, "BH": true,
	"BI": true, "BJ": true, "BN": true, "BO": true, "BR": true, "BS": true,
	"BT": true, "BW": true, "BY": true, "BZ": true, "CA": true, "CD": true,
	"CF": true, "CG": true, "CH": true, "CI": true, "CL": true, "CM": true,
	"CN": true, "CO": true, "CR": true, "CU": true, "CV": true, "CY": true,
	"CZ": true, "DE": true, "DJ": true, "DK": true, "DM": true, "DO": true,
	"DZ": true, "EC": true, "EE": true, "EG": true, "ER": true, "ES": true,
	"ET": true, "FI": true, "FJ": true, "FM": true, "FR": true, "GA": true,
	"GB": true, "GD": true, "GE": true, "GH": true, "GI": true, "GL": true,
	"GM": true, "GN": true, "GQ": true, "GR": true, "GT": true, "GW": true,
	"GY": true, "HK": true, "HN": true, "HR": true, "HT": true, "HU": true,
	"ID": true, "IE": true, "IL": true, "IN": true, "IQ": true, "IR": true,
	"IS": true, "IT": true, "JM": true, "JO": true, "JP": true, "KE": true,
	"KG": true, "KH": true, "KI": true, "KM": true, "KN": true, "KP": true,
	"KR": true, "KW": true, "KZ": true, "LA": true, "LB": true, "LC": true,
	"LI": true, "LK": true, "LR": true, "LS": true, "LT": true, "LU": true,
	"LV": true, "LY": true, "MA": true, "MC": true, "MD": true, "ME": true,
	"MG": true, "MH": true, "MK": true, "ML": true, "MM": true, "MN": true,
	"MR": true, "MT": true, "MU": true, "MV": true, "MW": true, "MX": true,
	"MY": true, "MZ": true, "NA": true, "NE": true, "NG": true, "NI": true,
	"NL": true, "NO": true, "NP": true, "NR": true, "NZ": true, "OM": true,
	"PA": true, "PE": true, "PG": true, "PH": true, "PK": true, "PL": true,
	"PS": true, "PT": true, "PW": true, "PY": true, "QA": true, "RO": true,
	"RS": true, "RU": true, "RW": true, "SA": true, "SB": true, "SC": true,
	"SD": true, "SE": true, "SG": true, "SI": true, "SK": true, "SL": true,
	"SM": true, "SN": true, "SO": true, "SR": true, "SS": true, "ST": true,
	"SV": true, "SY": true, "SZ": true, "TD": true, "TG": true, "TH": true,
	"TJ": true, "TL": true, "TM": true, "TN": true, "TO": true, "TR": true,
	"TT": true, "TV": true, "TW": true, "TZ": true, "UA": true, "UG": true,
	"US": true, "UY": true, "UZ": true, "VA": true, "VC": true, "VE": true,
	"VN": true, "VU": true, "WS": true, "YE": true, "ZA": true, "ZM": true,
	"ZW": true,
}

// internationalCurrencies is the allow-list of currencies accepted for
// cross-border payments.
var internationalCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "NZD": true, "SEK": true, "NOK": true,
	"DKK": true, "SGD": true, "HKD": true, "CNY": true, "INR": true,
	"AED": true, "SAR": true, "ZAR": true, "PLN": true, "CZK": true,
	"HUF": true, "MXN": true, "BRL": true, "TRY": true, "KRW": true,
	"THB": true, "MYR": true,
}

// purposeCodes is the closed enumeration of payment purposes. Unknown codes
// are rejected, never defaulted.
var purposeCodes = map[string]string{
	"SALA": "Salary payment",
	"PENS": "Pension payment",
	"SUPP": "Supplier payment",
	"TRAD": "Trade settlement",
	"LOAN": "Loan repayment",
	"INTC": "Intra-company transfer",
	"GDDS": "Purchase of goods",
	"SCVE": "Purchase of services",
	"EDUC": "Education expenses",
	"MEDI": "Medical expenses",
	"CHAR": "Charitable donation",
	"INVS": "Investment",
	"OTHR": "Other",
}

// ibanLengths fixes the total IBAN length per issuing country. The table
// covers the major issuing countries; IBANs from countries not listed here
// fall back to the generic shape and checksum checks only. That fallback is
// deliberate: guessing lengths for the remaining registries would reject
// valid accounts.
var ibanLengths = map[string]int{
	"AD": 24, "AE": 23, "AL": 28, "AT": 20, "AZ": 28, "BA": 20, "BE": 16,
	"BG": 22, "BH": 22, "BR": 29, "CH": 21, "CY": 28, "CZ": 24, "DE": 22,
	"DK": 18, "DO": 28, "EE": 20, "EG": 29, "ES": 24, "FI": 18, "FR": 27,
	"GB": 22, "GE": 22, "GI": 23, "GR": 27, "GT": 28, "HR": 21, "HU": 28,
	"IE": 22, "IL": 23, "IS": 26, "IT": 27, "JO": 30, "KW": 30, "KZ": 20,
	"LB": 28, "LI": 21, "LT": 20, "LU": 20, "LV": 21, "MC": 27, "MD": 24,
	"ME": 22, "MK": 19, "MT": 31, "MU": 30, "NL": 18, "NO": 15, "PK": 24,
	"PL": 28, "PS": 29, "PT": 25, "QA": 29, "RO": 24, "RS": 22, "SA": 24,
	"SE": 24, "SI": 19, "SK": 24, "SM": 27, "TN": 24, "TR": 26, "UA": 29,
	"VA": 22, "XK": 20,
}

// highRiskCountries drive the very_high AML tier and the +40 fraud score
// component.
var highRiskCountries = map[string]bool{
	"AF": true, "BY": true, "CD": true, "CF": true, "CU": true, "ER": true,
	"IR": true, "IQ": true, "KP": true, "LY": true, "ML": true, "MM": true,
	"NI": true, "RU": true, "SD": true, "SO": true, "SS": true, "SY": true,
	"VE": true, "YE": true, "ZW": true,
}

// IsHighRiskCountry reports whether a destination country is on the
// high-risk list.
func IsHighRiskCountry(code string) bool {
	return highRiskCountries[code]
}

// PurposeDescription resolves a purpose code to its human-readable
// description.
func PurposeDescription(code string) (string, bool) {
	desc, ok := purposeCodes[code]
	return desc, ok
}

// SupportedCurrencies returns the currency allow-list as a sorted slice,
// for surfacing in API metadata.
func SupportedCurrencies() []string {
	out := make([]string, 0, len(internationalCurrencies))
	for c := range internationalCurrencies {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// PurposeCodes returns a copy of the purpose enumeration for form metadata.
func PurposeCodes() map[string]string {
	out := make(map[string]string, len(purposeCodes))
	for code, desc := range purposeCodes {
		out[code] = desc
	}
	return out
}
