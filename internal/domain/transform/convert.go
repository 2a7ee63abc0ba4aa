package transform

import (
	"regexp"
	"strconv"
	"strings"
)

// truthy is the closed set of values that convert to true. Anything
// else, including "no" and empty input, converts to false.
var truthy = map[string]struct{}{
	"yes":     {},
	"y":       {},
	"true":    {},
	"1":       {},
	"on":      {},
	"checked": {},
	"x":       {},
}

// ToBool reports whether the trimmed, lowercased value is one of the
// recognized truthy literals.
func ToBool(value string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// posEntry pairs a place-of-service description fragment with its
// two-digit CMS code. Order matters: entries are matched by substring
// containment, first hit wins.
type posEntry struct {
	description string
	code        string
}

var posTable = []posEntry{
	{"office", "11"},
	{"home", "12"},
	{"assisted living", "13"},
	{"group home", "14"},
	{"mobile unit", "15"},
	{"temporary lodging", "16"},
	{"walk-in retail", "17"},
	{"place of employment", "18"},
	{"off campus outpatient", "19"},
	{"urgent care", "20"},
	{"inpatient hospital", "21"},
	{"on campus outpatient", "22"},
	{"emergency room", "23"},
	{"ambulatory surgical center", "24"},
	{"birthing center", "25"},
	{"military treatment", "26"},
	{"skilled nursing", "31"},
	{"nursing facility", "32"},
	{"custodial care", "33"},
	{"hospice", "34"},
	{"ambulance land", "41"},
	{"ambulance air", "42"},
	{"independent clinic", "49"},
	{"federally qualified", "50"},
	{"inpatient psychiatric", "51"},
	{"psychiatric facility", "52"},
	{"community mental health", "53"},
	{"intermediate care", "54"},
	{"residential substance", "55"},
	{"psychiatric residential", "56"},
	{"non-residential substance", "57"},
	{"mass immunization", "60"},
	{"comprehensive inpatient", "61"},
	{"comprehensive outpatient", "62"},
	{"end stage renal", "65"},
	{"state or local public", "71"},
	{"rural health", "72"},
	{"independent laboratory", "81"},
	{"other", "99"},
}

var twoDigits = regexp.MustCompile(`^\d{2}$`)

// ToPOSCode converts free-text place-of-service descriptions to the
// two-digit CMS code. Already-valid codes pass through. Text that
// matches no description falls back to a few broad keywords and
// finally to "99" (other).
func ToPOSCode(value string) string {
	if twoDigits.MatchString(value) {
		return value
	}
	v := strings.ToLower(strings.TrimSpace(value))
	for _, e := range posTable {
		if strings.Contains(v, e.description) {
			return e.code
		}
	}
	if strings.Contains(v, "snf") || strings.Contains(v, "skilled") {
		return "31"
	}
	if strings.Contains(v, "hospital") {
		return "21"
	}
	if strings.Contains(v, "office") || strings.Contains(v, "clinic") {
		return "11"
	}
	return "99"
}

var stateAbbrs = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

// ToStateAbbr converts a full US state name to its two-letter
// abbreviation. Already-abbreviated input passes through uppercased;
// unrecognized names pass through unchanged.
func ToStateAbbr(value string) string {
	if len(value) == 2 && isAlpha(value) {
		return strings.ToUpper(value)
	}
	if abbr, ok := stateAbbrs[strings.ToLower(strings.TrimSpace(value))]; ok {
		return abbr
	}
	return value
}

// ToNumber strips currency symbols, thousands separators, and
// whitespace; a trailing percent divides by 100. Input that still is
// not numeric passes through unchanged.
func ToNumber(value string) string {
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return strings.TrimSpace(value)
	}
	v := strings.NewReplacer("$", "", ",", "", " ", "", "\t", "").Replace(strings.TrimSpace(value))
	if strings.Contains(v, "%") {
		v = strings.ReplaceAll(v, "%", "")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return value
		}
		return strconv.FormatFloat(f/100, 'f', -1, 64)
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}
	return value
}

func convertBooleanOp(value string, _ Params) string {
	if ToBool(value) {
		return "Yes"
	}
	return "No"
}

func convertPOSCodeOp(value string, _ Params) string {
	return ToPOSCode(value)
}

func convertStateAbbrOp(value string, _ Params) string {
	return ToStateAbbr(value)
}

func convertNumberOp(value string, _ Params) string {
	return ToNumber(value)
}
