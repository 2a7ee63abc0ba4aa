package transform

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// digits strips everything but ASCII digits.
func digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a 10-digit number as (XXX) XXX-XXXX. Any other
// digit count yields the digits-only extraction unchanged.
func FormatPhone(value string) string {
	d := digits(value)
	if len(d) == 10 {
		return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:10]
	}
	return d
}

// dateLayouts are the input layouts tried in order, month-first
// American forms before day-first and ISO forms.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"02/01/2006",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"20060102",
	time.RFC3339,
}

// dateTokens translates the layout tokens used in stored mapping
// configuration ("Y-m-d", "m/d/Y") into Go reference-time layouts.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"Y", "2006"},
	{"y", "06"},
	{"F", "January"},
	{"M", "Jan"},
	{"m", "01"},
	{"n", "1"},
	{"d", "02"},
	{"j", "2"},
	{"H", "15"},
	{"i", "04"},
	{"s", "05"},
}

// DateLayout converts a configuration-style date format into a Go time
// layout. Unrecognized characters are kept verbatim.
func DateLayout(format string) string {
	var b strings.Builder
	for _, r := range format {
		replaced := false
		for _, t := range dateTokens {
			if string(r) == t.token {
				b.WriteString(t.layout)
				replaced = true
				break
			}
		}
		if !replaced {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDate parses value against the known layouts, first success wins.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// FormatDate parses value against the known layouts and renders the
// first success in the target format. Total parse failure returns the
// input unchanged.
func FormatDate(value, format string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format(DateLayout(format))
}

// FormatSSN renders 9 digits as XXX-XX-XXXX, otherwise pass-through.
func FormatSSN(value string) string {
	d := digits(value)
	if len(d) != 9 {
		return value
	}
	return d[0:3] + "-" + d[3:5] + "-" + d[5:9]
}

// FormatTaxID renders 9 digits as XX-XXXXXXX, otherwise pass-through.
func FormatTaxID(value string) string {
	d := digits(value)
	if len(d) != 9 {
		return value
	}
	return d[0:2] + "-" + d[2:9]
}

// TitleCase uppercases the first letter of every word and lowercases
// the rest.
func TitleCase(value string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range value {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func formatPhoneOp(value string, _ Params) string {
	return FormatPhone(value)
}

func formatDateOp(value string, p Params) string {
	return FormatDate(value, p.String("format", "m/d/Y"))
}

func formatSSNOp(value string, _ Params) string {
	return FormatSSN(value)
}

func formatTaxIDOp(value string, _ Params) string {
	return FormatTaxID(value)
}

func formatUppercaseOp(value string, _ Params) string {
	return strings.ToUpper(value)
}

func formatLowercaseOp(value string, _ Params) string {
	return strings.ToLower(value)
}

func formatTitlecaseOp(value string, _ Params) string {
	return TitleCase(value)
}
