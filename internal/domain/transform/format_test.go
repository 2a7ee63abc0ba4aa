package transform

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555.123.4567", "(555) 123-4567"},
		{"(555)1234567", "(555) 123-4567"},
		{"(555) 123-4567", "(555) 123-4567"},
		{"555-1234", "5551234"},
		{"15551234567", "15551234567"},
		{"", ""},
		{"no digits", ""},
	}
	for _, tc := range cases {
		if got := FormatPhone(tc.in); got != tc.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPhoneIdempotent(t *testing.T) {
	once := FormatPhone("555.123.4567")
	twice := FormatPhone(once)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in     string
		format string
		want   string
	}{
		{"01/15/1980", "Y-m-d", "1980-01-15"},
		{"1980-01-15", "m/d/Y", "01/15/1980"},
		{"January 15, 1980", "Y-m-d", "1980-01-15"},
		{"1/5/1980", "Y-m-d", "1980-01-05"},
		{"not a date", "Y-m-d", "not a date"},
		{"", "Y-m-d", ""},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in, tc.format); got != tc.want {
			t.Errorf("FormatDate(%q, %q) = %q, want %q", tc.in, tc.format, got, tc.want)
		}
	}
}

func TestDateLayout(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Y-m-d", "2006-01-02"},
		{"m/d/Y", "01/02/2006"},
		{"F j, Y", "January 2, 2006"},
	}
	for _, tc := range cases {
		if got := DateLayout(tc.in); got != tc.want {
			t.Errorf("DateLayout(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSSN(t *testing.T) {
	if got := FormatSSN("123456789"); got != "123-45-6789" {
		t.Errorf("got %q", got)
	}
	if got := FormatSSN("123-45-6789"); got != "123-45-6789" {
		t.Errorf("already formatted: got %q", got)
	}
	if got := FormatSSN("12345"); got != "12345" {
		t.Errorf("short input: got %q", got)
	}
}

func TestFormatTaxID(t *testing.T) {
	if got := FormatTaxID("123456789"); got != "12-3456789" {
		t.Errorf("got %q", got)
	}
	if got := FormatTaxID("12-3456789"); got != "12-3456789" {
		t.Errorf("already formatted: got %q", got)
	}
	if got := FormatTaxID("abc"); got != "abc" {
		t.Errorf("non-numeric: got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john smith", "John Smith"},
		{"JOHN SMITH", "John Smith"},
		{"mary-jane", "Mary-jane"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
