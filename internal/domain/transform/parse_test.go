package transform

import "testing"

func TestParseAddress(t *testing.T) {
	got := ParseAddress("123 Main St, Springfield, IL 62704")
	want := Address{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseAddressZipPlusFour(t *testing.T) {
	got := ParseAddress("456 Oak Ave, Chicago, IL 60601-1234")
	if got.Zip != "60601-1234" {
		t.Errorf("zip: got %q", got.Zip)
	}
	if got.City != "Chicago" {
		t.Errorf("city: got %q", got.City)
	}
}

func TestParseAddressMultiPartStreet(t *testing.T) {
	got := ParseAddress("Suite 200, 789 Elm Blvd, Denver, CO 80203")
	if got.Street != "Suite 200, 789 Elm Blvd" {
		t.Errorf("street: got %q", got.Street)
	}
	if got.State != "CO" {
		t.Errorf("state: got %q", got.State)
	}
}

func TestParseAddressUnparseable(t *testing.T) {
	got := ParseAddress("PO Box 42")
	want := Address{Street: "PO Box 42"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseName(t *testing.T) {
	cases := []struct {
		in     string
		format string
		want   Name
	}{
		{"John Smith", "first_last", Name{First: "John", Last: "Smith"}},
		{"John van der Berg", "first_last", Name{First: "John", Last: "van der Berg"}},
		{"John Quincy Adams", "first_middle_last", Name{First: "John", Middle: "Quincy", Last: "Adams"}},
		{"Smith, John", "last_first", Name{First: "John", Last: "Smith"}},
		{"John Smith", "last_first", Name{First: "John", Last: "Smith"}},
		{"Cher", "first_last", Name{First: "Cher"}},
		{"", "first_last", Name{}},
	}
	for _, tc := range cases {
		if got := ParseName(tc.in, tc.format); got != tc.want {
			t.Errorf("ParseName(%q, %q) = %+v, want %+v", tc.in, tc.format, got, tc.want)
		}
	}
}

func TestParseAddressOpParts(t *testing.T) {
	addr := "123 Main St, Springfield, IL 62704"
	cases := []struct {
		part string
		want string
	}{
		{"street", "123 Main St"},
		{"city", "Springfield"},
		{"state", "IL"},
		{"zip", "62704"},
	}
	for _, tc := range cases {
		rule := Rule{Kind: KindParse, Op: "address", Params: Params{"part": tc.part}}
		if got := Apply(addr, rule); got != tc.want {
			t.Errorf("part %q: got %q, want %q", tc.part, got, tc.want)
		}
	}
}

func TestParseSplitOp(t *testing.T) {
	rule := Rule{Kind: KindParse, Op: "split", Params: Params{"delimiter": "|", "index": 1}}
	if got := Apply("a|b|c", rule); got != "b" {
		t.Errorf("got %q", got)
	}
	outOfRange := Rule{Kind: KindParse, Op: "split", Params: Params{"delimiter": "|", "index": 9}}
	if got := Apply("a|b", outOfRange); got != "a|b" {
		t.Errorf("out of range: got %q", got)
	}
}

func TestNormalizeOps(t *testing.T) {
	cases := []struct {
		op   string
		in   string
		want string
	}{
		{"whitespace", "  a   b\t c ", "a b c"},
		{"alphanumeric", "a-1!b 2", "a1b2"},
		{"numeric", "(555) 123-4567", "5551234567"},
		{"remove_special", "a&b - c!", "ab - c"},
	}
	for _, tc := range cases {
		rule := Rule{Kind: KindNormalize, Op: tc.op}
		if got := Apply(tc.in, rule); got != tc.want {
			t.Errorf("%s(%q) = %q, want %q", tc.op, tc.in, got, tc.want)
		}
	}
}
