package transform

import (
	"regexp"
	"strings"
)

// Address holds the components of a parsed street address.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Name holds the components of a parsed person name.
type Name struct {
	First  string
	Middle string
	Last   string
}

// addressPattern matches a trailing "STATE ZIP" pair, e.g. "IL 62704"
// or "IL 62704-1234".
var addressPattern = regexp.MustCompile(`^(.*?),\s*([^,]+?),?\s+([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)\s*$`)

// ParseAddress splits a combined "street, city, ST ZIP" string into
// components. Input that does not match the pattern falls through with
// the whole value kept as the street.
func ParseAddress(value string) Address {
	v := strings.TrimSpace(value)
	m := addressPattern.FindStringSubmatch(v)
	if m == nil {
		return Address{Street: v}
	}
	return Address{
		Street: strings.TrimSpace(m[1]),
		City:   strings.TrimSpace(m[2]),
		State:  strings.ToUpper(m[3]),
		Zip:    m[4],
	}
}

// ParseName splits a full name. format selects the expected shape:
// "first_last" (default), "first_middle_last", or "last_first" for
// comma-separated "Last, First" input.
func ParseName(value, format string) Name {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}
	}
	switch format {
	case "last_first":
		if i := strings.Index(v, ","); i >= 0 {
			return Name{
				First: strings.TrimSpace(v[i+1:]),
				Last:  strings.TrimSpace(v[:i]),
			}
		}
	case "first_middle_last":
		parts := strings.Fields(v)
		switch len(parts) {
		case 1:
			return Name{First: parts[0]}
		case 2:
			return Name{First: parts[0], Last: parts[1]}
		default:
			return Name{
				First:  parts[0],
				Middle: strings.Join(parts[1:len(parts)-1], " "),
				Last:   parts[len(parts)-1],
			}
		}
	}
	parts := strings.Fields(v)
	if len(parts) == 1 {
		return Name{First: parts[0]}
	}
	return Name{
		First: parts[0],
		Last:  strings.Join(parts[1:], " "),
	}
}

func parseAddressOp(value string, p Params) string {
	addr := ParseAddress(value)
	switch p.String("part", "street") {
	case "city":
		return addr.City
	case "state":
		return addr.State
	case "zip":
		return addr.Zip
	default:
		return addr.Street
	}
}

func parseNameOp(value string, p Params) string {
	name := ParseName(value, p.String("format", "first_last"))
	switch p.String("part", "first") {
	case "middle":
		return name.Middle
	case "last":
		return name.Last
	default:
		return name.First
	}
}

func parseSplitOp(value string, p Params) string {
	delim := p.String("delimiter", " ")
	idx := p.Int("index", 0)
	parts := strings.Split(value, delim)
	if idx < 0 || idx >= len(parts) {
		return value
	}
	return strings.TrimSpace(parts[idx])
}
