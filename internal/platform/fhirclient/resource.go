package fhirclient

// Resource is a decoded FHIR resource. Accessors below tolerate any
// missing or differently-typed element and return the zero value.
type Resource map[string]any

func (r Resource) str(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r Resource) list(key string) []any {
	l, _ := r[key].([]any)
	return l
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// ResourceType returns the resource's declared type.
func (r Resource) ResourceType() string {
	return r.str("resourceType")
}

// GivenName returns the first given name of the first name entry.
func (r Resource) GivenName() string {
	for _, n := range r.list("name") {
		name := asMap(n)
		if given, ok := name["given"].([]any); ok && len(given) > 0 {
			if s, ok := given[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// FamilyName returns the family name of the first name entry.
func (r Resource) FamilyName() string {
	for _, n := range r.list("name") {
		if s, ok := asMap(n)["family"].(string); ok {
			return s
		}
	}
	return ""
}

// BirthDate returns the resource's birthDate element.
func (r Resource) BirthDate() string {
	return r.str("birthDate")
}

// Gender returns the resource's gender element.
func (r Resource) Gender() string {
	return r.str("gender")
}

// Telecom returns the value of the first telecom entry whose system
// matches, e.g. "phone" or "email".
func (r Resource) Telecom(system string) string {
	for _, t := range r.list("telecom") {
		entry := asMap(t)
		if entry["system"] == system {
			if v, ok := entry["value"].(string); ok {
				return v
			}
		}
	}
	return ""
}

// AddressPart returns one component of the first address entry. part is
// "line1", "line2", "city", "state", or "zip".
func (r Resource) AddressPart(part string) string {
	addrs := r.list("address")
	if len(addrs) == 0 {
		return ""
	}
	addr := asMap(addrs[0])
	switch part {
	case "line1", "line2":
		lines, _ := addr["line"].([]any)
		idx := 0
		if part == "line2" {
			idx = 1
		}
		if idx < len(lines) {
			if s, ok := lines[idx].(string); ok {
				return s
			}
		}
		return ""
	case "city":
		s, _ := addr["city"].(string)
		return s
	case "state":
		s, _ := addr["state"].(string)
		return s
	case "zip":
		s, _ := addr["postalCode"].(string)
		return s
	}
	return ""
}

// Identifier returns the value of the first identifier whose system
// matches, e.g. the NPI naming system.
func (r Resource) Identifier(system string) string {
	for _, i := range r.list("identifier") {
		entry := asMap(i)
		if entry["system"] == system {
			if v, ok := entry["value"].(string); ok {
				return v
			}
		}
	}
	return ""
}
