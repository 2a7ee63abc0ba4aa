// Package resolver produces raw values for canonical fields from a
// per-request context, consulting explicit form data, structured domain
// records, known field aliases, and an external clinical record store,
// in that priority order.
package resolver

import "time"

// Patient holds the locally stored patient demographics.
type Patient struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	SSN          string `json:"ssn,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

// Credential is one provider enrollment record, kept as a fallback for
// identifiers missing from the provider profile.
type Credential struct {
	Kind   string `json:"kind"`
	Number string `json:"number"`
}

const (
	CredentialNPI      = "npi"
	CredentialPTAN     = "ptan"
	CredentialTaxID    = "tax_id"
	CredentialMedicaid = "medicaid"
)

// Provider holds the ordering provider profile.
type Provider struct {
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Specialty      string       `json:"specialty,omitempty"`
	NPI            string       `json:"npi"`
	TaxID          string       `json:"tax_id,omitempty"`
	PTAN           string       `json:"ptan,omitempty"`
	MedicaidNumber string       `json:"medicaid_number,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Fax            string       `json:"fax,omitempty"`
	Email          string       `json:"email,omitempty"`
	Credentials    []Credential `json:"credentials,omitempty"`
}

// FullName joins the provider's first and last names.
func (p *Provider) FullName() string {
	return joinNonEmpty(p.FirstName, p.LastName)
}

// credential returns the first credential number of the given kind.
func (p *Provider) credential(kind string) string {
	for _, c := range p.Credentials {
		if c.Kind == kind {
			return c.Number
		}
	}
	return ""
}

// Facility holds the service facility record.
type Facility struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Zip                string `json:"zip"`
	NPI                string `json:"npi,omitempty"`
	TaxID              string `json:"tax_id,omitempty"`
	PTAN               string `json:"ptan,omitempty"`
	MedicareContractor string `json:"medicare_contractor,omitempty"`
	ContactName        string `json:"contact_name,omitempty"`
	ContactPhone       string `json:"contact_phone,omitempty"`
	ContactFax         string `json:"contact_fax,omitempty"`
	ContactEmail       string `json:"contact_email,omitempty"`
}

// Insurance holds the coverage attributes of the request.
type Insurance struct {
	PrimaryName           string `json:"primary_name"`
	PrimaryPolicyNumber   string `json:"primary_policy_number"`
	PrimaryPayerPhone     string `json:"primary_payer_phone,omitempty"`
	PlanType              string `json:"plan_type,omitempty"`
	SubscriberName        string `json:"subscriber_name,omitempty"`
	SubscriberDOB         string `json:"subscriber_dob,omitempty"`
	SecondaryName         string `json:"secondary_name,omitempty"`
	SecondaryPolicyNumber string `json:"secondary_policy_number,omitempty"`
}

// Order holds the product request and its clinical attributes.
type Order struct {
	Number                 string  `json:"number,omitempty"`
	WoundType              string  `json:"wound_type,omitempty"`
	WoundLocation          string  `json:"wound_location,omitempty"`
	WoundDuration          string  `json:"wound_duration,omitempty"`
	WoundLength            float64 `json:"wound_length,omitempty"`
	WoundWidth             float64 `json:"wound_width,omitempty"`
	WoundDepth             float64 `json:"wound_depth,omitempty"`
	WoundTotal             float64 `json:"wound_total,omitempty"`
	WoundStartDate         string  `json:"wound_start_date,omitempty"`
	PrimaryDiagnosisCode   string  `json:"primary_diagnosis_code,omitempty"`
	SecondaryDiagnosisCode string  `json:"secondary_diagnosis_code,omitempty"`
	PlaceOfService         string  `json:"place_of_service,omitempty"`
	ExpectedServiceDate    string  `json:"expected_service_date,omitempty"`
	ProductName            string  `json:"product_name,omitempty"`
	ProductCode            string  `json:"product_code,omitempty"`
	ProductSize            string  `json:"product_size,omitempty"`
	ProductManufacturer    string  `json:"product_manufacturer,omitempty"`
	Quantity               int     `json:"quantity,omitempty"`
	TotalAmount            string  `json:"total_amount,omitempty"`
	SalesRepName           string  `json:"sales_rep_name,omitempty"`
	SalesRepEmail          string  `json:"sales_rep_email,omitempty"`

	FailedConservativeTreatment bool `json:"failed_conservative_treatment,omitempty"`
	InformationAccurate         bool `json:"information_accurate,omitempty"`
	MedicalNecessityEstablished bool `json:"medical_necessity_established,omitempty"`
	MaintainDocumentation       bool `json:"maintain_documentation,omitempty"`
	AuthorizePriorAuth          bool `json:"authorize_prior_auth,omitempty"`
	StatOrder                   bool `json:"stat_order,omitempty"`
	FirstApplication            bool `json:"first_application,omitempty"`
}

// Context is the read-only input of one resolution run. Form is the
// explicit user-supplied overlay and always wins; the record pointers
// may be nil when the corresponding data was never loaded.
type Context struct {
	Form      map[string]string `json:"form,omitempty"`
	Patient   *Patient          `json:"patient,omitempty"`
	Provider  *Provider         `json:"provider,omitempty"`
	Facility  *Facility         `json:"facility,omitempty"`
	Insurance *Insurance        `json:"insurance,omitempty"`
	Order     *Order            `json:"order,omitempty"`

	// FHIRPatientID and FHIRPractitionerID, when set, allow
	// opportunistic lookups against the external clinical record
	// store.
	FHIRPatientID      string `json:"fhir_patient_id,omitempty"`
	FHIRPractitionerID string `json:"fhir_practitioner_id,omitempty"`

	// Now is the reference time for duration computations; the zero
	// value means wall-clock time.
	Now time.Time `json:"-"`
}

func (c *Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
