package resolver

import (
	"fmt"
	"strconv"

	"github.com/ivr/ivr/internal/domain/transform"
)

// extractor pulls one canonical field out of the structured records.
// Missing data yields the empty string, never an error.
type extractor func(rc *Context) string

func patientField(get func(p *Patient) string) extractor {
	return func(rc *Context) string {
		if rc.Patient == nil {
			return ""
		}
		return get(rc.Patient)
	}
}

func providerField(get func(p *Provider) string) extractor {
	return func(rc *Context) string {
		if rc.Provider == nil {
			return ""
		}
		return get(rc.Provider)
	}
}

func facilityField(get func(f *Facility) string) extractor {
	return func(rc *Context) string {
		if rc.Facility == nil {
			return ""
		}
		return get(rc.Facility)
	}
}

func insuranceField(get func(i *Insurance) string) extractor {
	return func(rc *Context) string {
		if rc.Insurance == nil {
			return ""
		}
		return get(rc.Insurance)
	}
}

func orderField(get func(o *Order) string) extractor {
	return func(rc *Context) string {
		if rc.Order == nil {
			return ""
		}
		return get(rc.Order)
	}
}

func orderBool(get func(o *Order) bool) extractor {
	return orderField(func(o *Order) string {
		if get(o) {
			return "Yes"
		}
		return "No"
	})
}

// identifier falls back from the provider profile attribute to the
// matching enrollment credential.
func identifier(profile func(p *Provider) string, kind string) extractor {
	return providerField(func(p *Provider) string {
		if v := profile(p); v != "" {
			return v
		}
		return p.credential(kind)
	})
}

func formatMeasurement(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// woundTotal prefers the stored total and otherwise computes
// length by width when both measurements are present.
func woundTotal(rc *Context) string {
	if rc.Order == nil {
		return ""
	}
	if rc.Order.WoundTotal > 0 {
		return formatMeasurement(rc.Order.WoundTotal)
	}
	if rc.Order.WoundLength > 0 && rc.Order.WoundWidth > 0 {
		return formatMeasurement(rc.Order.WoundLength * rc.Order.WoundWidth)
	}
	return ""
}

// woundDuration prefers the recorded free-text duration and otherwise
// derives a week count from the wound start date.
func woundDuration(rc *Context) string {
	if rc.Order == nil {
		return ""
	}
	if rc.Order.WoundDuration != "" {
		return rc.Order.WoundDuration
	}
	if rc.Order.WoundStartDate == "" {
		return ""
	}
	start, err := transform.ParseDate(rc.Order.WoundStartDate)
	if err != nil {
		return ""
	}
	days := int(rc.now().Sub(start).Hours() / 24)
	if days < 0 {
		return ""
	}
	weeks := days / 7
	if weeks == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", weeks)
}

// extractors is the per-field registry consulted after the form
// overlay. Fields with no entry can still resolve via aliases or the
// external record store.
var extractors = map[string]extractor{
	"patient_first_name":    patientField(func(p *Patient) string { return p.FirstName }),
	"patient_last_name":     patientField(func(p *Patient) string { return p.LastName }),
	"patient_name":          patientField(func(p *Patient) string { return joinNonEmpty(p.FirstName, p.LastName) }),
	"patient_dob":           patientField(func(p *Patient) string { return p.DOB }),
	"patient_gender":        patientField(func(p *Patient) string { return p.Gender }),
	"patient_ssn":           patientField(func(p *Patient) string { return p.SSN }),
	"patient_address_line1": patientField(func(p *Patient) string { return p.AddressLine1 }),
	"patient_address_line2": patientField(func(p *Patient) string { return p.AddressLine2 }),
	"patient_city":          patientField(func(p *Patient) string { return p.City }),
	"patient_state":         patientField(func(p *Patient) string { return p.State }),
	"patient_zip":           patientField(func(p *Patient) string { return p.Zip }),
	"patient_phone":         patientField(func(p *Patient) string { return p.Phone }),
	"patient_email":         patientField(func(p *Patient) string { return p.Email }),

	"provider_name":            providerField(func(p *Provider) string { return p.FullName() }),
	"provider_specialty":       providerField(func(p *Provider) string { return p.Specialty }),
	"provider_npi":             identifier(func(p *Provider) string { return p.NPI }, CredentialNPI),
	"provider_tax_id":          identifier(func(p *Provider) string { return p.TaxID }, CredentialTaxID),
	"provider_ptan":            identifier(func(p *Provider) string { return p.PTAN }, CredentialPTAN),
	"provider_medicaid_number": identifier(func(p *Provider) string { return p.MedicaidNumber }, CredentialMedicaid),
	"provider_phone":           providerField(func(p *Provider) string { return p.Phone }),
	"provider_fax":             providerField(func(p *Provider) string { return p.Fax }),
	"provider_email":           providerField(func(p *Provider) string { return p.Email }),

	"facility_name":                facilityField(func(f *Facility) string { return f.Name }),
	"facility_address":             facilityField(func(f *Facility) string { return f.Address }),
	"facility_city":                facilityField(func(f *Facility) string { return f.City }),
	"facility_state":               facilityField(func(f *Facility) string { return f.State }),
	"facility_zip":                 facilityField(func(f *Facility) string { return f.Zip }),
	"facility_npi":                 facilityField(func(f *Facility) string { return f.NPI }),
	"facility_tax_id":              facilityField(func(f *Facility) string { return f.TaxID }),
	"facility_ptan":                facilityField(func(f *Facility) string { return f.PTAN }),
	"facility_medicare_contractor": facilityField(func(f *Facility) string { return f.MedicareContractor }),
	"facility_contact_name":        facilityField(func(f *Facility) string { return f.ContactName }),
	"facility_contact_phone":       facilityField(func(f *Facility) string { return f.ContactPhone }),
	"facility_contact_fax":         facilityField(func(f *Facility) string { return f.ContactFax }),
	"facility_contact_email":       facilityField(func(f *Facility) string { return f.ContactEmail }),

	"primary_insurance_name":   insuranceField(func(i *Insurance) string { return i.PrimaryName }),
	"primary_policy_number":    insuranceField(func(i *Insurance) string { return i.PrimaryPolicyNumber }),
	"primary_payer_phone":      insuranceField(func(i *Insurance) string { return i.PrimaryPayerPhone }),
	"primary_subscriber_name":  insuranceField(func(i *Insurance) string { return i.SubscriberName }),
	"primary_subscriber_dob":   insuranceField(func(i *Insurance) string { return i.SubscriberDOB }),
	"secondary_insurance_name": insuranceField(func(i *Insurance) string { return i.SecondaryName }),
	"secondary_policy_number":  insuranceField(func(i *Insurance) string { return i.SecondaryPolicyNumber }),
	"insurance_type":           insuranceField(func(i *Insurance) string { return i.PlanType }),

	"primary_diagnosis_code":   orderField(func(o *Order) string { return o.PrimaryDiagnosisCode }),
	"secondary_diagnosis_code": orderField(func(o *Order) string { return o.SecondaryDiagnosisCode }),
	"wound_type":               orderField(func(o *Order) string { return o.WoundType }),
	"wound_location":           orderField(func(o *Order) string { return o.WoundLocation }),
	"wound_size_length":        orderField(func(o *Order) string { return formatMeasurement(o.WoundLength) }),
	"wound_size_width":         orderField(func(o *Order) string { return formatMeasurement(o.WoundWidth) }),
	"wound_size_depth":         orderField(func(o *Order) string { return formatMeasurement(o.WoundDepth) }),
	"wound_size_total":         woundTotal,
	"wound_duration":           woundDuration,
	"place_of_service":         orderField(func(o *Order) string { return o.PlaceOfService }),

	"product_name":          orderField(func(o *Order) string { return o.ProductName }),
	"product_code":          orderField(func(o *Order) string { return o.ProductCode }),
	"product_size":          orderField(func(o *Order) string { return o.ProductSize }),
	"manufacturer":          orderField(func(o *Order) string { return o.ProductManufacturer }),
	"expected_service_date": orderField(func(o *Order) string { return o.ExpectedServiceDate }),
	"order_number":          orderField(func(o *Order) string { return o.Number }),
	"total_amount":          orderField(func(o *Order) string { return o.TotalAmount }),
	"quantity": orderField(func(o *Order) string {
		if o.Quantity <= 0 {
			return ""
		}
		return strconv.Itoa(o.Quantity)
	}),

	"failed_conservative_treatment": orderBool(func(o *Order) bool { return o.FailedConservativeTreatment }),
	"information_accurate":          orderBool(func(o *Order) bool { return o.InformationAccurate }),
	"medical_necessity_established": orderBool(func(o *Order) bool { return o.MedicalNecessityEstablished }),
	"maintain_documentation":        orderBool(func(o *Order) bool { return o.MaintainDocumentation }),
	"authorize_prior_auth":          orderBool(func(o *Order) bool { return o.AuthorizePriorAuth }),
	"stat_order":                    orderBool(func(o *Order) bool { return o.StatOrder }),
	"first_application":             orderBool(func(o *Order) bool { return o.FirstApplication }),

	"sales_rep_name":  orderField(func(o *Order) string { return o.SalesRepName }),
	"sales_rep_email": orderField(func(o *Order) string { return o.SalesRepEmail }),
}
