package canonical

// catalog is the full canonical field set, grouped by the domain record
// each field is sourced from.
var catalog = []Field{
	// Patient demographics.
	{ID: "patient_first_name", Label: "Patient First Name", Type: TypeString, Required: true},
	{ID: "patient_last_name", Label: "Patient Last Name", Type: TypeString, Required: true},
	{ID: "patient_name", Label: "Patient Name", Type: TypeString},
	{ID: "patient_dob", Label: "Patient Date of Birth", Type: TypeDate, Required: true},
	{ID: "patient_gender", Label: "Patient Gender", Type: TypeEnum, EnumOptions: []string{"male", "female", "other", "unknown"}},
	{ID: "patient_ssn", Label: "Patient SSN", Type: TypeString},
	{ID: "patient_address_line1", Label: "Patient Address", Type: TypeString},
	{ID: "patient_address_line2", Label: "Patient Address Line 2", Type: TypeString},
	{ID: "patient_city", Label: "Patient City", Type: TypeString},
	{ID: "patient_state", Label: "Patient State", Type: TypeCodeList},
	{ID: "patient_zip", Label: "Patient Zip", Type: TypeString},
	{ID: "patient_phone", Label: "Patient Phone", Type: TypePhone},
	{ID: "patient_email", Label: "Patient Email", Type: TypeEmail},

	// Ordering provider.
	{ID: "provider_name", Label: "Provider Name", Type: TypeString, Required: true},
	{ID: "provider_specialty", Label: "Provider Specialty", Type: TypeString},
	{ID: "provider_npi", Label: "Provider NPI", Type: TypeString, Required: true},
	{ID: "provider_npi_2", Label: "Provider NPI 2", Type: TypeString},
	{ID: "provider_npi_3", Label: "Provider NPI 3", Type: TypeString},
	{ID: "provider_npi_4", Label: "Provider NPI 4", Type: TypeString},
	{ID: "provider_tax_id", Label: "Provider Tax ID", Type: TypeString},
	{ID: "provider_ptan", Label: "Provider PTAN", Type: TypeString},
	{ID: "provider_medicaid_number", Label: "Provider Medicaid Number", Type: TypeString},
	{ID: "provider_phone", Label: "Provider Phone", Type: TypePhone},
	{ID: "provider_fax", Label: "Provider Fax", Type: TypePhone},
	{ID: "provider_email", Label: "Provider Email", Type: TypeEmail},

	// Facility.
	{ID: "facility_name", Label: "Facility Name", Type: TypeString},
	{ID: "facility_address", Label: "Facility Address", Type: TypeString},
	{ID: "facility_city", Label: "Facility City", Type: TypeString},
	{ID: "facility_state", Label: "Facility State", Type: TypeCodeList},
	{ID: "facility_zip", Label: "Facility Zip", Type: TypeString},
	{ID: "facility_npi", Label: "Facility NPI", Type: TypeString},
	{ID: "facility_tax_id", Label: "Facility Tax ID", Type: TypeString},
	{ID: "facility_ptan", Label: "Facility PTAN", Type: TypeString},
	{ID: "facility_medicare_contractor", Label: "Facility Medicare Contractor", Type: TypeString},
	{ID: "facility_contact_name", Label: "Facility Contact Name", Type: TypeString},
	{ID: "facility_contact_phone", Label: "Facility Contact Phone", Type: TypePhone},
	{ID: "facility_contact_fax", Label: "Facility Contact Fax", Type: TypePhone},
	{ID: "facility_contact_email", Label: "Facility Contact Email", Type: TypeEmail},

	// Insurance.
	{ID: "primary_insurance_name", Label: "Primary Insurance Name", Type: TypeString, Required: true},
	{ID: "primary_policy_number", Label: "Primary Policy Number", Type: TypeString, Required: true},
	{ID: "primary_payer_phone", Label: "Primary Payer Phone", Type: TypePhone},
	{ID: "primary_subscriber_name", Label: "Primary Subscriber Name", Type: TypeString},
	{ID: "primary_subscriber_dob", Label: "Primary Subscriber Date of Birth", Type: TypeDate},
	{ID: "secondary_insurance_name", Label: "Secondary Insurance Name", Type: TypeString},
	{ID: "secondary_policy_number", Label: "Secondary Policy Number", Type: TypeString},
	{ID: "insurance_type", Label: "Insurance Type", Type: TypeEnum, EnumOptions: []string{"medicare", "medicare_advantage", "medicaid", "commercial", "other"}},

	// Clinical and wound.
	{ID: "primary_diagnosis_code", Label: "Primary Diagnosis Code", Type: TypeCodeList},
	{ID: "secondary_diagnosis_code", Label: "Secondary Diagnosis Code", Type: TypeCodeList},
	{ID: "wound_type", Label: "Wound Type", Type: TypeString, Required: true},
	{ID: "wound_location", Label: "Wound Location", Type: TypeString},
	{ID: "wound_size_length", Label: "Wound Length", Type: TypeMeasurement},
	{ID: "wound_size_width", Label: "Wound Width", Type: TypeMeasurement},
	{ID: "wound_size_depth", Label: "Wound Depth", Type: TypeMeasurement},
	{ID: "wound_size_total", Label: "Wound Total Area", Type: TypeMeasurement},
	{ID: "wound_duration", Label: "Wound Duration", Type: TypeString},
	{ID: "place_of_service", Label: "Place of Service", Type: TypeCodeList},

	// Product and order.
	{ID: "product_name", Label: "Product Name", Type: TypeString, Required: true},
	{ID: "product_code", Label: "Product Code", Type: TypeCodeList},
	{ID: "product_size", Label: "Product Size", Type: TypeString},
	{ID: "manufacturer", Label: "Manufacturer", Type: TypeString},
	{ID: "quantity", Label: "Quantity", Type: TypeNumber},
	{ID: "expected_service_date", Label: "Expected Service Date", Type: TypeDate},
	{ID: "order_number", Label: "Order Number", Type: TypeString},
	{ID: "total_amount", Label: "Total Amount", Type: TypeCurrency},

	// Attestations. Defaults apply when nothing in the context resolves.
	{ID: "failed_conservative_treatment", Label: "Failed Conservative Treatment", Type: TypeBoolean},
	{ID: "information_accurate", Label: "Information Accurate", Type: TypeBoolean, Defaultable: true},
	{ID: "medical_necessity_established", Label: "Medical Necessity Established", Type: TypeBoolean},
	{ID: "maintain_documentation", Label: "Maintain Documentation", Type: TypeBoolean, Defaultable: true},
	{ID: "authorize_prior_auth", Label: "Authorize Prior Authorization", Type: TypeBoolean},
	{ID: "physician_attestation", Label: "Physician Attestation", Type: TypeBoolean, Defaultable: true},
	{ID: "not_used_previously", Label: "Not Used Previously", Type: TypeBoolean, Defaultable: true},
	{ID: "stat_order", Label: "Stat Order", Type: TypeBoolean},
	{ID: "first_application", Label: "First Application", Type: TypeBoolean, Defaultable: true},
	{ID: "todays_date", Label: "Today's Date", Type: TypeDate, Defaultable: true},
	{ID: "signature_date", Label: "Signature Date", Type: TypeDate, Defaultable: true},
	{ID: "current_time", Label: "Current Time", Type: TypeString, Defaultable: true},

	// Distribution.
	{ID: "sales_rep_name", Label: "Sales Rep Name", Type: TypeString},
	{ID: "sales_rep_email", Label: "Sales Rep Email", Type: TypeEmail},
	{ID: "additional_notification_emails", Label: "Additional Notification Emails", Type: TypeString},
	{ID: "distributor_name", Label: "Distributor Name", Type: TypeString, Defaultable: true},
}

var byID = func() map[string]Field {
	m := make(map[string]Field, len(catalog))
	for _, f := range catalog {
		m[f.ID] = f
	}
	return m
}()

// Lookup returns the field definition for an id.
func Lookup(id string) (Field, bool) {
	f, ok := byID[id]
	return f, ok
}

// Type returns a field's semantic type; unknown ids report TypeString.
func Type(id string) FieldType {
	if f, ok := byID[id]; ok {
		return f.Type
	}
	return TypeString
}

// IsRequired reports the catalog-level required flag. Manufacturers
// carry their own required lists on top of this.
func IsRequired(id string) bool {
	f, ok := byID[id]
	return ok && f.Required
}

// Label returns a field's display name, falling back to the id itself.
func Label(id string) string {
	if f, ok := byID[id]; ok {
		return f.Label
	}
	return id
}

// All returns the full catalog in its declared order. Callers must not
// modify the returned slice.
func All() []Field {
	return catalog
}
