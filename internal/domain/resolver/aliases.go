package resolver

// aliases maps a canonical field to alternative spellings seen across
// partner forms and legacy imports. Each alternative is a list of keys
// whose resolved values are concatenated with spaces; alternatives are
// tried in order and only after the field's own extractor came up
// empty.
var aliases = map[string][][]string{
	"patient_name": {
		{"patient_first_name", "patient_last_name"},
		{"patient_full_name"},
		{"full_name"},
	},
	"provider_name": {
		{"provider_first_name", "provider_last_name"},
		{"provider_full_name"},
		{"physician_name"},
	},
	"primary_insurance_name": {
		{"payer_name"},
		{"insurance_name"},
	},
	"primary_policy_number": {
		{"payer_id"},
		{"primary_member_id"},
		{"member_id"},
		{"policy_number"},
	},
	"secondary_policy_number": {
		{"secondary_member_id"},
	},
	"insurance_type": {
		{"primary_plan_type"},
		{"plan_type"},
	},
	"primary_diagnosis_code": {
		{"diagnosis_code"},
		{"icd10"},
	},
	"product_size": {
		{"size"},
		{"graft_size_requested"},
	},
	"product_code": {
		{"q_code"},
		{"hcpcs"},
	},
	"manufacturer": {
		{"manufacturer_name"},
		{"product_manufacturer"},
	},
	"wound_location": {
		{"wound_location_details"},
	},
	"wound_size_total": {
		{"wound_size"},
	},
	"patient_address_line1": {
		{"patient_address"},
	},
	"facility_contact_name": {
		{"office_contact_name"},
	},
	"signature_date": {
		{"todays_date"},
	},
}
