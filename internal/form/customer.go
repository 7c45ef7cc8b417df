package form

import (
	"strings"

	"github.com/vdash/vdash/internal/model1"
)

// Districts lists the district choices offered by the customer editor.
var Districts = []string{"Tamil Nadu", "Kerala", "Karnataka"}

// Customer form sections.
const (
	SectionContact = "Company Contact Information"
	SectionAddress = "Company Address"
	SectionPOC     = "Point of Contact"
	SectionBank    = "Banking Information"
)

// CustomerSchema returns the customer editor schema.
func CustomerSchema() *Schema {
	return NewSchema(
		Field{Name: "name", Label: "Organization/Business Name", Section: SectionContact, Placeholder: "Enter Organization/Business name",
			Required: "Name is required", Rules: []Rule{MaxLen("name", 255)}},

		Field{Name: "address", Label: "Street address", Section: SectionAddress, Placeholder: "Enter Street address",
			Required: "Street line is required"},
		Field{Name: "address2", Label: "Street address line 2", Section: SectionAddress, Placeholder: "Enter Street address line 2"},
		Field{Name: "orderStatus", Label: "District", Section: SectionAddress, Options: Districts,
			Required: "Status is required", Rules: []Rule{OneOf("Unknown district", Districts...)}},
		Field{Name: "city", Label: "City", Section: SectionAddress, Placeholder: "Enter city",
			Required: "City is required"},
		Field{Name: "state", Label: "State", Section: SectionAddress, Placeholder: "Enter state",
			Required: "State is required"},
		Field{Name: "postal", Label: "Postal/(Zip) Code", Section: SectionAddress, Placeholder: "Enter postal code",
			Required: "Postal Code is required"},
		Field{Name: "location", Label: "Location", Section: SectionAddress, Placeholder: "Enter location notes",
			Rules: []Rule{MaxLen("location", 500)}},

		Field{Name: "firstName", Label: "First Name", Section: SectionPOC, Placeholder: "Enter first name"},
		Field{Name: "lastName", Label: "Last Name", Section: SectionPOC, Placeholder: "Enter last name"},
		Field{Name: "phone", Label: "Phone Number", Section: SectionPOC, Placeholder: "Enter phone number",
			Required: "Phone number is required"},
		Field{Name: "email", Label: "Email Address", Section: SectionPOC, Placeholder: "Enter email address",
			Required: "Email is required", Rules: []Rule{MaxLen("email", 255), Email("Must be a valid email")}},

		Field{Name: "bank", Label: "Bank Name", Section: SectionBank, Placeholder: "Enter Bank name",
			Required: "Bank Name is required"},
		Field{Name: "branch", Label: "Branch Name", Section: SectionBank, Placeholder: "Enter Branch name",
			Required: "Branch is required"},
		Field{Name: "accno", Label: "Account Number", Section: SectionBank, Placeholder: "Enter account number",
			Required: "Account Number is required"},
		Field{Name: "accounter", Label: "Accounter Name", Section: SectionBank, Placeholder: "Enter Accounter name",
			Required: "Accounter Name is required"},
		Field{Name: "ifsc", Label: "IFSC Code", Section: SectionBank, Placeholder: "Enter IFSC code",
			Required: "IFSC code is required"},
		Field{Name: "upi", Label: "Upi id (optional)", Section: SectionBank, Placeholder: "Enter Upi Id"},
	)
}

// CustomerValues extracts form values from a customer record. A new
// customer starts blank; an existing one seeds name from fatherName and
// location from address when those are unset.
func CustomerValues(schema *Schema, rec model1.Record) map[string]string {
	vals := make(map[string]string, len(schema.Fields()))
	for _, f := range schema.Fields() {
		vals[f.Name] = ""
	}
	if rec == nil {
		return vals
	}
	if v := rec.String("fatherName"); v != "" {
		vals["name"] = v
	}
	if v := rec.String("address"); v != "" {
		vals["location"] = v
	}
	for _, f := range schema.Fields() {
		if v := rec.String(f.Name); v != "" {
			vals[f.Name] = v
		}
	}
	return vals
}

// ApplyValues returns a copy of rec updated with the form values. Blank
// optional values are dropped rather than stored as empty strings.
func ApplyValues(schema *Schema, rec model1.Record, vals map[string]string) model1.Record {
	out := rec.Clone()
	if out == nil {
		out = make(model1.Record)
	}
	for _, f := range schema.Fields() {
		v := strings.TrimSpace(vals[f.Name])
		if v == "" && !f.IsRequired() {
			delete(out, f.Name)
			continue
		}
		out[f.Name] = v
	}
	return out
}

// ValidateRecord runs the schema over a record.
func ValidateRecord(schema *Schema, rec model1.Record) error {
	vals := make(map[string]string, len(schema.Fields()))
	for _, f := range schema.Fields() {
		vals[f.Name] = rec.String(f.Name)
	}
	return schema.Validate(vals)
}
