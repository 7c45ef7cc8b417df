package form

import (
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdash/vdash/internal/model1"
)

func validCustomer() map[string]string {
	return map[string]string{
		"name":        "Acme Traders",
		"orderStatus": "Kerala",
		"phone":       "9840012345",
		"postal":      "682001",
		"city":        "Kochi",
		"state":       "Kerala",
		"address":     "12 MG Road",
		"bank":        "State Bank",
		"branch":      "Ernakulam",
		"accno":       "000123456789",
		"accounter":   "R. Menon",
		"ifsc":        "SBIN0000123",
		"email":       "accounts@acme.in",
	}
}

func TestSubmitValid(t *testing.T) {
	f := New(CustomerSchema(), validCustomer())

	vals, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", vals["name"])
	assert.Empty(t, f.Errors())
	assert.True(t, f.Valid())
}

func TestSubmitMissingEmail(t *testing.T) {
	vals := validCustomer()
	vals["email"] = ""
	f := New(CustomerSchema(), vals)

	_, err := f.Submit()
	require.Error(t, err)

	var fe criterio.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 1)
	assert.Equal(t, "email", fe[0].Field)
	assert.Equal(t, map[string]string{"email": "Email is required"}, f.Errors())
}

func TestSubmitEmptyForm(t *testing.T) {
	f := New(CustomerSchema(), nil)

	_, err := f.Submit()
	require.Error(t, err)

	e := map[string]string{
		"name":        "Name is required",
		"orderStatus": "Status is required",
		"phone":       "Phone number is required",
		"postal":      "Postal Code is required",
		"city":        "City is required",
		"state":       "State is required",
		"address":     "Street line is required",
		"bank":        "Bank Name is required",
		"branch":      "Branch is required",
		"accno":       "Account Number is required",
		"accounter":   "Accounter Name is required",
		"ifsc":        "IFSC code is required",
		"email":       "Email is required",
	}
	assert.Equal(t, e, f.Errors())
}

func TestFieldRules(t *testing.T) {
	uu := map[string]struct {
		field, value string
		e            string
	}{
		"email-bad":      {field: "email", value: "not-an-email", e: "Must be a valid email"},
		"email-no-tld":   {field: "email", value: "a@b", e: "Must be a valid email"},
		"email-ok":       {field: "email", value: "a@b.co"},
		"email-too-long": {field: "email", value: strings.Repeat("a", 250) + "@b.com", e: "email must be at most 255 characters"},
		"name-blank":     {field: "name", value: "   ", e: "Name is required"},
		"name-too-long":  {field: "name", value: strings.Repeat("n", 256), e: "name must be at most 255 characters"},
		"location-long":  {field: "location", value: strings.Repeat("l", 501), e: "location must be at most 500 characters"},
		"location-empty": {field: "location", value: ""},
		"district-bad":   {field: "orderStatus", value: "Goa", e: "Unknown district"},
		"unknown":        {field: "nope", value: ""},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			f := New(CustomerSchema(), map[string]string{u.field: u.value})
			assert.Equal(t, u.e, f.Blur(u.field))
			err := CustomerSchema().ValidateField(u.field, u.value)
			if u.e == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBlurOnlyReportsTouched(t *testing.T) {
	f := New(CustomerSchema(), nil)

	assert.Empty(t, f.Error("phone"))
	assert.Equal(t, "Phone number is required", f.Blur("phone"))
	assert.Equal(t, map[string]string{"phone": "Phone number is required"}, f.Errors())

	f.Set("phone", "123")
	assert.Empty(t, f.Error("phone"))

	f.Set("city", "")
	assert.Empty(t, f.Error("city"))
}

func TestDirtyAndReset(t *testing.T) {
	f := New(CustomerSchema(), validCustomer())
	assert.False(t, f.Dirty())

	f.Set("city", "Kollam")
	assert.True(t, f.Dirty())

	f.Reset()
	assert.False(t, f.Dirty())
	assert.Equal(t, "Kochi", f.Value("city"))
}

func TestCustomerValues(t *testing.T) {
	s := CustomerSchema()

	blank := CustomerValues(s, nil)
	assert.Len(t, blank, len(s.Fields()))
	assert.Empty(t, blank["name"])

	rec := model1.Record{"id": "c1", "fatherName": "Old Name", "address": "1 Beach Rd", "accounter": "Priya", "email": "p@x.in"}
	vals := CustomerValues(s, rec)
	assert.Equal(t, "Old Name", vals["name"])
	assert.Equal(t, "1 Beach Rd", vals["location"])
	assert.Equal(t, "Priya", vals["accounter"])
	assert.Equal(t, "p@x.in", vals["email"])

	rec["name"] = "Current"
	assert.Equal(t, "Current", CustomerValues(s, rec)["name"])
}

func TestApplyValues(t *testing.T) {
	s := CustomerSchema()
	rec := model1.Record{"id": "c1", "upi": "old@upi", "extra": 1}

	vals := validCustomer()
	vals["upi"] = ""
	out := ApplyValues(s, rec, vals)

	assert.Equal(t, "c1", out.ID())
	assert.Equal(t, 1, out["extra"])
	assert.NotContains(t, out, "upi")
	assert.Equal(t, "R. Menon", out["accounter"])
	assert.Equal(t, "old@upi", rec["upi"])
	assert.NoError(t, ValidateRecord(s, out))
}
