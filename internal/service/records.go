package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
)

// VehicleForm carries the seven fields of the record-entry form as the user
// typed them. Dates are form-format strings (2006-01-02).
type VehicleForm struct {
	VehicleNo     string
	FitnessValid  string
	InsuranceValid string
	PermitValid   string
	TaxValid      string
	PucValid      string
	ContactNumber string
}

// fieldLabels maps form fields to the names used in validation messages,
// in display order.
var fieldLabels = []struct {
	name  string
	value func(*VehicleForm) string
}{
	{"vehicleNo", func(f *VehicleForm) string { return f.VehicleNo }},
	{"fitnessValid", func(f *VehicleForm) string { return f.FitnessValid }},
	{"insuranceValid", func(f *VehicleForm) string { return f.InsuranceValid }},
	{"permitValid", func(f *VehicleForm) string { return f.PermitValid }},
	{"taxValid", func(f *VehicleForm) string { return f.TaxValid }},
	{"pucValid", func(f *VehicleForm) string { return f.PucValid }},
	{"contactNumber", func(f *VehicleForm) string { return f.ContactNumber }},
}

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
var whitespacePattern = regexp.MustCompile(`\s`)

// Validate checks the form before any network call is made. All seven fields
// must be non-empty and the contact number must look like an international
// phone number once whitespace is stripped.
func (f *VehicleForm) Validate() error {
	var missing []string
	for _, field := range fieldLabels {
		if field.value(f) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("please fill in all required fields: %s", strings.Join(missing, ", "))
	}

	stripped := whitespacePattern.ReplaceAllString(f.ContactNumber, "")
	if !phonePattern.MatchString(stripped) {
		return fmt.Errorf("please enter a valid phone number")
	}

	return nil
}

// ToRecord serializes the form to the backend's field names.
func (f *VehicleForm) ToRecord() *models.VehicleRecord {
	return &models.VehicleRecord{
		VehicleNumber:                  f.VehicleNo,
		FcExpiryDate:                   f.FitnessValid,
		InsuranceExpiryDate:            f.InsuranceValid,
		PermitExpiryDate:               f.PermitValid,
		TaxDueDate:                     f.TaxValid,
		PollutionCertificateExpiryDate: f.PucValid,
		ContactNumber:                  f.ContactNumber,
	}
}

// FormFromRecord pre-fills the form for edit, reformatting the backend's
// dates into the 2006-01-02 shape date inputs expect.
func FormFromRecord(record *models.VehicleRecord) *VehicleForm {
	return &VehicleForm{
		VehicleNo:     record.VehicleNumber,
		FitnessValid:  FormDate(record.FcExpiryDate),
		InsuranceValid: FormDate(record.InsuranceExpiryDate),
		PermitValid:   FormDate(record.PermitExpiryDate),
		TaxValid:      FormDate(record.TaxDueDate),
		PucValid:      FormDate(record.PollutionCertificateExpiryDate),
		ContactNumber: record.ContactNumber,
	}
}

// dateFormats are the shapes the backend has been seen to emit.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	constants.FormDateFormat,
	constants.DisplayDateFormat,
}

func parseDate(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate reformats a backend date for table display. Unparseable values
// pass through untouched rather than blanking the cell.
func DisplayDate(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format(constants.DisplayDateFormat)
}

// FormDate reformats a backend date into the shape date inputs expect.
func FormDate(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format(constants.FormDateFormat)
}
