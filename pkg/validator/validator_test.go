package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `json:"email" validate:"omitempty,basic_email"`
	Date  string `json:"date" validate:"required,date_ymd"`
	Time  string `json:"time" validate:"required,clock"`
}

func TestCustomValidator_CustomRules(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sample{Email: "ana@clinica.com", Date: "2024-06-03", Time: "10:30"}))
	assert.NoError(t, v.Validate(&sample{Date: "2024-06-03", Time: "10:30"}))

	err := v.Validate(&sample{Email: "ana@clinica", Date: "03/06/2024", Time: "25:00"})
	assert.Error(t, err)
	assert.Equal(t, "Email", v.FirstInvalidField(err))

	errs := v.FormatValidationErrors(err)
	assert.Len(t, errs, 3)
	assert.Equal(t, "Date must be a date in YYYY-MM-DD format", errs["Date"])
}

func TestCustomValidator_FirstInvalidFieldFollowsDeclarationOrder(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "ok@x.io", Time: "bad"})
	assert.Equal(t, "Date", v.FirstInvalidField(err))
	assert.Equal(t, "", v.FirstInvalidField(nil))
}
