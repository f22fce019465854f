package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ops@eximdesk.com", "first.last+tag@sub.domain.co"}
	invalid := []string{"", "plainaddress", "@no-user.com", "user@", "user@domain"}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("ravi.kumar"))
	assert.True(t, IsValidUsername("ops_user-01"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidJobNo(t *testing.T) {
	assert.True(t, IsValidJobNo("00123/24-25"))
	assert.True(t, IsValidJobNo("7/23-24"))
	assert.False(t, IsValidJobNo("00123"))
	assert.False(t, IsValidJobNo("00123/2425"))
	assert.False(t, IsValidJobNo("abc/24-25"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-02-28")
	assert.True(t, ok)
	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
	_, ok = IsValidDate("28-02-2025")
	assert.False(t, ok)
}

func TestIsValidMonthYear(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))

	assert.True(t, IsValidYear(2025))
	assert.False(t, IsValidYear(1999))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "Name is required"},
		{Field: "year", Message: "Invalid year"},
	}

	assert.Equal(t, "name: Name is required; year: Invalid year", errs.Error())
	assert.Equal(t, map[string]string{
		"name": "Name is required",
		"year": "Invalid year",
	}, errs.ToMap())
}
