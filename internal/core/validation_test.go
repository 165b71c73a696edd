package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStrict(t *testing.T) {
	v := NewValidator(ValidationStrict)

	tests := []struct {
		field Field
		value string
		ok    bool
	}{
		{FieldManufacturer, "Dell", true},
		{FieldManufacturer, "", true},
		{FieldManufacturer, "Dell-XPS_1", true},
		{FieldManufacturer, "Dell XPS", false},
		{FieldManufacturer, strings.Repeat("a", 11), false},
		{FieldScreenDiagonal, `15.6"`, true},
		{FieldScreenResolution, `15.6"`, false},
		{FieldCPUCores, "4", true},
		{FieldCPUCores, "", true},
		{FieldCPUCores, "four", false},
		{FieldCPUCores, "12345678901", false},
		{FieldID, "10", true},
		{FieldID, "-1", false},
		{FieldIsTouchScreen, "Tak", true},
		{FieldIsTouchScreen, "Nie", true},
		{FieldIsTouchScreen, "Takk", false},
		{FieldIsTouchScreen, "tak", false},
		{FieldOpticalDriveType, "", false},
		{FieldDiskType, "SSD", true},
		{FieldDiskType, "HDD", true},
		{FieldDiskType, "FOO", false},
		{FieldDiskType, "SSD2", false},
	}

	for _, tt := range tests {
		err := v.Validate(tt.field, tt.value)
		if tt.ok {
			assert.NoError(t, err, "%s=%q", tt.field, tt.value)
		} else {
			assert.ErrorIs(t, err, ErrValidationRejected, "%s=%q", tt.field, tt.value)
		}
	}
}

func TestValidateLegacy(t *testing.T) {
	v := NewValidator(ValidationLegacy)

	assert.NoError(t, v.Validate(FieldCPUCores, "four"), "legacy numeric accepts any non-empty text")
	assert.Error(t, v.Validate(FieldCPUCores, ""))
	assert.NoError(t, v.Validate(FieldIsTouchScreen, "Takk"), "legacy enum is a prefix match")
	assert.NoError(t, v.Validate(FieldDiskType, "SSD2"))
	assert.Error(t, v.Validate(FieldDiskType, "FOO"))
	assert.Error(t, v.Validate(FieldManufacturer, "Dell XPS"), "free text rules are shared")
}

func TestValidate_ErrorDetails(t *testing.T) {
	err := NewValidator(ValidationStrict).Validate(FieldDiskType, "FOO")
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "diskType", ve.Field)
	assert.Equal(t, "FOO", ve.Value)
	assert.Contains(t, ve.Error(), "HDD or SSD")
}

func TestValidate_Idempotent(t *testing.T) {
	v := Validator{}
	for i := 0; i < 3; i++ {
		assert.NoError(t, v.Validate(FieldDiskType, "HDD"))
		assert.Error(t, v.Validate(FieldDiskType, "hdd"))
	}
}

func TestValidate_UnknownField(t *testing.T) {
	err := Validator{}.Validate(Field(42), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseValidationMode(t *testing.T) {
	m, err := ParseValidationMode("")
	require.NoError(t, err)
	assert.Equal(t, ValidationStrict, m)

	m, err = ParseValidationMode(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, ValidationLegacy, m)
	assert.Equal(t, "legacy", m.String())

	_, err = ParseValidationMode("lenient")
	assert.Error(t, err)
}

func TestValidateRecord(t *testing.T) {
	rec := Record{ID: 1, Manufacturer: "Dell", IsTouchScreen: "Tak", DiskType: "FOO", OpticalDriveType: "Nie"}
	errs := NewValidator(ValidationStrict).ValidateRecord(rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "diskType", errs[0].Field)
}
