package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type togglePayload struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Note  string `json:"note" validate:"omitempty,max=280"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func TestValidateStructSuccess(t *testing.T) {
	err := ValidateStruct(&togglePayload{Date: "2025-06-10", Note: "after midnight only", Color: "#3b82f6"})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&togglePayload{Date: "10/06/2025", Color: "blue"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)

	fields := make(map[string]string, len(failures))
	for _, failure := range failures {
		fields[failure.Field] = failure.Tag
	}
	require.Contains(t, fields, "date")
	require.Contains(t, fields, "color")
}
