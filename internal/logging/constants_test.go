package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldConstantsAreDistinct(t *testing.T) {
	names := []string{
		FieldFile, FieldInputFile, FieldOutputDir, FieldOutputFile, FieldComponent,
		FieldOperation, FieldValidator, FieldCategory, FieldColumn, FieldCount,
		FieldExpected, FieldRunID, FieldDelimiter, FieldDuration, FieldError,
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate field name %q", name)
		seen[name] = true
	}
}
