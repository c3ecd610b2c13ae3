package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePostFields(t *testing.T) {
	tests := []struct {
		name   string
		fields PostFields
		ok     bool
	}{
		{"all set", PostFields{Title: "T", Snippet: "S", Body: "B"}, true},
		{"missing title", PostFields{Snippet: "S", Body: "B"}, false},
		{"missing snippet", PostFields{Title: "T", Body: "B"}, false},
		{"missing body", PostFields{Title: "T", Snippet: "S"}, false},
		{"all empty", PostFields{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostFields(tt.fields)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}
