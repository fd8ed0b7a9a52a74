package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"not found", NotFound("booking", nil), http.StatusNotFound},
		{"missing clinic", MissingClinic(), http.StatusBadRequest},
		{"missing criteria", MissingSearchCriteria(), http.StatusBadRequest},
		{"verification mismatch", VerificationMismatch(), http.StatusBadRequest},
		{"transient", TransientService(), http.StatusInternalServerError},
		{"internal", Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.StatusCode())
		})
	}
}

func TestIsCode(t *testing.T) {
	err := MissingClinic()
	assert.True(t, IsCode(err, ErrMissingClinic))
	assert.False(t, IsCode(err, ErrNotFound))

	// Matches through wrapping.
	wrapped := fmt.Errorf("search failed: %w", err)
	assert.True(t, IsCode(wrapped, ErrMissingClinic))

	assert.False(t, IsCode(fmt.Errorf("plain"), ErrInternal))
	assert.False(t, IsCode(nil, ErrInternal))
}
