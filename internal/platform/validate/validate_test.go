// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Сталкер", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value, "required")

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "required", ae.Message)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_UUID accepts canonical ids only.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"v7", "01928f4e-7a3c-7b1e-9c4f-2d1e0a5b6c7d", true},
		{"upper_case", "01928F4E-7A3C-7B1E-9C4F-2D1E0A5B6C7D", true},
		{"empty", "", false},
		{"truncated", "01928f4e-7a3c-7b1e-9c4f", false},
		{"garbage", "movie-42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("movie_id", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Custom records the message only when the condition holds.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("rating", false, "unused").Custom("duration_minutes", true, "Длительность должна быть больше нуля")

	err := v.Err()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Длительность должна быть больше нуля", ae.Message)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "duration_minutes", ae.Details[0].Field)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "", "title missing").
		UUID("id", "nope").
		Custom("rating", true, "rating out of range").
		ErrWithMessage("Validation failed")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, "Validation failed", ae.Message)
	assert.Len(t, ae.Details, 3)
}
