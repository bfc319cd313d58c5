package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_profile", "UserProfile"},
		{"api-client", "ApiClient"},
		{"pet.store", "PetStore"},
		{"already", "Already"},
		{"Order detail", "OrderDetail"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "userProfile", ToCamelCase("user_profile"))
	assert.Equal(t, "userProfile", ToCamelCase("UserProfile"))
	assert.Equal(t, "", ToCamelCase(""))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_profile", ToSnakeCase("UserProfile"))
	assert.Equal(t, "api_client", ToSnakeCase("api-client"))
	assert.Equal(t, "", ToSnakeCase(""))
}

func TestSanitizeEnumCase(t *testing.T) {
	tests := []struct {
		literal  string
		expected string
	}{
		{"active", "Active"},
		{"not-available", "NotAvailable"},
		{"SOLD OUT", "SoldOut"},
		{"with_underscore", "WithUnderscore"},
		{"42nd", "_42nd"},
		{"***", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeEnumCase(tt.literal))
		})
	}
}
