package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRefToType(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{"local component pointer", "#/components/schemas/User", "User"},
		{"relative file path", "./models/Address.json", "Address"},
		{"file with fragment", "Order.yaml#/definitions/Detail", "Detail"},
		{"bare identifier", "SimpleType", "SimpleType"},
		{"degenerate hash", "#", "#"},
		{"empty", "", ""},
		{"fragment without slash", "#UserAnchor", "UserAnchor"},
		{"percent-encoded segment", "#/components/schemas/User%20Profile", "User Profile"},
		{"url without fragment", "https://example.com/specs/pet.yaml", "pet"},
		{"empty fragment falls back to path", "models/Pet.json#", "Pet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveRefToType(tt.ref))
		})
	}
}

func TestLocalPathItemName(t *testing.T) {
	tests := []struct {
		frag     string
		expected string
		ok       bool
	}{
		{"/components/pathItems/UserOps", "UserOps", true},
		{"/components/pathItems/User%20Ops", "User Ops", true},
		{"/components/pathItems/Too/Deep", "", false},
		{"/components/pathItems/", "", false},
		{"/components/schemas/User", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.frag, func(t *testing.T) {
			name, ok := localPathItemName(tt.frag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, name)
		})
	}
}
