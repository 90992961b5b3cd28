package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceLabel(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain segment", "/orders", "Order"},
		{"numeric tail falls back to parent", "/orders/42", "Order"},
		{"nested numeric tail", "/orders/42/payments/7", "Payment"},
		{"hyphens become spaces", "/payment-proofs", "Payment proof"},
		{"underscores become spaces", "/inventory_items/3", "Inventory item"},
		{"lone numeric segment", "/42", "Resource"},
		{"root path", "/", "Resource"},
		{"empty path", "", "Resource"},
		{"trailing slash", "/orders/", "Order"},
		{"ies plural", "/activities", "Activity"},
		{"es plural", "/statuses", "Status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResourceLabel(tt.path))
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		actor    string
		activity Type
		path     string
		want     string
	}{
		{"view", "Rina", TypeView, "/orders/42", "Rina viewed Order"},
		{"create", "Rina", TypeCreate, "/orders", "Rina created new Order"},
		{"update", "Budi", TypeUpdate, "/orders/7", "Budi updated Order"},
		{"delete", "Budi", TypeDelete, "/orders/7", "Budi deleted Order"},
		{"verify", "Sari", TypeVerify, "/orders/5/verify", "Sari verified Verify"},
		{"upload", "Sari", TypeUpload, "/orders/5/payments/2/upload", "Sari uploaded Upload"},
		{"login ignores resource", "Rina", TypeLogin, "/login", "Rina logged into the system"},
		{"logout ignores resource", "Rina", TypeLogout, "/logout", "Rina logged out from the system"},
		{"unknown kind falls back", "Rina", Type("weird"), "/orders", "Rina performed action on Order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.actor, tt.activity, tt.path))
		})
	}
}

func TestDescribe_Idempotent(t *testing.T) {
	first := Describe("Rina", TypeView, "/orders/42")
	second := Describe("Rina", TypeView, "/orders/42")
	assert.Equal(t, first, second)
}

func TestDescribe_NeverEmpty(t *testing.T) {
	for _, kind := range []Type{TypeLogin, TypeLogout, TypeVerify, TypeReject,
		TypeUpload, TypeDownload, TypeView, TypeCreate, TypeUpdate, TypeDelete, TypeAction} {
		assert.NotEmpty(t, Describe("x", kind, ""), string(kind))
	}
}
