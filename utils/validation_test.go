package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+tag@sub.example.co.uk",
		"a@b.fr",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "devrait être valide: %s", email)
	}

	invalid := []string{
		"",
		"jane",
		"jane@",
		"@example.com",
		"jane@example",
		"jane doe@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "devrait être invalide: %s", email)
	}
}
