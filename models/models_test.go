package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary *string
		lang      Language
		want      string
	}{
		{"ka always primary", "გამარჯობა", strp("привет"), LanguageKA, "გამარჯობა"},
		{"ru uses secondary", "გამარჯობა", strp("привет"), LanguageRU, "привет"},
		{"ru missing secondary falls back", "გამარჯობა", nil, LanguageRU, "გამარჯობა"},
		{"ru empty secondary falls back", "გამარჯობა", strp(""), LanguageRU, "გამარჯობა"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayText(tt.primary, tt.secondary, tt.lang))
		})
	}
}
