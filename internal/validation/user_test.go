package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "@johndoe", false},
		{"Valid With Digits", "@j4ned0e", false},
		{"Valid With Underscore", "@jane_doe", false},
		{"Exactly Min Handle", "@abc", false},
		{"Exactly Max Length", "@" + strings.Repeat("a", 29), false},
		{"Empty", "", true},
		{"Missing At", "johndoe", true},
		{"Double At", "@@johndoe", true},
		{"At In Middle", "john@doe", true},
		{"Too Short Handle", "@jd", true},
		{"Too Long", "@" + strings.Repeat("a", 30), true},
		{"Contains Space", "@john doe", true},
		{"Contains Dash", "@john-doe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Jane", false},
		{"Exactly Max Length", strings.Repeat("a", 50), false},
		{"Empty", "", true},
		{"Blank", "   ", true},
		{"Too Long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "jane.doe@example.org", false},
		{"Valid With Plus", "jane+tag@example.org", false},
		{"Empty", "", true},
		{"Missing At", "jane.example.org", true},
		{"Missing Domain", "jane@", true},
		{"Missing TLD", "jane@example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBio(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio(strings.Repeat("a", 520)))
	assert.Error(t, ValidateBio(strings.Repeat("a", 521)))
}

func TestValidatePostText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"Valid", "Hello, world!", false},
		{"Exactly Max Length", strings.Repeat("a", 280), false},
		{"Empty", "", true},
		{"Blank", "   \n", true},
		{"Too Long", strings.Repeat("a", 281), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostText(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Password123", false},
		{"Exactly Min Length", "Abcdefg1", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 126) + "1", false},
		{"Too Short", "Abcde1", true},
		{"Too Long", "A" + strings.Repeat("b", 127) + "1", true},
		{"No Upper", "password123", true},
		{"No Lower", "PASSWORD123", true},
		{"No Digit", "PasswordABC", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
