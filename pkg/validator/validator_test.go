package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordPath struct {
	ID string `param:"id" validate:"required,max=8,recordid"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"valid", "rec-1", ""},
		{"missing", "", "id: required"},
		{"too long", "123456789", "id: max=8"},
		{"space", "a b", "id: recordid"},
		{"slash", "a/b", "id: recordid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&recordPath{ID: tt.id})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %q", err.Error())
			}
		})
	}
}
