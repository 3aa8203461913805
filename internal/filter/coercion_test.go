package filter

import (
	"errors"
	"testing"

	"github.com/solatis/querybuilder/internal/types"
)

func TestCheckValueType(t *testing.T) {
	tests := []struct {
		name     string
		value    types.Value
		dataType string
		wantErr  error
	}{
		{"integer", "120", types.DataTypeInteger, nil},
		{"integer with whitespace", "  42\t", types.DataTypeInteger, nil},
		{"negative integer", "-7", types.DataTypeInteger, nil},
		{"leading plus", "+7", types.DataTypeInteger, nil},
		{"leading zeros", "007", types.DataTypeInteger, nil},
		{"decimal rejected", "1.5", types.DataTypeInteger, types.ErrValueTypeMismatch},
		{"exponent rejected", "1e3", types.DataTypeInteger, types.ErrValueTypeMismatch},
		{"boolean rejected", "true", types.DataTypeInteger, types.ErrValueTypeMismatch},
		{"whitespace rejected", "   ", types.DataTypeInteger, types.ErrValueTypeMismatch},
		{"overflow rejected", "99999999999999999999", types.DataTypeInteger, types.ErrValueTypeMismatch},
		{"string accepted", " Heat ", types.DataTypeString, nil},
		{"unknown type as string", "x", "Date", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckValueType(tt.value, tt.dataType)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckValueType(%q, %q) error = %v, want %v", tt.value, tt.dataType, err, tt.wantErr)
			}
		})
	}
}
