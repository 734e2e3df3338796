package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name *string `json:"name" validate:"required,notblank"`
	Age  *int32  `json:"age" validate:"required,gt=0"`
	Note *string `json:"note" validate:"omitnil,notblank"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields []string
	}{
		{"valid", sample{Name: ptr("Ada"), Age: ptr(int32(30))}, nil},
		{"missing name", sample{Age: ptr(int32(30))}, []string{"name"}},
		{"blank name", sample{Name: ptr("   "), Age: ptr(int32(30))}, []string{"name"}},
		{"zero age", sample{Name: ptr("Ada"), Age: ptr(int32(0))}, []string{"age"}},
		{"missing both", sample{}, []string{"name", "age"}},
		{"blank optional", sample{Name: ptr("Ada"), Age: ptr(int32(1)), Note: ptr("")}, []string{"note"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}

			var ve Errors
			if !errors.As(err, &ve) {
				t.Fatalf("Struct() error = %v, want Errors", err)
			}
			if len(ve) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(ve), ve, len(tt.wantFields))
			}
			for i, f := range tt.wantFields {
				if ve[i].Field != f {
					t.Errorf("error %d field = %q, want %q", i, ve[i].Field, f)
				}
			}
		})
	}
}

func TestErrorsString(t *testing.T) {
	var ve Errors
	if ve.HasErrors() {
		t.Fatal("empty Errors reports HasErrors")
	}
	ve.Add("name", "is required")
	ve.Add("", "body is empty")
	if got, want := ve.Error(), "name: is required; body is empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
