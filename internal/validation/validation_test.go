package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNameInput(t *testing.T) {
	tests := []struct {
		name    string
		in      NameInput
		wantMsg string
	}{
		{name: "valid", in: NameInput{Name: "Alice"}},
		{name: "too short", in: NameInput{Name: "Al"}, wantMsg: `"name" length must be at least 3 characters long`},
		{name: "missing", in: NameInput{}, wantMsg: `"name" is required`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "name", verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestValidateOtherRules(t *testing.T) {
	type contact struct {
		Email string `json:"email" validate:"required,email"`
		Age   int    `json:"age" validate:"min=18"`
		Code  string `validate:"max=2"`
	}

	err := Validate(contact{Email: "nope", Age: 20})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, `"email" must be a valid email`, verr.Message)

	err = Validate(contact{Email: "a@b.co", Age: 3})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, `"age" must be greater than or equal to 18`, verr.Message)

	err = Validate(contact{Email: "a@b.co", Age: 30, Code: "abc"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Code", verr.Field)
	assert.Equal(t, "max", verr.Rule)
}

func TestValidateNonStruct(t *testing.T) {
	assert.Error(t, Validate("just a string"))
}
