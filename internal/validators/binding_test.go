package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email string  `json:"email" binding:"required,mailbox"`
	Name  *string `json:"nombre" binding:"required,notblank"`
}

func TestRegisterBinding(t *testing.T) {
	RegisterBinding()
	RegisterBinding()

	name := func(s string) *string { return &s }

	t.Run("accepts a normalized mailbox", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(signupForm{Email: " Ana@Barberia.COM ", Name: name("Ana")})
		assert.NoError(t, err)
	})

	tests := []struct {
		name      string
		form      signupForm
		wantField string
		wantTag   string
	}{
		{"missing email", signupForm{Name: name("Ana")}, "email", "required"},
		{"email without dot", signupForm{Email: "ana@barberia", Name: name("Ana")}, "email", "mailbox"},
		{"email with two at signs", signupForm{Email: "a@b@barberia.com", Name: name("Ana")}, "email", "mailbox"},
		{"missing name", signupForm{Email: "ana@barberia.com"}, "nombre", "required"},
		{"blank name", signupForm{Email: "ana@barberia.com", Name: name("   ")}, "nombre", "notblank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.form)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
			assert.Equal(t, "signupForm."+tt.wantField, verrs[0].Namespace())
		})
	}
}
