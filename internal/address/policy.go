// Package address validates the username/address strings the ledger
// accepts as senders and receivers.
package address

import "github.com/go-playground/validator/v10"

// System is the sentinel sender used for the genesis transaction and for
// no other purpose. It is a valid address under IsValid.
const System = "System"

const (
	minLength = 3
	maxLength = 20
)

// IsValid reports whether s is 3-20 ASCII alphanumeric or underscore
// characters. Unicode letters are rejected; only the ASCII alphanumeric
// range and '_' are accepted.
func IsValid(s string) bool {
	if len(s) < minLength || len(s) > maxLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}

	return true
}

// NewValidator builds a *validator.Validate with a registered "ledgeraddr"
// tag so CLI input DTOs can declare address fields with a struct tag
// instead of calling IsValid by hand:
//
//	type RegisterInput struct {
//	    Name string `validate:"required,ledgeraddr"`
//	}
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("ledgeraddr", func(fl validator.FieldLevel) bool {
		return IsValid(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	return v, nil
}
