package validator

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Felts reach validation functions in their hex form.
func feltFromField(fl validator.FieldLevel) (felt.Felt, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return felt.Felt{}, false
	}
	f, err := felt.FromHex(s)
	return f, err == nil
}

func validateFeltU64(fl validator.FieldLevel) bool {
	f, ok := feltFromField(fl)
	if !ok {
		return false
	}
	_, err := felt.Uint64FromFelt(f)
	return err == nil
}

func validateFeltU128(fl validator.FieldLevel) bool {
	f, ok := feltFromField(fl)
	if !ok {
		return false
	}
	_, err := felt.Uint128FromFelt(f)
	return err == nil
}

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("felt_u64", validateFeltU64); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		if err := v.RegisterValidation("felt_u128", validateFeltU128); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Register these types to use their string representation for validation
		// purposes
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch f := field.Interface().(type) {
			case felt.Felt:
				return f.String()
			case *felt.Felt:
				return f.String()
			}
			panic("not a felt")
		}, felt.Felt{}, &felt.Felt{})
	})
	return v
}
