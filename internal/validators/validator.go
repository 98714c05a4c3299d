package validators

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
)

var validate = New()

// New returns a validator with the scheduler's custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

// Register adds hhmm, isodate and phone tags and reports json field names.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		n := len(NormalizePhone(fl.Field().String()))
		return n >= 8 && n <= 15
	})
}

// Struct validates data and reports the first failing field as a
// ValidationError.
func Struct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	return FromValidator(err)
}

// FromValidator converts validator errors into the domain taxonomy.
func FromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return httperr.ErrInvalidField(fe.Field(), code(fe))
	}
	return httperr.ErrValidation("invalid_request")
}

func code(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid_email"
	case "hhmm":
		return "invalid_time"
	case "isodate":
		return "invalid_date"
	case "phone":
		return "invalid_phone"
	case "max", "min":
		return "invalid_length"
	case "oneof":
		return "invalid_option"
	default:
		return "invalid_" + fe.Tag()
	}
}
