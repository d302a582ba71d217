package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/feraben-crm/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores nombran el campo como llega en el JSON o en la query.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate aplica las reglas `validate` del DTO. El primer campo rechazado se devuelve como
// error de validación del dominio.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return domain.NewValidationError(fe.Field(), reason)
	}
	return domain.NewValidationError("body", err.Error())
}
