package book

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// The storage schema: every Repository validates records against it before
// writing, independently of the checks the Service makes.
var schema = newSchema()

func newSchema() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// ValidateRecord checks b against the storage schema.
func ValidateRecord(b Book) error {
	err := schema.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation(err.Error(), nil)
	}

	fields := make(map[string]string, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := friendlyMessage(fe)
		fields[fe.Field()] = msg
		parts = append(parts, fe.Field()+" "+msg)
	}
	return Validation("Book validation failed: "+strings.Join(parts, ", "), fields)
}

// ValidatePatch checks only the fields p sets. A stored record already
// satisfies the schema, so a merge is valid iff this passes.
func ValidatePatch(p Patch) error {
	base := Book{Title: "-", Author: "-"}
	return ValidateRecord(Merge(base, p))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
