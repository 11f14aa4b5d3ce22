package claims

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formValidate is the validator instance for intake sections.
var formValidate *validator.Validate

func init() {
	formValidate = validator.New()
	// Report errors by JSON field name so messages line up with the wire
	// format and the UI's field labels.
	formValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateSection checks the named section's required fields and returns a
// map of json field name to message. An empty map means the section may
// advance.
func ValidateSection(a FormAggregate, s Section) map[string]string {
	problems := make(map[string]string)

	err := formValidate.Struct(a.SectionPayload(s))
	if err == nil {
		return problems
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		problems[""] = err.Error()
		return problems
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			problems[fe.Field()] = "This field is required"
		default:
			problems[fe.Field()] = "Invalid value"
		}
	}
	return problems
}
