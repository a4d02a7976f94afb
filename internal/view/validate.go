package view

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
)

// NewValidator returns a validator with the view-specific tags registered:
// caseinsensitiveoneof, delimiter and viewtype.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)
	validate.RegisterValidation("delimiter", delimiter)
	validate.RegisterValidation("viewtype", viewType)
	return validate
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	candidates := strings.Split(strings.ToLower(fl.Param()), " ")
	for _, v := range candidates {
		if val == v {
			return true
		}
	}
	return false
}

func delimiter(fl validator.FieldLevel) bool {
	_, err := dataset.ParseDelimiter(fl.Field().String())
	return err == nil
}

func viewType(fl validator.FieldLevel) bool {
	_, err := ParseType(fl.Field().String())
	return err == nil
}
