package checkout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Humphrey-He/mtstore/pkg/errors"
)

// ShippingForm is the delivery address entered on the first checkout step.
type ShippingForm struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Country  string `json:"country" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required"`
}

// ShippingFields lists the form field names in display order.
var ShippingFields = []string{"fullName", "email", "phone", "address", "city", "country", "zipCode"}

// Set assigns a field by its name.
func (f *ShippingForm) Set(name, value string) error {
	switch name {
	case "fullName":
		f.FullName = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "address":
		f.Address = value
	case "city":
		f.City = value
	case "country":
		f.Country = value
	case "zipCode":
		f.ZipCode = value
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownField, name)
	}
	return nil
}

// trimmed returns f with surrounding whitespace removed from every field.
func (f ShippingForm) trimmed() ShippingForm {
	return ShippingForm{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Address:  strings.TrimSpace(f.Address),
		City:     strings.TrimSpace(f.City),
		Country:  strings.TrimSpace(f.Country),
		ZipCode:  strings.TrimSpace(f.ZipCode),
	}
}

// Missing returns the names of blank required fields in display order.
func (f ShippingForm) Missing() []string {
	return MissingFields(Validator(), f.trimmed())
}

var validate = newValidator()

// Validator returns the shared form validator. It reports fields by their
// json names.
func Validator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MissingFields validates a struct with v and returns the names of the
// fields that failed, or nil when the struct is valid.
func MissingFields(v *validator.Validate, form any) []string {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}
