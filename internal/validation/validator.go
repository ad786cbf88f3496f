// Package validation wraps go-playground/validator with the tags used for
// pass records: plate_alpha, plate_num and location.
package validation

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Locations lists the gate locations a pass may be issued for.
var Locations = []string{
	"SEC 01", "SEC 02", "SEC 03", "SEC 04", "SEC 05",
	"SEC 06", "SEC 07", "SEC 08", "SEC 09", "SEC 10",
	"LD 01", "LD 02", "LD 03", "LD 04", "LD 05", "LD 06",
	"Pump Station",
}

const (
	maxPlateAlpha = 4
	maxPlateNum   = 5
)

var (
	once     sync.Once
	validate *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("plate_alpha", validatePlateAlpha)
		_ = v.RegisterValidation("plate_num", validatePlateNum)
		_ = v.RegisterValidation("location", validateLocation)
		validate = v
	})
	return validate
}

// Struct validates s by its `validate` tags.
func Struct(s any) error {
	return get().Struct(s)
}

// NormalizePlateAlpha trims and upper-cases the letter part of a plate.
// It is idempotent.
func NormalizePlateAlpha(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Plate checks a plate pair as typed by a user: 1-4 letters, 1-5 digits.
func Plate(alpha, num string) error {
	v := get()
	if err := v.Var(alpha, "required,plate_alpha"); err != nil {
		return fmt.Errorf("plate letters: only letters allowed, max %d", maxPlateAlpha)
	}
	if err := v.Var(num, "required,plate_num"); err != nil {
		return fmt.Errorf("plate number: only digits allowed, max %d", maxPlateNum)
	}
	return nil
}

// Describe turns a validator error into a compact "field: problem; ..." string.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, field+": required")
		case "plate_alpha":
			msgs = append(msgs, fmt.Sprintf("%s: only letters allowed, max %d", field, maxPlateAlpha))
		case "plate_num":
			msgs = append(msgs, fmt.Sprintf("%s: only digits allowed, max %d", field, maxPlateNum))
		case "location":
			msgs = append(msgs, field+": unknown location")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", field, e.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s: %s %s", field, e.Tag(), e.Param()))
		default:
			msgs = append(msgs, field+": invalid value")
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func validatePlateAlpha(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > maxPlateAlpha {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func validatePlateNum(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > maxPlateNum {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateLocation(fl validator.FieldLevel) bool {
	return slices.Contains(Locations, fl.Field().String())
}
