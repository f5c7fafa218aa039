// Package validation sanitizes and checks raw form input against declarative
// per-field rule tables before anything reaches the store.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule is a single predicate on a field. Tag uses the go-playground/validator
// tag syntax (min=3, required, ...) plus the isnumeric and price tags
// registered below.
type Rule struct {
	Tag     string
	Message string
}

// Field describes how one form field is sanitized and which rules apply to it.
// Rules are checked after trimming and before escaping.
type Field struct {
	Name   string
	Trim   bool
	Escape bool
	Rules  []Rule
}

// Schema is an ordered rule table.
type Schema []Field

// FieldError is a failed rule, ready for display next to the form.
type FieldError struct {
	Field   string
	Message string
}

// Result holds the sanitized values and every failed rule, in table order.
type Result struct {
	Values map[string]string
	Errors []FieldError
}

// Valid reports whether no rule failed.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the sanitized value of a field.
func (r *Result) Get(field string) string {
	return r.Values[field]
}

// Add appends an error produced outside the rule table (for example a
// category reference that does not resolve).
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var validate = newValidator()

// Limits of a stored price: DECIMAL(19,4) in MySQL, well inside Decimal128.
const (
	PriceIntegerDigits  = 15
	PriceFractionDigits = 4
)

// numberPattern accepts the same strings as express-validator's isNumeric,
// including a leading dot (".5").
var numberPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	custom := map[string]validator.Func{
		"isnumeric": func(fl validator.FieldLevel) bool {
			return numberPattern.MatchString(fl.Field().String())
		},
		"price": func(fl validator.FieldLevel) bool {
			return fitsPrice(fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// fitsPrice reports whether s has no more digits on either side of the
// decimal point than a stored price keeps. Non-numbers are left to
// isnumeric.
func fitsPrice(s string) bool {
	if !numberPattern.MatchString(s) {
		return true
	}
	s = strings.TrimLeft(s, "+-")
	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")
	return len(intPart) <= PriceIntegerDigits && len(fracPart) <= PriceFractionDigits
}

// Validate runs every rule of the schema against the values returned by get.
// It never stops at the first failure.
func Validate(schema Schema, get func(string) string) *Result {
	res := &Result{Values: make(map[string]string, len(schema))}

	for _, f := range schema {
		value := get(f.Name)
		if f.Trim {
			value = strings.TrimSpace(value)
		}

		for _, rule := range f.Rules {
			if err := validate.Var(value, rule.Tag); err != nil {
				res.Add(f.Name, rule.Message)
			}
		}

		if f.Escape {
			value = Escape(value)
		}
		res.Values[f.Name] = value
	}

	return res
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup-significant characters with HTML entities.
func Escape(s string) string {
	return escaper.Replace(s)
}
