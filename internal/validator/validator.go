package validator

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Validator collects the first error message per field.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func (v *Validator) CheckNotBlank(value, key, message string) {
	v.Check(strings.TrimSpace(value) != "", key, message)
}

// CheckOptionalNotBlank only checks values that were sent.
func (v *Validator) CheckOptionalNotBlank(value *string, key, message string) {
	if value != nil {
		v.CheckNotBlank(*value, key, message)
	}
}

func (v *Validator) CheckUUID(value, key string) {
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(key, "must be a valid UUID")
	}
}

func (v *Validator) CheckEmail(value, key string) {
	v.Check(v.IsMatch(value, EmailRX), key, "must be a valid email address")
}

func (v *Validator) IsMatch(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
