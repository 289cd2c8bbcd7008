package main

import (
	"github.com/siahsang/blog-orms/internal/validator"
)

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(email, "email")
}

// checkID validates a path or query identifier.
func checkID(v *validator.Validator, id, key string) {
	v.CheckNotBlank(id, key, "must be provided")
	v.CheckUUID(id, key)
}
