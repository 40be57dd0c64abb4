package api

import (
	"github.com/go-playground/validator/v10"
)

const MaxDomainLength = 253

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the validate tags of a request body.
func Validate(request any) error {
	return validate.Struct(request)
}

type LimitData struct {
	Limit int `query:"limit" json:"limit"` // Number of results to return
}
