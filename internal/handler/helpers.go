package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// validate checks query structs that gin's binder does not cover.
var validate = validator.New()

func invalidDateError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
}

func invalidQueryError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing or malformed query parameters")
}
