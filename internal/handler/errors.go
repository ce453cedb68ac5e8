package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/response"
)

const codeInvalidBody = "INVALID_BODY"

// newValidator returns a validator that checks decimal.Decimal fields by their float value.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// decodeAndValidate reads the JSON body into dst and runs struct validation.
// It writes a 400 and returns false when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, codeInvalidBody, "Request body is not valid JSON")
		return false
	}
	if err := v.Struct(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Request body failed validation", err)
		return false
	}
	return true
}

// writeError maps a service error to an HTTP status. Only validation failures
// carry their own message to the client.
func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	kind := customError.KindOf(err)

	switch kind {
	case customError.KindValidation:
		code := ""
		var appErr *customError.AppError
		if errors.As(err, &appErr) {
			code = appErr.Code
		}
		response.ErrorWithCode(w, http.StatusBadRequest, code, customError.UserMessage(err))
	case customError.KindAuth:
		log.WithError(err).Warn("Request rejected")
		response.ErrorWithCode(w, http.StatusForbidden, "", customError.UserMessage(err))
	default:
		log.WithError(err).WithField("kind", kind).Error("Request failed")
		response.ErrorWithCode(w, http.StatusServiceUnavailable, "", customError.UserMessage(err))
	}
}
