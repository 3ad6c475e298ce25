package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	chat_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	locBody  = "body"
	locQuery = "query"
)

var registerValidators sync.Once

// RegisterValidators makes validation errors report the json/form name of a
// field instead of the Go struct field name, and adds the notblank and
// maxbytes tags used by the request DTOs.
func RegisterValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("maxbytes", maxBytes)
	})
}

// maxBytes limits a string's length in bytes. The built-in max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// writeBindError answers 422 with one item per rejected field.
func writeBindError(c *gin.Context, err error, loc string) {
	c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(validationDetail(err, loc), "VALIDATION_ERROR"))
}

func validationDetail(err error, loc string) []httpdto.ValidationErrorItem {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		items := make([]httpdto.ValidationErrorItem, 0, len(verrs))
		for _, fe := range verrs {
			items = append(items, httpdto.ValidationErrorItem{
				Loc:  []string{loc, fe.Field()},
				Msg:  validationMessage(fe),
				Type: "value_error." + fe.Tag(),
			})
		}
		return items
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []httpdto.ValidationErrorItem{{
			Loc:  []string{loc, typeErr.Field},
			Msg:  fmt.Sprintf("expected %s", typeErr.Type.String()),
			Type: "type_error",
		}}
	}

	return []httpdto.ValidationErrorItem{{
		Loc:  []string{loc},
		Msg:  err.Error(),
		Type: "value_error",
	}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return "ensure this value has at most " + fe.Param() + " characters"
	case "min":
		return "ensure this value is greater than or equal to " + fe.Param()
	case "maxbytes":
		return "ensure this value has at most " + fe.Param() + " bytes"
	case "notblank":
		return "field must not be blank"
	case "eq":
		return "value must be '" + fe.Param() + "'"
	default:
		return fe.Error()
	}
}

// writeError answers with the status mapped from err. Errors without a
// client-facing meaning go through c.Error so ErrorHandler logs them.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	switch {
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		c.Abort()
	case errors.Is(err, chat_errors.ErrInvalidInput):
		c.JSON(status, httpdto.NewErrorResponse([]httpdto.ValidationErrorItem{{
			Loc:  []string{locBody},
			Msg:  err.Error(),
			Type: "value_error",
		}}, errorCode(status)))
	case errors.Is(err, chat_errors.ErrEmailTaken):
		c.JSON(status, httpdto.NewErrorResponse("Email already registered", errorCode(status)))
	case errors.Is(err, chat_errors.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(status, httpdto.NewErrorResponse("Incorrect username or password", errorCode(status)))
	case status == http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(status, httpdto.NewErrorResponse("Could not validate credentials", errorCode(status)))
	default:
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), errorCode(status)))
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "CONFLICT"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}
