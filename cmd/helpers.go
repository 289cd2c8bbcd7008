package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/validator"
)

func (app *application) readJSON(c *gin.Context, dst any) error {
	const maxBytes = 1_048_576 // 1 MB
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {

		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			invalidUnmarshalError *json.InvalidUnmarshalError
			maxBytesError         *http.MaxBytesError
		)

		switch {
		case errors.As(err, &syntaxError):
			return xerrors.Newf("body contains badly-formed JSON at (character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return xerrors.Newf("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return xerrors.Newf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return xerrors.Newf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return xerrors.Newf("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return xerrors.Newf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return xerrors.Newf("body must not be larger than %d bytes", maxBytes)

		case errors.As(err, &invalidUnmarshalError):
			return xerrors.Newf("programmer error: invalid unmarshal target: %w", err)

		default:
			return xerrors.Newf("error decoding JSON: %w", err)
		}
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return xerrors.New("body must contain only a single JSON value")
	}

	return nil
}

// decodeBody reads the body into dst and answers 400 on failure. It reports
// whether the handler may continue.
func (app *application) decodeBody(c *gin.Context, dst any) bool {
	if err := app.readJSON(c, dst); err != nil {
		app.badRequestResponse(c, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return false
	}
	return true
}

// pathID reads and validates a UUID path parameter.
func (app *application) pathID(c *gin.Context, name string, v *validator.Validator) string {
	id := c.Param(name)
	checkID(v, id, name)
	return id
}

func (app *application) readString(c *gin.Context, key, defaultValue string) string {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return defaultValue
	}
	return s
}

func (app *application) readInt(c *gin.Context, key string, defaultValue int, v *validator.Validator) int {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

func (app *application) readBool(c *gin.Context, key string, defaultValue bool, v *validator.Validator) bool {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		v.AddError(key, "must be a boolean value")
		return defaultValue
	}
	return b
}
