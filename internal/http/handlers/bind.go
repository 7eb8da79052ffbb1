// Request binding helpers.
//
// The body decoder deliberately does not use gin's ShouldBindJSON: the
// dispatcher needs to distinguish an absent body, a body of "{}", broken
// JSON, and field-constraint violations, and gin collapses several of those
// into one binding error. Reading the body once and probing it keeps the
// four cases separable.
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// validate checks `validate` struct tags and reports field names by their
// JSON tag so error detail matches the wire shape.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}()

// decodeJSONBody reads, shape-checks, decodes, and validates a JSON request
// body into dst (a pointer to struct). The returned errors are exactly the
// types the dispatcher classifies:
//
//   - io.EOF for an absent/blank body
//   - *json.SyntaxError / *json.UnmarshalTypeError for broken JSON
//   - ErrEmptyBody for a body of "{}"
//   - validator.ValidationErrors for constraint violations
//   - *bodyReadError when the body cannot be read at all
func decodeJSONBody(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return &bodyReadError{cause: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return io.EOF
	}

	// Probe the object shape before committing to the target struct, so
	// "{}" is detected even when every struct field is optional.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return err
	}
	if len(probe) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// boolQuery parses an optional boolean query parameter, returning def when
// absent. Unparseable values yield a TypeMismatchError naming the
// parameter.
func boolQuery(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &TypeMismatchError{Param: name, Value: raw, Expected: "boolean"}
	}
	return v, nil
}

// requiredQuery fetches a mandatory query parameter, yielding a
// MissingParameterError when absent or blank.
func requiredQuery(c *gin.Context, name string) (string, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return "", &MissingParameterError{Param: name}
	}
	return raw, nil
}
