// This file contains the body parsing and validation helpers for incoming http requests.
//
// Every mutating endpoint receives its input wrapped in a `user` object. The allowlist check
// needs to see the raw field names, so the body is first decoded into a map; the typed request
// structs in internal/common are only built (and schema-validated) once that check has passed.

package web

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParseUserObject extracts the `user` object from the request body as a raw
// field map. Anything that is not a JSON object under the `user` key is an
// error; the message echoes what was received, matching the API contract.
func ParseUserObject(c *fiber.Ctx) (map[string]interface{}, error) {
	received := "null"

	var body struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(c.Body(), &body); err == nil && len(body.User) > 0 {
		received = string(body.User)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body.User, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("Provide a 'user' object. Received: %s", received)
	}

	return fields, nil
}

// ValidateRequest runs the schema-level constraints (required values, minimum
// password length) declared on the request structs in internal/common.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// ValidationErrorMessage formats the validator's error list into the single
// message string the API responds with. The list itself stays structured up
// to this point so the formatting policy lives in one place.
func ValidationErrorMessage(errorList []string) string {
	return "BAD REQUEST: " + strings.Join(errorList, ", ")
}
