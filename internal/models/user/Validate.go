package user

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks a submitted user object against the allowed field set.
// The allowed set is {email, password} when passwordRequired is true and
// {email} otherwise. It returns an ordered list of human-readable problems;
// an empty list means the object is valid.
//
// Order matters: the aggregated disallowed-fields entry comes first, then the
// missing-password entry, then the missing-email entry. Formatting the list
// into a single response message is left to the HTTP boundary.
func Validate(fields map[string]interface{}, passwordRequired bool) []string {
	allowed := map[string]bool{"email": true}
	if passwordRequired {
		allowed["password"] = true
	}

	var invalid []string
	for key := range fields {
		if !allowed[key] {
			invalid = append(invalid, key)
		}
	}
	// Map iteration order is random; keep the message stable.
	sort.Strings(invalid)

	var errorList []string
	if len(invalid) > 0 {
		errorList = append(errorList, fmt.Sprintf(
			"The following properties are not allowed to be set: %s",
			strings.Join(invalid, ", "),
		))
	}

	if passwordRequired && isNull(fields, "password") {
		errorList = append(errorList, "password is a required field")
	}
	if isNull(fields, "email") {
		errorList = append(errorList, "email is a required field")
	}

	return errorList
}

// isNull reports whether the field is absent or explicitly null.
func isNull(fields map[string]interface{}, key string) bool {
	v, ok := fields[key]
	return !ok || v == nil
}

// StringField extracts a string-typed field from a submitted user object.
// Non-string values come back as the empty string.
func StringField(fields map[string]interface{}, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
