// Package backend defines the wire schemas of the SocialFlow REST API and
// validates them at the boundary, so nothing downstream handles raw JSON.
package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SchemaError reports a payload that does not satisfy its schema
type SchemaError struct {
	Schema string
	Fields []string
	Err    error
}

func (e *SchemaError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid %s: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Schema, strings.Join(e.Fields, ", "))
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Validate checks v against its validate tags
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	schema := fmt.Sprintf("%T", v)
	schema = strings.TrimPrefix(strings.TrimPrefix(schema, "*"), "backend.")

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &SchemaError{Schema: schema, Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &SchemaError{Schema: schema, Fields: fields, Err: err}
}

// ID is an identifier the backend sends as either a JSON number or string
type ID string

// UnmarshalJSON accepts 1, "1" and null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier
func (id ID) String() string {
	return string(id)
}

// ErrorBody is the error envelope the backend returns on non-2xx.
// Detail is either a string or a list of validation issues.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationIssue is one entry of a list-shaped detail
type validationIssue struct {
	Msg string `json:"msg"`
}

// Message extracts a human readable message from the envelope
func (b ErrorBody) Message() string {
	if len(b.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}

	var issues []validationIssue
	if err := json.Unmarshal(b.Detail, &issues); err == nil {
		for _, issue := range issues {
			if issue.Msg != "" {
				return issue.Msg
			}
		}
	}
	return ""
}
