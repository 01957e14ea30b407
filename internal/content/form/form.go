// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package form manages profile forms and the responses visitors submit to them.

Responses are keyed by form id only. Deleting a form leaves its responses in
place; they are no longer reachable through the API.
*/
package form

import (
	"fmt"
	"maps"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// FieldType selects the input control and the answer check.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldPhone    FieldType = "phone"
	FieldURL      FieldType = "url"
)

// FieldTypes lists every accepted field type.
var FieldTypes = []string{
	string(FieldText), string(FieldEmail), string(FieldTextarea), string(FieldNumber),
	string(FieldSelect), string(FieldCheckbox), string(FieldPhone), string(FieldURL),
}

const (
	resourceForm      = "Form"
	maxTitleLength    = 100
	maxDescription    = 500
	maxFields         = 50
	maxLabelLength    = 100
	maxAnswerLength   = 5000
	maxOptionsPerList = 50
)

// Field is one input of a form.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Form is a visitor-facing form on a profile.
type Form struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Fields      []Field   `json:"fields"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	copied := *f
	copied.Fields = make([]Field, len(f.Fields))
	for index, field := range f.Fields {
		field.Options = slices.Clone(field.Options)
		copied.Fields[index] = field
	}
	return &copied
}

// Response is one submission to a form.
type Response struct {
	ID        string            `json:"id"`
	FormID    string            `json:"formId"`
	OwnerID   string            `json:"-"`
	Answers   map[string]string `json:"answers"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	copied := *r
	copied.Answers = maps.Clone(r.Answers)
	return &copied
}

// normalizeFields trims labels and assigns ids to new fields.
func normalizeFields(fields []Field) []Field {
	normalized := make([]Field, len(fields))
	for index, field := range fields {
		field.Label = strings.TrimSpace(field.Label)
		field.ID = strings.TrimSpace(field.ID)
		if field.ID == "" {
			field.ID = uuid.New()
		}
		if field.Type == "" {
			field.Type = FieldText
		}
		normalized[index] = field
	}
	return normalized
}

// validateForm checks the definition of a form.
func validateForm(title, description string, fields []Field) error {
	v := &validate.Validator{}
	v.Required("title", title).
		MaxLen("title", title, maxTitleLength).
		MaxLen("description", description, maxDescription).
		Custom("fields", len(fields) == 0, "At least one field is required").
		Custom("fields", len(fields) > maxFields, fmt.Sprintf("Maximum %d fields", maxFields))

	seen := make(map[string]struct{}, len(fields))
	for index, field := range fields {
		prefix := fmt.Sprintf("fields[%d].", index)
		v.Required(prefix+"label", field.Label).
			MaxLen(prefix+"label", field.Label, maxLabelLength).
			OneOf(prefix+"type", string(field.Type), FieldTypes...).
			Custom(prefix+"options", field.Type == FieldSelect && len(field.Options) == 0, "Select fields need options").
			Custom(prefix+"options", len(field.Options) > maxOptionsPerList, fmt.Sprintf("Maximum %d options", maxOptionsPerList))

		_, duplicate := seen[field.ID]
		v.Custom(prefix+"id", duplicate, "Field ids must be unique")
		seen[field.ID] = struct{}{}
	}
	return v.Err()
}

// CheckAnswers validates a submission against the form and returns the answers
// restricted to known fields.
func (f *Form) CheckAnswers(answers map[string]string) (map[string]string, error) {
	v := &validate.Validator{}
	accepted := make(map[string]string, len(f.Fields))

	for _, field := range f.Fields {
		value := strings.TrimSpace(answers[field.ID])
		if value == "" {
			v.Custom(field.ID, field.Required, "This field is required")
			continue
		}

		v.MaxLen(field.ID, value, maxAnswerLength)
		switch field.Type {
		case FieldEmail:
			_, err := mail.ParseAddress(value)
			v.Custom(field.ID, err != nil, "Must be a valid email address")
		case FieldNumber:
			_, err := strconv.ParseFloat(value, 64)
			v.Custom(field.ID, err != nil, "Must be a number")
		case FieldURL:
			parsed, err := url.Parse(value)
			v.Custom(field.ID, err != nil || parsed.Host == "", "Must be a valid URL")
		case FieldSelect:
			v.Custom(field.ID, !slices.Contains(field.Options, value), "Must be one of the options")
		case FieldCheckbox:
			_, err := strconv.ParseBool(value)
			v.Custom(field.ID, err != nil, "Must be true or false")
			if field.Required && value != "true" {
				v.Custom(field.ID, true, "This field is required")
			}
		}
		accepted[field.ID] = value
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	return accepted, nil
}
