// Package contracts describes the response shapes the Bragboard backend
// serves, with sample payloads that follow them.
//
// Client tests replay the samples through httptest servers, so a field the
// backend renames shows up here first instead of as an empty dashboard.
package contracts

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Kind is the JSON type a field carries.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Array   Kind = "array"
	Object  Kind = "object"
)

// Field is one property of a response schema.
type Field struct {
	Kind     Kind
	Required bool
	Nullable bool
}

// Schema is a backend response model.
type Schema struct {
	Name   string
	Fields map[string]Field
}

// Schemas are the backend response models bragboard reads.
var Schemas = map[string]Schema{
	"ShoutOutOut": {
		Name: "ShoutOutOut",
		Fields: map[string]Field{
			"id":                {Kind: Number, Required: true},
			"author_id":         {Kind: Number, Required: true},
			"author_name":       {Kind: String, Required: true},
			"message":           {Kind: String, Required: true},
			"image_url":         {Kind: String, Nullable: true},
			"created_at":        {Kind: String, Nullable: true},
			"tagged_users":      {Kind: Array},
			"tagged_user_names": {Kind: Array},
			"reactions":         {Kind: Object},
			"comments_count":    {Kind: Number},
			"is_reported":       {Kind: Boolean},
		},
	},
	"CommentOut": {
		Name: "CommentOut",
		Fields: map[string]Field{
			"id":         {Kind: Number, Required: true},
			"content":    {Kind: String, Required: true},
			"created_at": {Kind: String, Nullable: true},
			"user_id":    {Kind: Number, Required: true},
			"user_name":  {Kind: String, Nullable: true},
		},
	},
	"UserOut": {
		Name: "UserOut",
		Fields: map[string]Field{
			"id":                 {Kind: Number, Required: true},
			"username":           {Kind: String, Required: true},
			"name":               {Kind: String, Nullable: true},
			"email":              {Kind: String, Required: true},
			"role":               {Kind: String, Required: true},
			"department":         {Kind: String, Nullable: true},
			"is_active":          {Kind: Boolean, Nullable: true},
			"joining_date":       {Kind: String, Nullable: true},
			"current_project":    {Kind: String, Nullable: true},
			"group_members":      {Kind: String, Nullable: true},
			"appreciation_score": {Kind: Number, Nullable: true},
		},
	},
	"MetricsOut": {
		Name: "MetricsOut",
		Fields: map[string]Field{
			"shoutouts_given":    {Kind: Number, Required: true},
			"shoutouts_received": {Kind: Number, Required: true},
			"comments_made":      {Kind: Number, Required: true},
			"recent":             {Kind: Array, Required: true},
		},
	},
	"EmployeeOfMonthOut": {
		Name: "EmployeeOfMonthOut",
		Fields: map[string]Field{
			"id":          {Kind: Number, Required: true},
			"employee_id": {Kind: Number, Required: true},
			"name":        {Kind: String, Required: true},
			"department":  {Kind: String, Nullable: true},
			"created_at":  {Kind: String, Required: true},
			"month_year":  {Kind: String, Nullable: true},
		},
	},
	"NotificationOut": {
		Name: "NotificationOut",
		Fields: map[string]Field{
			"id":         {Kind: Number, Required: true},
			"message":    {Kind: String, Required: true},
			"created_at": {Kind: String, Nullable: true},
		},
	},
	"Token": {
		Name: "Token",
		Fields: map[string]Field{
			"access_token":  {Kind: String, Required: true},
			"refresh_token": {Kind: String, Required: true},
			"token_type":    {Kind: String},
		},
	},
}

// Sample payloads, one per schema (lists where the endpoint returns one).
const (
	FeedContract = `[
	{
		"id": 12,
		"author_id": 3,
		"author_name": "Asha Rao",
		"message": "Thanks for shipping the release over the weekend!",
		"image_url": "uploads/release.png",
		"created_at": "2025-03-14T09:30:00",
		"tagged_users": [5, 6],
		"tagged_user_names": ["Ben Ortiz", "Cy Lee"],
		"reactions": {"🎉": 4, "👏": 1},
		"comments_count": 2,
		"is_reported": false
	},
	{
		"id": 11,
		"author_id": 5,
		"author_name": "Ben Ortiz",
		"message": "Great onboarding docs",
		"image_url": null,
		"created_at": null,
		"tagged_users": [],
		"tagged_user_names": [],
		"reactions": {},
		"comments_count": 0
	}
]`

	CommentsContract = `[
	{"id": 1, "content": "Well deserved", "created_at": "2025-03-14T10:00:00", "user_id": 5, "user_name": "Ben Ortiz"}
]`

	UserContract = `{
	"id": 3,
	"username": "asha",
	"name": "Asha Rao",
	"email": "asha@example.com",
	"role": "employee",
	"department": "Platform",
	"is_active": true,
	"joining_date": null,
	"current_project": null,
	"group_members": null,
	"appreciation_score": 17
}`

	MetricsContract = `{
	"shoutouts_given": 4,
	"shoutouts_received": 9,
	"comments_made": 2,
	"recent": []
}`

	EmployeeOfMonthContract = `{
	"id": 1,
	"employee_id": 5,
	"name": "Ben Ortiz",
	"department": "Ops",
	"created_at": "2025-03-01T08:00:00",
	"month_year": "2025-03"
}`

	NotificationsContract = `[
	{"id": 7, "message": "Town hall at 4pm", "created_at": "2025-03-14T08:00:00"}
]`

	TokenContract = `{
	"access_token": "eyJhbGciOiJIUzI1NiJ9.test",
	"refresh_token": "eyJhbGciOiJIUzI1NiJ9.refresh",
	"token_type": "bearer"
}`
)

// Validate checks a payload against the named schema. A JSON array is
// validated item by item. Unknown fields, missing required fields and
// mistyped values are all reported.
func Validate(schemaName string, payload []byte) error {
	schema, ok := Schemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", schemaName, err)
	}

	if items, ok := doc.([]any); ok {
		for i, item := range items {
			if err := schema.check(item); err != nil {
				return fmt.Errorf("%s[%d]: %w", schemaName, i, err)
			}
		}
		return nil
	}
	if err := schema.check(doc); err != nil {
		return fmt.Errorf("%s: %w", schemaName, err)
	}
	return nil
}

func (s Schema) check(doc any) error {
	obj, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("expected an object, got %s", kindOf(doc))
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		field, known := s.Fields[k]
		if !known {
			return fmt.Errorf("field %q is not in the schema", k)
		}
		v := obj[k]
		if v == nil {
			if !field.Nullable {
				return fmt.Errorf("field %q must not be null", k)
			}
			continue
		}
		if got := kindOf(v); got != field.Kind {
			return fmt.Errorf("field %q should be %s, got %s", k, field.Kind, got)
		}
	}

	for name, field := range s.Fields {
		if _, present := obj[name]; field.Required && !present {
			return fmt.Errorf("required field %q is missing", name)
		}
	}
	return nil
}

func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return String
	case float64:
		return Number
	case bool:
		return Boolean
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return "null"
	}
}
