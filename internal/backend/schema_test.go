package backend

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{`1`, "1"},
		{`42`, "42"},
		{`"abc-1"`, "abc-1"},
		{`null`, ""},
		{`1.5`, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestMeResponse_NumericID(t *testing.T) {
	var me MeResponse
	body := `{"id":1,"email":"a@b.com","name":"A","subscription":"pro"}`
	require.NoError(t, json.Unmarshal([]byte(body), &me))

	assert.Equal(t, ID("1"), me.ID)
	assert.Equal(t, "a@b.com", me.Email)
	assert.Equal(t, "pro", me.Subscription)
	require.NoError(t, Validate(&me))
}

func TestColorList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ColorList
	}{
		{"array", `["#6366F1","#000000"]`, ColorList{"#6366F1", "#000000"}},
		{"comma string", `"#6366F1, #000000"`, ColorList{"#6366F1", "#000000"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ColorList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestContent_NullOptionals(t *testing.T) {
	body := `{"id":7,"platform":"instagram","content_type":"post","body":"hi",
		"image_url":null,"scheduled_date":"2026-10-20T10:00:00","status":"scheduled",
		"created_at":"2026-10-17T09:00:00"}`

	var c Content
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, ID("7"), c.ID)
	assert.Equal(t, "", c.ImageURL)
	assert.Equal(t, "2026-10-20T10:00:00", c.ScheduledDate)
	assert.Equal(t, "scheduled", c.Status)
	require.NoError(t, Validate(&c))
}

func TestErrorBody_Message(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string detail", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"validation list", `{"detail":[{"loc":["body","email"],"msg":"field required"}]}`, "field required"},
		{"missing detail", `{"error":"nope"}`, ""},
		{"null detail", `{"detail":null}`, ""},
		{"object detail", `{"detail":{"code":1}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ErrorBody
			require.NoError(t, json.Unmarshal([]byte(tt.input), &body))
			assert.Equal(t, tt.want, body.Message())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid login", func(t *testing.T) {
		assert.NoError(t, Validate(&LoginRequest{Email: "a@b.com", Password: "x"}))
	})

	t.Run("invalid login", func(t *testing.T) {
		err := Validate(&LoginRequest{Email: "not-an-email"})
		require.Error(t, err)

		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "LoginRequest", schemaErr.Schema)
		assert.Contains(t, schemaErr.Fields, "Email (email)")
		assert.Contains(t, schemaErr.Fields, "Password (required)")
	})

	t.Run("missing generated content", func(t *testing.T) {
		assert.Error(t, Validate(&GenerateContentResponse{}))
		assert.Error(t, Validate(&GenerateContentResponse{Content: []string{""}}))
		assert.NoError(t, Validate(&GenerateContentResponse{Content: []string{"a", "b"}}))
	})

	t.Run("free plan is not payable", func(t *testing.T) {
		assert.Error(t, Validate(&STKPushRequest{Phone: "254712345678", Amount: 0, Plan: "free"}))
		assert.NoError(t, Validate(&STKPushRequest{Phone: "254712345678", Amount: 2500, Plan: "pro"}))
	})

	t.Run("unknown platform", func(t *testing.T) {
		err := Validate(&GenerateContentRequest{Platform: "myspace", ContentType: "post", Tone: "Casual", Topic: "x"})
		assert.Error(t, err)
	})
}
