package llm

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return Object("root",
		Prop("title", String("the title")),
		Prop("tags", ArrayOf(String(""), "list of tags")),
		Prop("items", ArrayOf(Object("",
			Prop("name", String("")),
			Prop("value", String("")),
		), "")),
	)
}

func TestObject_AllPropertiesRequired(t *testing.T) {
	s := testSchema()

	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, []string{"title", "tags", "items"}, s.PropertyOrder)
	assert.Equal(t, []string{"title", "tags", "items"}, s.Required)
}

func TestSchema_Fields(t *testing.T) {
	assert.Equal(t, []string{
		"items[].name",
		"items[].value",
		"tags[]",
		"title",
	}, testSchema().Fields())
}

func TestSchema_ToGenai(t *testing.T) {
	g := testSchema().ToGenai()

	require.NotNil(t, g)
	assert.Equal(t, genai.TypeObject, g.Type)
	assert.Equal(t, "root", g.Description)
	assert.Equal(t, []string{"title", "tags", "items"}, g.Required)

	require.Contains(t, g.Properties, "title")
	assert.Equal(t, genai.TypeString, g.Properties["title"].Type)
	assert.Equal(t, "the title", g.Properties["title"].Description)

	tags := g.Properties["tags"]
	assert.Equal(t, genai.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, genai.TypeString, tags.Items.Type)

	items := g.Properties["items"]
	require.NotNil(t, items.Items)
	assert.Equal(t, genai.TypeObject, items.Items.Type)
	assert.Len(t, items.Items.Properties, 2)
}

func TestSchema_ToGenai_Nil(t *testing.T) {
	var s *Schema
	assert.Nil(t, s.ToGenai())
}

func TestSchema_JSONSchema(t *testing.T) {
	doc := testSchema().JSONSchema()

	// Round-trip through encoding/json to compare against the wire form
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, false, decoded["additionalProperties"])
	assert.ElementsMatch(t, []any{"title", "tags", "items"}, decoded["required"])

	props := decoded["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, "list of tags", tags["description"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}

func TestSchema_OrderedNamesIncludesUnlistedProperties(t *testing.T) {
	s := Object("", Prop("b", String("")))
	s.Properties["a"] = String("")

	assert.Equal(t, []string{"b", "a"}, s.orderedNames())
	assert.Equal(t, []string{"a", "b"}, s.Fields())
}
