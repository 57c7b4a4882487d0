package classifier

import (
	"slices"
	"testing"

	"github.com/jacksandom/unitmapper/models"
)

func TestAssignCategorySchemaCarriesEnum(t *testing.T) {
	schema := assignCategorySchema()

	prop, ok := schema.Properties.Get("category")
	if !ok {
		t.Fatal("schema is missing the category property")
	}

	if len(prop.Enum) != len(models.CanonicalCategories) {
		t.Fatalf("enum has %d values, expected %d", len(prop.Enum), len(models.CanonicalCategories))
	}

	for i, value := range prop.Enum {
		if value != models.CanonicalCategories[i] {
			t.Errorf("enum[%d] = %v, expected %q", i, value, models.CanonicalCategories[i])
		}
	}

	if !slices.Contains(schema.Required, "category") {
		t.Error("category property should be required")
	}
}

func TestAssignCategoryTools(t *testing.T) {
	tools := assignCategoryTools()

	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}

	tool := tools[0]
	if tool.Type != "function" {
		t.Errorf("tool type = %q, expected %q", tool.Type, "function")
	}
	if tool.Function.Name != assignCategoryToolName {
		t.Errorf("tool name = %q, expected %q", tool.Function.Name, assignCategoryToolName)
	}

	params, ok := tool.Function.Parameters.(map[string]any)
	if !ok {
		t.Fatalf("expected parameter map, got %T", tool.Function.Parameters)
	}
	if params["type"] != "object" {
		t.Errorf("parameter type = %v, expected object", params["type"])
	}

	required, ok := params["required"].([]string)
	if !ok || !slices.Contains(required, "category") {
		t.Errorf("expected required to contain category, got %v", params["required"])
	}
}
