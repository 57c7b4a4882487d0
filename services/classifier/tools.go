package classifier

import (
	"github.com/jacksandom/unitmapper/models"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
)

const assignCategoryToolName = "assign_category"

// AssignCategoryParams is the single argument payload the classification tool
// accepts. The category value is constrained to the canonical enum, so the
// serving layer rejects anything outside the set.
type AssignCategoryParams struct {
	Category string `json:"category" jsonschema:"required,description=The canonical category that best matches the delivery unit label"`
}

func assignCategorySchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(AssignCategoryParams{})

	// The closed enum cannot be expressed as a struct tag; inject it after
	// reflection.
	if prop, ok := schema.Properties.Get("category"); ok {
		prop.Enum = lo.ToAnySlice(models.CanonicalCategories)
	}

	return schema
}

func assignCategoryTools() []llms.Tool {
	schema := assignCategorySchema()

	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        assignCategoryToolName,
				Description: "Assign the single canonical category that best matches a free-text delivery unit label",
				Parameters: map[string]any{
					"type":       "object",
					"properties": schema.Properties,
					"required":   schema.Required,
				},
			},
		},
	}
}
