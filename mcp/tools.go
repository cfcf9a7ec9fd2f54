package mcp

// ToolDefinition describes a tool for the client's tools/list response.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// GetToolDefinitions returns the tools this server exposes: just
// render_template, the one operation this domain needs an agent to reach
// without shelling out to the CLI.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "render_template",
			Description: "Render quasiquote template source to a target language, substituting the given variables",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"language": map[string]any{
						"type":        "string",
						"description": "Target language adapter name (go, rust, java, kotlin, csharp, dart, javascript, c, python)",
					},
					"source": map[string]any{
						"type":        "string",
						"description": "Template source text",
					},
					"variables": map[string]any{
						"type":        "object",
						"description": "Flat map of variable name to string value for $name/$(expr) interpolations",
					},
					"indent": map[string]any{
						"type":        "string",
						"description": "Override the adapter's default indent unit",
					},
					"line_ending": map[string]any{
						"type":        "string",
						"description": "Override the adapter's default line ending",
					},
				},
				"required": []string{"language", "source"},
			},
		},
	}
}
