package openapi

// NewComponents creates the shared component registry seeded with the
// error shape every handler responds with and the responses built on it.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Human-readable error message"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": ResponseJSON("Malformed request", "Error"),
			"NotFound":   ResponseJSON("Resource not found", "Error"),
			"Conflict":   ResponseJSON("Conflicting state", "Error"),
		},
	}
}

// AddSchemas merges module schemas into the registry.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges module responses into the registry.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}
