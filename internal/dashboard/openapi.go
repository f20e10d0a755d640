package dashboard

import "github.com/echomindhq/echomind/pkg/openapi"

type spec struct {
	Show    *openapi.Operation
	Refresh *openapi.Operation
}

// Spec documents the dashboard endpoints.
var Spec = spec{
	Show: &openapi.Operation{
		Summary:     "Show dashboard",
		Description: "Current dashboard snapshot. Served from memory without touching the registry.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dashboard snapshot", "DashboardSnapshot"),
		},
	},
	Refresh: &openapi.Operation{
		Summary:     "Refresh dashboard",
		Description: "Rebuild the snapshot from the registry and return it. On failure the previous snapshot stays in place.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Refreshed snapshot", "DashboardSnapshot"),
			503: {Description: "Registry unavailable"},
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DashboardSnapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"meetings":        {Type: "array", Items: openapi.SchemaRef("Meeting")},
				"count":           {Type: "integer", Description: "Total registered meetings"},
				"completed_count": {Type: "integer", Description: "Meetings flagged completed"},
				"estimated_hours": {Type: "number", Description: "Estimated hours saved across all meetings"},
				"refreshed_at":    {Type: "string", Format: "date-time"},
			},
		},
	}
}
