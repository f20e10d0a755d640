package meetings

import "github.com/echomindhq/echomind/pkg/openapi"

type spec struct {
	List  *openapi.Operation
	Count *openapi.Operation
	Find  *openapi.Operation
}

// Spec documents the meeting registry endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List meetings",
		Description: "List registered meetings with pagination and optional filters, newest first by default",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in title and summary", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields, '-' prefix for descending", false),
			openapi.QueryParam("kind", "string", "Filter by capture kind", false),
			openapi.QueryParam("is_completed", "boolean", "Filter by completion flag", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Meetings page", "MeetingPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Count: &openapi.Operation{
		Summary:     "Count meetings",
		Description: "Total number of registered meetings",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Meeting count", "MeetingCount"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find meeting",
		Description: "Find a meeting by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Meeting ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Meeting details", "Meeting"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Meeting": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"title":        {Type: "string"},
				"summary":      {Type: "string", Description: "Optional summary"},
				"kind":         {Type: "string", Description: "Capture kind the meeting originated from"},
				"locator":      {Type: "string", Description: "Blob store key for payloads stored out of row"},
				"transcript":   {Type: "string", Description: "Inline transcript for short pasted text"},
				"content_type": {Type: "string", Description: "MIME type of the captured content"},
				"size_bytes":   {Type: "integer", Format: "int64", Description: "Payload size in bytes"},
				"is_completed": {Type: "boolean"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"MeetingPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Meeting")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"MeetingCount": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"count": {Type: "integer"},
			},
		},
	}
}
