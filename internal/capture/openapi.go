package capture

import "github.com/echomindhq/echomind/pkg/openapi"

type spec struct {
	Create *openapi.Operation
	Show   *openapi.Operation
	Start  *openapi.Operation
	Stop   *openapi.Operation
	Stage  *openapi.Operation
	Cancel *openapi.Operation
	Remove *openapi.Operation
}

// Spec documents the capture session endpoints.
var Spec = spec{
	Create: &openapi.Operation{
		Summary:     "Create capture session",
		Description: "Create a new capture session of the given kind for the requesting actor",
		Parameters: []*openapi.Parameter{
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		RequestBody: openapi.RequestBodyJSON("CreateCaptureCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Session created", "CaptureSession"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Show: &openapi.Operation{
		Summary:     "Show capture session",
		Description: "Show a capture session owned by the requesting actor",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session details", "CaptureSession"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Start: &openapi.Operation{
		Summary:     "Start recording",
		Description: "Begin live audio recording. Fails when capture permission is not granted or another session is already recording for the actor.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recording started", "CaptureSession"),
			403: {Description: "Capture permission not granted"},
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Stop: &openapi.Operation{
		Summary:     "Stop recording",
		Description: "Push the recorded bytes and stop the session. Recordings under one second or with no bytes roll back to idle.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		RequestBody: &openapi.RequestBody{
			Description: "Recorded audio as a multipart file field or raw body",
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Description: "Recorded audio bytes"},
						},
					},
				},
				"audio/x-m4a": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recording stopped", "CaptureSession"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			422: {Description: "Nothing recorded"},
		},
	},
	Stage: &openapi.Operation{
		Summary:     "Stage content",
		Description: "Attach an uploaded file (multipart) or pasted transcript text (JSON) to the session. Staging again replaces the previous content.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Description: "File content to stage"},
						},
						Required: []string{"file"},
					},
				},
				"application/json": {Schema: openapi.SchemaRef("StageTextCommand")},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Content staged", "CaptureSession"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			422: {Description: "No content staged"},
		},
	},
	Cancel: &openapi.Operation{
		Summary:     "Cancel session",
		Description: "Cancel the session and release its payload. Valid from any non-terminal state.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session cancelled", "CaptureSession"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Remove: &openapi.Operation{
		Summary:     "Remove session",
		Description: "Remove a finalized or cancelled session from the registry",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(ActorHeader, "Requesting actor identity", true),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Session removed"},
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"CaptureSession": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"actor_id":     {Type: "string", Description: "Owning actor"},
				"kind":         {Type: "string", Description: "live_audio, file_upload, or pasted_text"},
				"state":        {Type: "string", Description: "Lifecycle state"},
				"content_type": {Type: "string", Description: "MIME type of the captured content"},
				"started_at":   {Type: "string", Format: "date-time"},
				"ended_at":     {Type: "string", Format: "date-time"},
			},
		},
		"CreateCaptureCommand": {
			Type:     "object",
			Required: []string{"kind"},
			Properties: map[string]*openapi.Schema{
				"kind": {Type: "string", Description: "live_audio, file_upload, or pasted_text"},
			},
		},
		"StageTextCommand": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text": {Type: "string", Description: "Pasted transcript text"},
			},
		},
	}
}
