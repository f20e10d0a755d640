package ingest

import (
	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/pkg/openapi"
)

type spec struct {
	Submit *openapi.Operation
}

// Spec documents the submission endpoint.
var Spec = spec{
	Submit: &openapi.Operation{
		Summary:     "Submit capture for ingestion",
		Description: "Run the ingestion pipeline for a stopped or staged session: validate, persist the payload, and register the meeting. Failures report the pipeline phase; the session remains retryable.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session ID"),
			openapi.HeaderParam(capture.ActorHeader, "Requesting actor identity", true),
		},
		RequestBody: openapi.RequestBodyJSON("IngestRequest", false),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Meeting registered", "Meeting"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			413: {Description: "Payload exceeds the upload size limit"},
			415: {Description: "Unsupported content type"},
			422: openapi.ResponseJSON("Payload rejected by validation", "IngestFailure"),
			503: openapi.ResponseJSON("Storage or registry unavailable", "IngestFailure"),
			507: openapi.ResponseJSON("Blob store out of space", "IngestFailure"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"IngestRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":   {Type: "string", Description: "Meeting title (defaults to a timestamped name)"},
				"summary": {Type: "string", Description: "Optional meeting summary"},
			},
		},
		"IngestFailure": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error":       {Type: "string", Description: "Failure message"},
				"phase":       {Type: "string", Description: "Pipeline phase: validate, upload, or register"},
				"orphan_blob": {Type: "boolean", Description: "True when a stored blob could not be cleaned up"},
			},
		},
	}
}
