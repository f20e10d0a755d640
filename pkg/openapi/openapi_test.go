package openapi_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/echomindhq/echomind/pkg/openapi"
)

func TestNewComponents(t *testing.T) {
	components := openapi.NewComponents()

	if components.Schemas == nil {
		t.Fatal("Schemas map is nil")
	}
	if components.Responses == nil {
		t.Fatal("Responses map is nil")
	}

	if _, ok := components.Schemas["Error"]; !ok {
		t.Error("missing required schema: Error")
	}

	requiredResponses := []string{"BadRequest", "NotFound", "Conflict"}
	for _, name := range requiredResponses {
		if _, ok := components.Responses[name]; !ok {
			t.Errorf("missing required response: %s", name)
		}
	}
}

func TestAddSchemas(t *testing.T) {
	components := openapi.NewComponents()

	newSchemas := map[string]*openapi.Schema{
		"Meeting": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":    {Type: "string", Format: "uuid"},
				"title": {Type: "string"},
			},
		},
		"CaptureSession": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"state": {Type: "string"},
			},
		},
	}

	components.AddSchemas(newSchemas)

	for name := range newSchemas {
		if _, ok := components.Schemas[name]; !ok {
			t.Errorf("schema %q not added", name)
		}
	}

	if _, ok := components.Schemas["Error"]; !ok {
		t.Error("original Error schema was overwritten")
	}
}

func TestAddResponses(t *testing.T) {
	components := openapi.NewComponents()

	newResponses := map[string]*openapi.Response{
		"PayloadTooLarge": {
			Description: "Payload exceeds the upload limit",
		},
	}

	components.AddResponses(newResponses)

	if _, ok := components.Responses["PayloadTooLarge"]; !ok {
		t.Error("response PayloadTooLarge not added")
	}
	if _, ok := components.Responses["BadRequest"]; !ok {
		t.Error("original BadRequest response was overwritten")
	}
}

func TestMarshalJSON(t *testing.T) {
	spec := &openapi.Spec{
		OpenAPI: "3.1.0",
		Info: &openapi.Info{
			Title:   "Test API",
			Version: "1.0.0",
		},
		Paths: map[string]*openapi.PathItem{
			"/meetings": {
				Get: &openapi.Operation{
					Summary: "List meetings",
					Responses: map[int]*openapi.Response{
						200: {Description: "Success"},
					},
				},
			},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if result["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v, want 3.1.0", result["openapi"])
	}

	info, ok := result["info"].(map[string]any)
	if !ok {
		t.Fatal("info is not an object")
	}
	if info["title"] != "Test API" {
		t.Errorf("info.title = %v, want Test API", info["title"])
	}
}

func TestWriteJSON(t *testing.T) {
	spec := &openapi.Spec{
		OpenAPI: "3.1.0",
		Info: &openapi.Info{
			Title:   "Test API",
			Version: "1.0.0",
		},
		Paths: make(map[string]*openapi.PathItem),
	}

	filePath := filepath.Join(t.TempDir(), "openapi.json")

	if err := openapi.WriteJSON(spec, filePath); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if result["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v, want 3.1.0", result["openapi"])
	}
}

func TestWriteJSON_InvalidPath(t *testing.T) {
	spec := &openapi.Spec{
		OpenAPI: "3.1.0",
		Info:    &openapi.Info{Title: "Test API", Version: "1.0.0"},
		Paths:   make(map[string]*openapi.PathItem),
	}

	if err := openapi.WriteJSON(spec, "/nonexistent/directory/openapi.json"); err == nil {
		t.Error("WriteJSON() expected error for invalid path, got nil")
	}
}

func TestSchemaRef(t *testing.T) {
	ref := openapi.SchemaRef("Meeting")
	if ref.Ref != "#/components/schemas/Meeting" {
		t.Errorf("Ref = %q, want #/components/schemas/Meeting", ref.Ref)
	}
}

func TestResponseRef(t *testing.T) {
	ref := openapi.ResponseRef("NotFound")
	if ref.Ref != "#/components/responses/NotFound" {
		t.Errorf("Ref = %q, want #/components/responses/NotFound", ref.Ref)
	}
}

func TestRequestBodyJSON(t *testing.T) {
	body := openapi.RequestBodyJSON("IngestRequest", true)
	if !body.Required {
		t.Error("Required = false, want true")
	}
	media, ok := body.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content")
	}
	if media.Schema.Ref != "#/components/schemas/IngestRequest" {
		t.Errorf("Schema.Ref = %q, want IngestRequest ref", media.Schema.Ref)
	}
}

func TestPathParam(t *testing.T) {
	p := openapi.PathParam("id", "Meeting ID")
	if p.In != "path" || !p.Required {
		t.Errorf("PathParam() = {In: %q, Required: %v}, want required path param", p.In, p.Required)
	}
	if p.Schema.Format != "uuid" {
		t.Errorf("Schema.Format = %q, want uuid", p.Schema.Format)
	}
}

func TestHeaderParam(t *testing.T) {
	p := openapi.HeaderParam("X-Actor-Id", "Requesting actor identity", true)
	if p.In != "header" || !p.Required {
		t.Errorf("HeaderParam() = {In: %q, Required: %v}, want required header param", p.In, p.Required)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Title != "EchoMind API" {
		t.Errorf("Title = %q, want EchoMind API", cfg.Title)
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want 0.1.0", cfg.Version)
	}
	if cfg.Description == "" {
		t.Error("Description is empty after Finalize()")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := openapi.Config{Title: "EchoMind API", Version: "0.1.0"}
	overlay := openapi.Config{Version: "1.2.0"}

	base.Merge(&overlay)

	if base.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", base.Version)
	}
	if base.Title != "EchoMind API" {
		t.Errorf("Title = %q, want unchanged EchoMind API", base.Title)
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Staging API")

	cfg := openapi.Config{}
	env := &openapi.Env{Title: "TEST_OPENAPI_TITLE"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Title != "Staging API" {
		t.Errorf("Title = %q, want Staging API", cfg.Title)
	}
}
