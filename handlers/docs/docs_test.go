package docs

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestOpenAPIJSON(t *testing.T) {
	body, err := OpenAPIJSON()
	if err != nil {
		t.Fatalf("OpenAPIJSON() error = %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Errorf("openapi = %v", doc["openapi"])
	}
	paths, ok := doc["paths"].(map[string]interface{})
	if !ok {
		t.Fatal("paths missing")
	}
	for _, p := range []string{"/api/mentor/materials/upload", "/api/users/{id}", "/api/student/assignments/my-submissions"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("path %s missing", p)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := map[interface{}]interface{}{200: "ok", "nested": []interface{}{map[interface{}]interface{}{true: 1}}}
	out, err := json.Marshal(normalize(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"200":"ok","nested":[{"true":1}]}` {
		t.Errorf("got %s", out)
	}
}

func TestHandlers(t *testing.T) {
	app := fiber.New()
	app.Get("/api/docs", UI)
	app.Get("/api/docs/openapi.json", Spec)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/docs/openapi.json", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != fiber.MIMEApplicationJSONCharsetUTF8 {
		t.Errorf("content type = %q", ct)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/docs", nil))
	if err != nil {
		t.Fatal(err)
	}
	page, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || len(page) == 0 {
		t.Errorf("ui status = %d, len = %d", resp.StatusCode, len(page))
	}
}
