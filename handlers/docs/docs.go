package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	specOnce sync.Once
	specJSON []byte
	specErr  error
)

// OpenAPIJSON converts the embedded YAML document to JSON once
func OpenAPIJSON() ([]byte, error) {
	specOnce.Do(func() {
		var doc interface{}
		if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
			specErr = fmt.Errorf("parse openapi.yaml: %w", err)
			return
		}
		specJSON, specErr = json.Marshal(normalize(doc))
	})
	return specJSON, specErr
}

// normalize turns YAML maps with non-string keys into JSON-encodable ones
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// Spec handles GET /api/docs/openapi.json
func Spec(c *fiber.Ctx) error {
	body, err := OpenAPIJSON()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(body)
}

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
  <title>Online LMS API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => { window.ui = SwaggerUIBundle({ url: "/api/docs/openapi.json", dom_id: "#swagger-ui" }); };
  </script>
</body>
</html>`

// UI handles GET /api/docs
func UI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(swaggerPage)
}
