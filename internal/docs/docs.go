// Package docs holds the Swagger 2.0 document served under /docs.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON []byte

type document struct{}

// ReadDoc implements swag.Swagger
func (document) ReadDoc() string {
	return string(swaggerJSON)
}

func init() {
	swag.Register(swag.Name, document{})
}

// JSON returns the raw embedded document.
func JSON() []byte {
	return swaggerJSON
}

// Spec parses the embedded document.
func Spec() (*spec.Swagger, error) {
	var s spec.Swagger
	if err := json.Unmarshal(swaggerJSON, &s); err != nil {
		return nil, fmt.Errorf("parse swagger document: %w", err)
	}
	return &s, nil
}

// Operation returns the documented operation for method and path, or nil.
// Paths use the Swagger template form, e.g. /users/{id}.
func Operation(s *spec.Swagger, method, path string) *spec.Operation {
	if s == nil || s.Paths == nil {
		return nil
	}
	item, ok := s.Paths.Paths[path]
	if !ok {
		return nil
	}

	switch method {
	case "GET":
		return item.Get
	case "POST":
		return item.Post
	case "PUT":
		return item.Put
	case "DELETE":
		return item.Delete
	case "PATCH":
		return item.Patch
	}
	return nil
}
