// Package docs carries the OpenAPI document served at /swagger.json.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
