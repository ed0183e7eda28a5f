// Package schemas holds the JSON Schema documents for files read by the CLI.
package schemas

import _ "embed"

// Seed is the schema of the in-memory store seed file.
//
//go:embed seed.schema.json
var Seed string
