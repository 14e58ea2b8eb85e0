package dataset

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.schema.json resources.schema.json
var schemaFS embed.FS

// compiledSchemas are built once at init; the schema files are part of the
// binary and a compile failure is a programming error.
var (
	catalogSchema   = mustCompile("catalog.schema.json")
	resourcesSchema = mustCompile("resources.schema.json")
)

func mustCompile(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("dataset: read schema %s: %v", name, err))
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("dataset: decode schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("dataset: add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("dataset: compile schema %s: %v", name, err))
	}
	return schema
}

// ValidateCatalog checks a raw catalog payload against the embedded schema.
func ValidateCatalog(raw []byte) error {
	return validate(catalogSchema, raw, "catalog")
}

// ValidateResources checks a raw resources payload against the embedded
// schema.
func ValidateResources(raw []byte) error {
	return validate(resourcesSchema, raw, "resources")
}

func validate(schema *jsonschema.Schema, raw []byte, kind string) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("dataset: parse %s payload: %w", kind, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("dataset: invalid %s payload: %w", kind, err)
	}
	return nil
}

// decodeJSON decodes into out after schema validation has passed. Unknown
// fields are tolerated so datasets can carry keys a newer schema adds.
func decodeJSON(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	return dec.Decode(out)
}
