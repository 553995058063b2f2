package taxonomy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed seed.json
var seedJSON []byte

// supportedMajor is the taxonomy format major version this build understands.
const supportedMajor = "v1"

// compiled taxonomy schema, built lazily on first load.
var compiledSchema *jsonschema.Schema

// Default returns the embedded seed taxonomy.
func Default() (Taxonomy, error) {
	return Parse(seedJSON)
}

// Load reads and validates a taxonomy JSON file from disk.
func Load(path string) (Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the taxonomy schema and decodes it.
// Validation covers structure only; missing skill-point dimensions are
// legal and defaulted downstream by the tree builder.
func Parse(raw []byte) (Taxonomy, error) {
	schema, err := getSchema()
	if err != nil {
		return Taxonomy{}, fmt.Errorf("compile taxonomy schema: %w", err)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Taxonomy{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Taxonomy{}, fmt.Errorf("taxonomy validation failed: %w", err)
	}

	var tax Taxonomy
	if err := json.Unmarshal(raw, &tax); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}

	if err := checkVersion(tax.Version); err != nil {
		return Taxonomy{}, err
	}
	return tax, nil
}

// checkVersion gates on the format's major version so an old binary fails
// loudly on a taxonomy written for a newer format.
func checkVersion(version string) error {
	v := "v" + version
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid taxonomy version %q", version)
	}
	if semver.Major(v) != supportedMajor {
		return fmt.Errorf("unsupported taxonomy version %q (this build supports %s.x)", version, supportedMajor)
	}
	return nil
}

func getSchema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://taxonomy.json"
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchema = compiled
	return compiled, nil
}
