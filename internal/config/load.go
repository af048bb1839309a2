package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// Load reads a JSON parameter file. Keys missing from the file keep their
// Default() values, so a file may override only what it cares about.
func Load(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("could not read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON parameters on top of Default() and validates the result.
func Parse(data []byte) (Parameters, error) {
	p := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Parameters{}, fmt.Errorf("could not unmarshal config json: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Schema builds the JSON schema describing a parameter file.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(Parameters))
	schema.Title = "Island generator parameters"
	schema.Description = "Settings for one island generation run; omitted keys use the built-in defaults"
	return schema
}

// SchemaJSON returns the indented schema document.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
