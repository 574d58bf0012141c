package rules

import (
	"encoding/json"
	"strings"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rulefmt/rulefmt/errors"
)

//go:embed ruleset.schema.json
var schemaText string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("ruleset.schema.json", strings.NewReader(schemaText)); err != nil {
			schemaErr = errors.Wrap(err, "adding embedded schema resource")
			return
		}
		schema, schemaErr = compiler.Compile("ruleset.schema.json")
	})
	return schema, schemaErr
}

// ValidateJSON checks a JSON artifact against the embedded rule-set
// schema. It reports structural violations only; value-level checks (IP
// grammar, version routing) belong to ParseJSON.
func ValidateJSON(text string) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return errors.Wrap(err, "parsing artifact for schema validation")
	}
	if err := sch.Validate(doc); err != nil {
		return errors.Wrap(err, "rule-set artifact failed schema validation")
	}
	return nil
}
