package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the subset of JSON schema keywords the verifier understands
type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Defs       map[string]*schemaNode `json:"$defs"`
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties"`
	Required   []string               `json:"required"`
	Enum       []any                  `json:"enum"`
	Minimum    *float64               `json:"minimum"`
}

// GenerateSchema generates a JSON schema for the Config struct. Only fields tagged
// with jsonschema:"required" are marked required.
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{})
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checks required fields, enums and minimums, reporting all violations at once.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var root schemaNode
	if err := json.Unmarshal([]byte(embeddedSchema), &root); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var errs []string
	verifyNode(&root, root.Defs, "", configMap, &errs)
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func verifyNode(node *schemaNode, defs map[string]*schemaNode, path string, value any, errs *[]string) {
	for node.Ref != "" {
		def, ok := defs[strings.TrimPrefix(node.Ref, "#/$defs/")]
		if !ok {
			*errs = append(*errs, fmt.Sprintf("%s: unknown reference %s", nameOf(path), node.Ref))
			return
		}
		node = def
	}

	if obj, ok := value.(map[string]any); ok {
		for _, req := range node.Required {
			if isEmpty(obj[req]) {
				*errs = append(*errs, fmt.Sprintf("%s is required", join(path, req)))
			}
		}
		for name, prop := range node.Properties {
			if v, ok := obj[name]; ok {
				verifyNode(prop, defs, join(path, name), v, errs)
			}
		}
		return
	}

	if len(node.Enum) > 0 && !isEmpty(value) {
		found := false
		for _, e := range node.Enum {
			if e == value {
				found = true
				break
			}
		}
		if !found {
			*errs = append(*errs, fmt.Sprintf("%s: %v is not one of %v", nameOf(path), value, node.Enum))
		}
	}
	if num, ok := value.(float64); ok && node.Minimum != nil && num < *node.Minimum {
		*errs = append(*errs, fmt.Sprintf("%s: %v is less than %v", nameOf(path), num, *node.Minimum))
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	}
	return false
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func nameOf(path string) string {
	if path == "" {
		return "config"
	}
	return path
}
