package class

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// decodeJSON decodes data keeping numbers as json.Number so they are re-encoded verbatim.
func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// formatProgram rewrites a decoded Cairo 0 program into the shape the hinted class hash
// commits to.
func formatProgram(program map[string]any) error {
	program["debug_info"] = nil

	if attributes, ok := program["attributes"].([]any); ok {
		if len(attributes) == 0 {
			delete(program, "attributes")
		}
		for _, attribute := range attributes {
			attr, ok := attribute.(map[string]any)
			if !ok {
				continue
			}
			if scopes, ok := attr["accessible_scopes"].([]any); ok && len(scopes) == 0 {
				delete(attr, "accessible_scopes")
			}
			if data, ok := attr["flow_tracking_data"]; ok && data == nil {
				delete(attr, "flow_tracking_data")
			}
		}
	}

	compilerVersion, hasCompilerVersion := program["compiler_version"]
	if hasCompilerVersion && compilerVersion == nil {
		delete(program, "compiler_version")
	}

	if hints, ok := program["hints"].(map[string]any); ok {
		ordered, err := reorderHints(hints)
		if err != nil {
			return err
		}
		program["hints"] = ordered
	}

	// Artefacts older than compiler 0.10.0 were hashed with "a : felt" spacing.
	if !hasCompilerVersion {
		program["identifiers"] = replaceCairoTypeSpacing(program["identifiers"])
	}
	return nil
}

// reorderHints orders hints by their numeric program counter.
func reorderHints(hints map[string]any) (*orderedmap.OrderedMap[string, any], error) {
	intKeys := make([]int, 0, len(hints))
	for key := range hints {
		intKey, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("error converting hint key to integer: %v", err)
		}
		intKeys = append(intKeys, intKey)
	}
	sort.Ints(intKeys)

	ordered := orderedmap.New[string, any]()
	for _, intKey := range intKeys {
		strKey := strconv.Itoa(intKey)
		value, ok := hints[strKey]
		if !ok {
			return nil, fmt.Errorf("hint key %d is not in canonical form", intKey)
		}
		ordered.Set(strKey, value)
	}
	return ordered, nil
}

func replaceCairoTypeSpacing(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, elem := range val {
			if s, ok := elem.(string); ok && key == "cairo_type" {
				val[key] = strings.ReplaceAll(s, ": ", " : ")
				continue
			}
			val[key] = replaceCairoTypeSpacing(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = replaceCairoTypeSpacing(elem)
		}
		return val
	default:
		return v
	}
}
