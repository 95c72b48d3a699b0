package typeddata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func (td *TypedData) escape(name string) string {
	if td.revision == Revision1 {
		return `"` + name + `"`
	}
	return name
}

// dependencies lists name followed by every struct type reachable from it, in the order
// they are first seen.
func (td *TypedData) dependencies(name string) []string {
	deps := []string{name}
	seen := map[string]struct{}{name: {}}
	for i := 0; i < len(deps); i++ {
		for _, f := range td.all[deps[i]] {
			for _, ref := range td.typeRefs(f) {
				if _, ok := td.all[ref]; !ok {
					continue
				}
				if _, ok := seen[ref]; ok {
					continue
				}
				seen[ref] = struct{}{}
				deps = append(deps, ref)
			}
		}
	}
	return deps
}

// EncodeType renders the signature of name: the type itself, then its dependencies sorted
// by name, each as Name(field:type,...).
func (td *TypedData) EncodeType(name string) (string, error) {
	if _, ok := td.all[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingTypeDependency, name)
	}

	deps := td.dependencies(name)
	slices.Sort(deps[1:])

	var sb strings.Builder
	for _, dep := range deps {
		fields := td.all[dep]
		encoded := make([]string, 0, len(fields))
		for _, f := range fields {
			encoded = append(encoded, td.escape(f.Name)+":"+td.encodeFieldType(f))
		}
		sb.WriteString(td.escape(dep))
		sb.WriteString("(")
		sb.WriteString(strings.Join(encoded, ","))
		sb.WriteString(")")
	}
	return sb.String(), nil
}

func (td *TypedData) encodeFieldType(f Type) string {
	target := f.Type
	if td.revision == Revision1 && f.Type == "enum" && f.Contains != "" {
		target = f.Contains
	}
	if !isEnumSignature(target) {
		return td.escape(target)
	}

	variants := enumVariantTypes(target)
	for i := range variants {
		variants[i] = td.escape(variants[i])
	}
	return "(" + strings.Join(variants, ",") + ")"
}

func (td *TypedData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Types       *orderedmap.OrderedMap[string, []Type] `json:"types"`
		PrimaryType string                                 `json:"primaryType"`
		Domain      json.RawMessage                        `json:"domain"`
		Message     json.RawMessage                        `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	domain, err := decodeObject(raw.Domain)
	if err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	message, err := decodeObject(raw.Message)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}

	parsed, err := New(raw.Types, raw.PrimaryType, domain, message)
	if err != nil {
		return err
	}
	*td = *parsed
	return nil
}

func (td *TypedData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Types       *orderedmap.OrderedMap[string, []Type] `json:"types"`
		PrimaryType string                                 `json:"primaryType"`
		Domain      map[string]any                         `json:"domain"`
		Message     map[string]any                         `json:"message"`
	}{td.types, td.primaryType, td.domain, td.message})
}

// decodeObject keeps numbers as json.Number so that integers wider than 53 bits survive.
func decodeObject(data json.RawMessage) (map[string]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: missing object", ErrInvalidValue)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: null object", ErrInvalidValue)
	}
	return obj, nil
}
