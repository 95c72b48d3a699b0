package typeddata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/NethermindEth/starkhash/core/crypto"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrReservedTypeName      = errors.New("reserved type name")
	ErrMissingTypeDependency = errors.New("missing type dependency")
	ErrCyclicTypeDependency  = errors.New("cyclic type dependency")
	ErrInvalidType           = errors.New("invalid type")
	ErrInvalidValue          = errors.New("invalid value")
	ErrMaxDepthExceeded      = errors.New("max depth exceeded")
	ErrUnsupportedRevision   = errors.New("unsupported revision")
)

type Revision uint8

const (
	// Revision0 is the de facto standard that predates SNIP-12.
	Revision0 Revision = iota
	Revision1
)

func (r Revision) domainType() string {
	if r == Revision1 {
		return "StarknetDomain"
	}
	return "StarkNetDomain"
}

func (r Revision) hashMethod() crypto.HashMethod {
	if r == Revision1 {
		return crypto.Poseidon
	}
	return crypto.Pedersen
}

// Type is a single field of a struct type.
type Type struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Leaf type of a merkletree field, or the enum type of an enum field.
	Contains string `json:"contains,omitempty"`
}

var basicTypesV0 = []string{"felt", "bool", "string", "selector", "merkletree", "raw"}

var basicTypesV1 = append(basicTypesV0[:len(basicTypesV0):len(basicTypesV0)],
	"enum", "u128", "i128", "ContractAddress", "ClassHash", "timestamp", "shortstring")

var presetTypesV1 = map[string][]Type{
	"u256": {
		{Name: "low", Type: "u128"},
		{Name: "high", Type: "u128"},
	},
	"TokenAmount": {
		{Name: "token_address", Type: "ContractAddress"},
		{Name: "amount", Type: "u256"},
	},
	"NftId": {
		{Name: "collection_address", Type: "ContractAddress"},
		{Name: "token_id", Type: "u256"},
	},
}

func (r Revision) isBasicType(name string) bool {
	basics := basicTypesV0
	if r == Revision1 {
		basics = basicTypesV1
	}
	for _, b := range basics {
		if b == name {
			return true
		}
	}
	return false
}

func (r Revision) presetTypes() map[string][]Type {
	if r == Revision1 {
		return presetTypesV1
	}
	return nil
}

// TypedData is a SNIP-12 message together with the types describing it. It is validated
// on construction and read-only afterwards.
type TypedData struct {
	types       *orderedmap.OrderedMap[string, []Type]
	primaryType string
	domain      map[string]any
	message     map[string]any
	revision    Revision

	// custom types and the presets of the revision
	all map[string][]Type
}

// New validates the type graph. Domain and message values are JSON values as decoded by a
// json.Decoder with UseNumber.
func New(types *orderedmap.OrderedMap[string, []Type], primaryType string, domain, message map[string]any,
) (*TypedData, error) {
	if types == nil {
		return nil, fmt.Errorf("%w: no types", ErrInvalidType)
	}
	revision, err := parseRevision(domain["revision"])
	if err != nil {
		return nil, err
	}

	td := &TypedData{
		types:       types,
		primaryType: primaryType,
		domain:      domain,
		message:     message,
		revision:    revision,
		all:         make(map[string][]Type, types.Len()+len(revision.presetTypes())),
	}
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		td.all[pair.Key] = pair.Value
	}
	for name, fields := range revision.presetTypes() {
		if _, ok := td.all[name]; !ok {
			td.all[name] = fields
		}
	}

	if err := td.verifyTypes(); err != nil {
		return nil, err
	}
	return td, nil
}

func parseRevision(v any) (Revision, error) {
	var s string
	switch r := v.(type) {
	case nil:
		return Revision0, nil
	case string:
		s = r
	case json.Number:
		s = r.String()
	case float64:
		s = fmt.Sprint(r)
	case int:
		s = fmt.Sprint(r)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedRevision, v)
	}

	switch s {
	case "0":
		return Revision0, nil
	case "1":
		return Revision1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedRevision, s)
	}
}

func (td *TypedData) Revision() Revision {
	return td.revision
}

func (td *TypedData) PrimaryType() string {
	return td.primaryType
}

func (td *TypedData) Domain() map[string]any {
	return td.domain
}

func (td *TypedData) Message() map[string]any {
	return td.message
}

// Types returns the custom types in declaration order.
func (td *TypedData) Types() *orderedmap.OrderedMap[string, []Type] {
	return td.types
}

func stripPointer(name string) string {
	return strings.TrimRight(name, "*")
}

func isEnumSignature(name string) bool {
	return strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")")
}

// enumVariantTypes splits a variant signature such as "(u128,u128*)" into its types.
func enumVariantTypes(signature string) []string {
	inner := signature[1 : len(signature)-1]
	if strings.TrimSpace(inner) == "" {
		return nil
	}
	types := strings.Split(inner, ",")
	for i := range types {
		types[i] = strings.TrimSpace(types[i])
	}
	return types
}

// typeRefs lists the types a field brings into the encoded type signature.
func (td *TypedData) typeRefs(f Type) []string {
	switch {
	case td.revision == Revision1 && f.Type == "enum" && f.Contains != "":
		return []string{f.Contains}
	case td.revision == Revision1 && isEnumSignature(f.Type):
		variants := enumVariantTypes(f.Type)
		for i := range variants {
			variants[i] = stripPointer(variants[i])
		}
		return variants
	default:
		return []string{stripPointer(f.Type)}
	}
}

// references lists every type a field depends on, including merkletree leaves.
func (td *TypedData) references(f Type) []string {
	refs := td.typeRefs(f)
	if f.Contains != "" && (f.Type == "merkletree" || f.Type == "enum") {
		refs = append(refs, f.Contains)
	}
	return refs
}

func (td *TypedData) known(name string) bool {
	_, ok := td.all[name]
	return ok || td.revision.isBasicType(name)
}

func (td *TypedData) verifyTypes() error {
	domainType := td.revision.domainType()
	if _, ok := td.types.Get(domainType); !ok {
		return fmt.Errorf("%w: types must contain %q", ErrInvalidType, domainType)
	}
	if _, ok := td.all[td.primaryType]; !ok {
		return fmt.Errorf("%w: primary type %q", ErrMissingTypeDependency, td.primaryType)
	}

	referenced := map[string]struct{}{
		domainType:     {},
		td.primaryType: {},
	}
	for pair := td.types.Oldest(); pair != nil; pair = pair.Next() {
		for _, f := range pair.Value {
			if err := td.verifyField(pair.Key, f); err != nil {
				return err
			}
			for _, ref := range td.references(f) {
				referenced[ref] = struct{}{}
			}
		}
	}

	for pair := td.types.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		_, preset := td.revision.presetTypes()[name]
		switch {
		case td.revision.isBasicType(name), preset:
			return fmt.Errorf("%w: %q", ErrReservedTypeName, name)
		case name == "":
			return fmt.Errorf("%w: empty type name", ErrInvalidType)
		case strings.HasSuffix(name, "*"):
			return fmt.Errorf("%w: %q ends in *", ErrReservedTypeName, name)
		case strings.HasPrefix(name, "(") || strings.HasSuffix(name, ")"):
			return fmt.Errorf("%w: %q is enclosed in parentheses", ErrInvalidType, name)
		case strings.Contains(name, ","):
			return fmt.Errorf("%w: %q contains a comma", ErrInvalidType, name)
		}
		if _, ok := referenced[name]; !ok {
			return fmt.Errorf("%w: dangling type %q", ErrInvalidType, name)
		}
	}

	for pair := td.types.Oldest(); pair != nil; pair = pair.Next() {
		for _, f := range pair.Value {
			for _, ref := range td.references(f) {
				if ref != "" && !td.known(ref) {
					return fmt.Errorf("%w: %q referenced by %q", ErrMissingTypeDependency, ref, pair.Key)
				}
			}
		}
	}
	return td.verifyAcyclic()
}

func (td *TypedData) verifyField(parent string, f Type) error {
	switch {
	case f.Name == "" || f.Type == "":
		return fmt.Errorf("%w: field of %q needs a name and a type", ErrInvalidType, parent)
	case f.Type == "merkletree" && f.Contains == "":
		return fmt.Errorf("%w: merkletree %q of %q has no leaf type", ErrInvalidType, f.Name, parent)
	case f.Type == "merkletree" && strings.HasSuffix(f.Contains, "*"):
		return fmt.Errorf("%w: merkletree %q of %q cannot contain an array", ErrInvalidType, f.Name, parent)
	}
	return nil
}

// verifyAcyclic walks the struct graph depth first; reaching a type that is still on the
// stack means the graph has a cycle.
func (td *TypedData) verifyAcyclic() error {
	const (
		onStack = iota + 1
		done
	)
	state := make(map[string]int, len(td.all))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case onStack:
			return fmt.Errorf("%w: %s", ErrCyclicTypeDependency, strings.Join(append(path, name), " -> "))
		case done:
			return nil
		}
		state[name] = onStack
		for _, f := range td.all[name] {
			for _, ref := range td.references(f) {
				if _, ok := td.all[ref]; !ok {
					continue
				}
				if err := visit(ref, append(path, name)); err != nil {
					return err
				}
			}
		}
		state[name] = done
		return nil
	}

	for pair := td.types.Oldest(); pair != nil; pair = pair.Next() {
		if err := visit(pair.Key, nil); err != nil {
			return err
		}
	}
	return nil
}
