package tools

import "encoding/json"

// ParamsKind tags the form world_action params arrived in.
type ParamsKind int

const (
	ParamsNone ParamsKind = iota
	ParamsString
	ParamsObject
	ParamsLoose
)

var looseKeys = []string{"dx", "dy", "x", "y"}

// ActionParams is the world_action params union: a JSON-encoded string, an object, or loose
// dx/dy/x/y arguments next to the action.
type ActionParams struct {
	Kind   ParamsKind
	String string
	Object map[string]any
	Loose  map[string]any
}

// ParseActionParams picks the variant from the raw arguments. "params" wins over loose keys.
func ParseActionParams(args Args) ActionParams {
	switch p := args["params"].(type) {
	case string:
		return ActionParams{Kind: ParamsString, String: p}
	case map[string]any:
		return ActionParams{Kind: ParamsObject, Object: p}
	}

	loose := map[string]any{}
	for _, k := range looseKeys {
		if v, ok := args[k]; ok {
			loose[k] = v
		}
	}
	if len(loose) > 0 {
		return ActionParams{Kind: ParamsLoose, Loose: loose}
	}
	return ActionParams{Kind: ParamsNone}
}

// Normalize returns the params object to send. It is never nil. A string that does not decode
// to a JSON object yields {}.
func (p ActionParams) Normalize() map[string]any {
	switch p.Kind {
	case ParamsString:
		var m map[string]any
		if err := json.Unmarshal([]byte(p.String), &m); err != nil || m == nil {
			return map[string]any{}
		}
		return m
	case ParamsObject:
		return p.Object
	case ParamsLoose:
		return p.Loose
	default:
		return map[string]any{}
	}
}
