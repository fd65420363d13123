package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/priceblocs/priceblocs-go/pkg/pricing"
)

// cloneValues deep-copies values through their JSON form. Configuration trees
// are small; correctness over a hand-written copier wins here.
func cloneValues(values *pricing.Values) *pricing.Values {
	raw, err := json.Marshal(values)
	if err != nil {
		// Values contains only marshalable types.
		panic(fmt.Sprintf("session: failed to clone values: %v", err))
	}
	clone := &pricing.Values{}
	if err := json.Unmarshal(raw, clone); err != nil {
		panic(fmt.Sprintf("session: failed to clone values: %v", err))
	}
	return clone
}

// setFieldValue applies value at a dotted path to a deep clone of values and
// returns the clone. Paths address the JSON form of the tree: object keys by
// wire name ("form.currency"), slice elements by index ("products.0.name").
// Missing intermediate objects are created; a path that does not fit the
// Values schema after the update is rejected.
func setFieldValue(values *pricing.Values, path string, value any) (*pricing.Values, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	segments := strings.Split(path, ".")
	if err := setAtPath(tree, segments, value); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	result := &pricing.Values{}
	if err := json.Unmarshal(updated, result); err != nil {
		return nil, fmt.Errorf("%w: value does not fit schema at %q: %w", ErrInvalidPath, path, err)
	}

	return result, nil
}

func setAtPath(node any, segments []string, value any) error {
	segment := segments[0]
	last := len(segments) == 1

	switch n := node.(type) {
	case map[string]any:
		if last {
			n[segment] = value
			return nil
		}
		child, ok := n[segment]
		if !ok || child == nil {
			child = map[string]any{}
			n[segment] = child
		}
		return setAtPath(child, segments[1:], value)

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return fmt.Errorf("%w: %q is not a slice index", ErrInvalidPath, segment)
		}
		if idx < 0 || idx >= len(n) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidPath, idx)
		}
		if last {
			n[idx] = value
			return nil
		}
		return setAtPath(n[idx], segments[1:], value)

	default:
		return fmt.Errorf("%w: cannot descend into %q", ErrInvalidPath, segment)
	}
}
