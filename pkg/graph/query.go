package graph

// FindByAttribute returns the ids of all nodes whose attribute key
// exactly equals value, in insertion (scene) order. The object name is
// addressable under the "name" key. No match yields an empty, non-nil
// slice - absence is an answer, not an error.
//
// Equality is exact over JSON scalar values: strings, booleans, and
// numbers (numeric values compare across int and float64 so callers can
// pass literals). Composite values never match.
func (g *Graph) FindByAttribute(key string, value any) []int {
	ids := make([]int, 0)
	for _, id := range g.order {
		n := g.nodes[id]
		if key == "name" {
			if sv, ok := value.(string); ok && n.Name == sv {
				ids = append(ids, id)
			}
			continue
		}
		if v, ok := n.Attrs[key]; ok && attrEqual(v, value) {
			ids = append(ids, id)
		}
	}
	return ids
}

// attrEqual compares two attribute values. JSON decoding produces
// strings, float64 numbers, and bools; numeric comparison crosses int
// and float64 so query callers can pass either.
func attrEqual(a, b any) bool {
	if na, ok := toFloat(a); ok {
		nb, ok := toFloat(b)
		return ok && na == nb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
