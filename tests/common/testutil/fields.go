//go:build unit || e2e

package testutil

// a helper function for dynamically modifying map fields in tests
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// like Field but targets a key inside a nested object field
func NestedField(object, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		inner, ok := m[object].(map[string]any)
		if !ok {
			return
		}
		if value == nil {
			delete(inner, key)
		} else {
			inner[key] = value
		}
	}
}
