package transcript

import (
	"fmt"
	"reflect"
	"strings"
)

// JSONable lets collaborators supply their own JSON-safe rendering
// instead of relying on reflective inspection.
type JSONable interface {
	ToJSON() interface{}
}

// Sanitization of arbitrary nested values stops here. Cyclic graphs are
// not detected; they bottom out at this depth and degrade to a string.
const maxSanitizeDepth = 100

// Sanitize converts an arbitrary value into something the JSON encoder
// is guaranteed to accept. Primitives pass through, byte slices are
// decoded as UTF-8 with replacement, maps and collections recurse, and
// anything else is stringified. Sanitize never panics; worst case the
// value degrades to its string form.
func Sanitize(value interface{}) (out interface{}) {
	defer func() {
		if r := recover(); r != nil {
			// %v could re-enter the method that just panicked; %T can't.
			out = fmt.Sprintf("<%T>", value)
		}
	}()

	return sanitize(value, 0)
}

func sanitize(value interface{}, depth int) interface{} {
	if value == nil {
		return nil
	}

	if depth > maxSanitizeDepth {
		// %T cannot traverse the value, so this stays safe even for
		// cyclic graphs.
		return fmt.Sprintf("<%T>", value)
	}

	switch v := value.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, string:
		return v
	case []byte:
		return strings.ToValidUTF8(string(v), "�")
	case JSONable:
		return sanitize(v.ToJSON(), depth+1)
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return sanitize(rv.Elem().Interface(), depth+1)
	case reflect.Map:
		sanitized := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := sanitize(iter.Key().Interface(), depth+1)
			sanitized[textKey(key)] = sanitize(iter.Value().Interface(), depth+1)
		}
		return sanitized
	case reflect.Slice, reflect.Array:
		sanitized := make([]interface{}, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			sanitized = append(sanitized, sanitize(rv.Index(i).Interface(), depth+1))
		}
		return sanitized
	case reflect.Struct:
		return sanitizeStruct(rv, depth)
	}

	return fmt.Sprintf("%v", value)
}

// sanitizeStruct treats exported fields as an attribute bag. Structs
// without any exported fields carry no useful bag and are stringified.
func sanitizeStruct(rv reflect.Value, depth int) interface{} {
	rt := rv.Type()
	bag := make(map[string]interface{})

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		bag[field.Name] = sanitize(rv.Field(i).Interface(), depth+1)
	}

	if len(bag) == 0 {
		return fmt.Sprintf("%v", rv.Interface())
	}

	return bag
}

func textKey(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", key)
}
