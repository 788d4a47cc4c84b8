package items

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"typeahead/internal/typeahead"
)

// Field looks up a dotted path in a record. JSON records use gjson path
// syntax; decoded YAML/TOML maps are walked segment by segment.
func Field(item any, path string) any {
	switch v := item.(type) {
	case gjson.Result:
		r := v.Get(path)
		if !r.Exists() {
			return nil
		}
		return r.Value()
	case map[string]any:
		var cur any = v
		for _, key := range strings.Split(path, ".") {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		}
		return cur
	default:
		return nil
	}
}

// FieldSerializer returns a serializer reading path from records. String
// items serialize to themselves. An empty path yields nil so the
// formatter's defaults apply.
func FieldSerializer(path string) typeahead.Serializer {
	if path == "" {
		return nil
	}
	return func(item any) string {
		if s, ok := item.(string); ok {
			return s
		}
		switch v := Field(item, path).(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
}

// FieldResolver returns a variant resolver reading path from records. The
// raw field value is returned as is; non-string values are ignored by the
// widget.
func FieldResolver(path string) typeahead.VariantResolver {
	if path == "" {
		return nil
	}
	return func(data any) any {
		return Field(data, path)
	}
}
