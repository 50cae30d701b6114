package gateway

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Record renders an SDK record with the key names the gateway itself uses in JSON.
// SDK structs only carry xml tags, so keys are the camelCased xml element names
// ("first-name" becomes "firstName"), XMLName is dropped, and list wrappers such as
// PayPalAccounts{PayPalAccount: [...]} collapse into a plain array. Values with their
// own JSON or text encoding (times, decimals) are left for the encoder.
func Record(v any) any {
	if v == nil {
		return nil
	}
	return render(reflect.ValueOf(v))
}

func render(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		if v.IsNil() {
			return nil
		}
	case reflect.Slice:
		if v.IsNil() {
			return []any{}
		}
	}
	if leaf, ok := marshaler(v); ok {
		return leaf
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return render(v.Elem())
	case reflect.Struct:
		if list, ok := listWrapper(v); ok {
			return render(list)
		}
		out := map[string]any{}
		renderFields(v, out)
		return out
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		out := make([]any, v.Len())
		for i := range v.Len() {
			out[i] = render(v.Index(i))
		}
		return out
	case reflect.Map:
		out := make(map[string]any, v.Len())
		it := v.MapRange()
		for it.Next() {
			out[fmt.Sprint(it.Key().Interface())] = render(it.Value())
		}
		return out
	default:
		return v.Interface()
	}
}

func marshaler(v reflect.Value) (any, bool) {
	t := v.Type()
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return v.Interface(), true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		pt := reflect.PointerTo(t)
		if pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
			p := reflect.New(t)
			p.Elem().Set(v)
			return p.Interface(), true
		}
	}
	return nil, false
}

func renderFields(v reflect.Value, out map[string]any) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Name == "XMLName" || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("xml")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		fv := v.Field(i)
		if f.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				renderFields(fv, out)
				continue
			}
		}
		if j := strings.LastIndex(name, ">"); j >= 0 {
			name = name[j+1:]
		}
		if name == "" {
			name = f.Name
		}
		out[camel(name)] = render(fv)
	}
}

// listWrapper reports the slice inside a struct whose only field is that slice.
func listWrapper(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	var list reflect.Value
	n := 0
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Name == "XMLName" || !f.IsExported() {
			continue
		}
		n++
		if f.Type.Kind() == reflect.Slice {
			list = v.Field(i)
		}
	}
	return list, n == 1 && list.IsValid()
}

func camel(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) == 0 {
		return name
	}
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(strings.ToLower(p[:1]) + p[1:])
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
