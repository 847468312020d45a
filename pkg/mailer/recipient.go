package mailer

import (
	"fmt"
	"reflect"
)

const (
	DefaultEmailAttr = "Email"
	DefaultLangAttr  = "Lang"
)

// Address is the built-in recipient type understood by the builders with
// their default attribute names.
type Address struct {
	Email string
	Lang  string
}

// String returns the address followed by the language in parentheses, if any.
func (a Address) String() string {
	if a.Lang == "" {
		return a.Email
	}
	return a.Email + " (" + a.Lang + ")"
}

// attr reads the string attribute named attr from recipient v.
//
// Maps are looked up by key. Other values (pointers are followed) expose the
// attribute as a zero-argument method returning string or as an exported
// string field.
func attr(v any, name string) (string, bool) {
	switch m := v.(type) {
	case nil:
		return "", false
	case map[string]string:
		s, ok := m[name]
		return s, ok
	case map[string]any:
		s, ok := m[name].(string)
		return s, ok
	}

	rv := reflect.ValueOf(v)
	if s, ok := callStringMethod(rv, name); ok {
		return s, true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
		if s, ok := callStringMethod(rv, name); ok {
			return s, true
		}
	}

	if rv.Kind() != reflect.Struct {
		return "", false
	}
	f, ok := rv.Type().FieldByName(name)
	if !ok || !f.IsExported() || f.Type.Kind() != reflect.String {
		return "", false
	}
	fv, err := rv.FieldByIndexErr(f.Index)
	if err != nil {
		return "", false
	}
	return fv.String(), true
}

func callStringMethod(rv reflect.Value, name string) (string, bool) {
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return "", false
	}
	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 || t.Out(0).Kind() != reflect.String {
		return "", false
	}
	return m.Call(nil)[0].String(), true
}

// recipientList normalizes a single recipient or a slice or array of
// recipients of any element type.
func recipientList(to any) []any {
	switch v := to.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []Address:
		out := make([]any, len(v))
		for i, a := range v {
			out[i] = a
		}
		return out
	}

	rv := reflect.ValueOf(to)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{to}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// extract returns the address and language of recipient i.
func (o builderOptions) extract(i int, r any) (addr, lang string, err error) {
	if s, ok := r.(string); ok {
		if s == "" {
			return "", "", fmt.Errorf("%w: to[%d] is empty", ErrMissingAddress, i)
		}
		return s, "", nil
	}

	addr, _ = attr(r, o.emailAttr)
	if addr == "" {
		return "", "", fmt.Errorf("%w: to[%d]=%v has no %q attribute", ErrMissingAddress, i, r, o.emailAttr)
	}
	lang, _ = attr(r, o.langAttr)
	return addr, lang, nil
}
