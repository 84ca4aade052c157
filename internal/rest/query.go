package rest

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/go-querystring/query"
)

// QueryKeyer is implemented by field types that always encode under a fixed
// parameter name, such as the v2 "q" filter.
type QueryKeyer interface {
	QueryKey() string
}

var queryKeyerType = reflect.TypeOf((*QueryKeyer)(nil)).Elem()

type fieldOrder struct {
	keys     []string
	untagged map[string]bool
}

var fieldOrderCache sync.Map // map[reflect.Type]*fieldOrder

// AugmentQuery appends one query parameter per `url`-tagged field of request
// holding a non-empty value. Values are encoded by go-querystring; parameters
// follow field declaration order, with embedded structs inlined where they are
// declared. Fields without a `url` tag are never emitted.
func AugmentQuery(builder *URIBuilder, request any) error {
	if request == nil {
		return nil
	}

	values, err := query.Values(request)
	if err != nil {
		return fmt.Errorf("encoding query parameters: %w", err)
	}

	if len(values) == 0 {
		return nil
	}

	order := orderOf(reflect.TypeOf(request))

	for _, key := range order.keys {
		if vs, ok := values[key]; ok {
			builder.QueryParam(key, vs...)
			delete(values, key)
		}
	}

	remaining := make([]string, 0, len(values))

	for key := range values {
		// Nested structs encode as field[sub] under the outer field's name.
		field, _, _ := strings.Cut(key, "[")
		if !order.untagged[field] {
			remaining = append(remaining, key)
		}
	}

	sort.Strings(remaining)

	for _, key := range remaining {
		builder.QueryParam(key, values[key]...)
	}

	return nil
}

func orderOf(typ reflect.Type) *fieldOrder {
	if cached, ok := fieldOrderCache.Load(typ); ok {
		return cached.(*fieldOrder)
	}

	order := &fieldOrder{untagged: make(map[string]bool)}
	seen := make(map[string]bool)
	walkFields(typ, order, seen)

	actual, _ := fieldOrderCache.LoadOrStore(typ, order)

	return actual.(*fieldOrder)
}

func walkFields(typ reflect.Type, order *fieldOrder, seen map[string]bool) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue
		}

		tag, tagged := field.Tag.Lookup("url")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		fieldType := field.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		if field.Anonymous && name == "" && fieldType.Kind() == reflect.Struct {
			walkFields(fieldType, order, seen)

			continue
		}

		if !tagged {
			order.untagged[field.Name] = true

			continue
		}

		if name == "" {
			name = field.Name
		}

		if key, ok := queryKey(field.Type); ok {
			name = key
		}

		if !seen[name] {
			seen[name] = true
			order.keys = append(order.keys, name)
		}
	}
}

func queryKey(typ reflect.Type) (string, bool) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if !reflect.PointerTo(typ).Implements(queryKeyerType) {
		return "", false
	}

	return reflect.New(typ).Interface().(QueryKeyer).QueryKey(), true
}
