package event

import (
	"reflect"
	"strings"
)

// resolveType of the given value (mainly a domain event),
func resolveType(v interface{}) (reflect.Type, string) {
	rType := reflect.TypeOf(v)
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType, rType.String()
}

// TypeOf returns the type of a value or its pointer
func TypeOf(v interface{}) (vtype string) {
	if v == nil {
		return ""
	}
	_, vtype = resolveType(v)
	return
}

// TypeOfWithNamespace returns the type of the value using the given namespace.
// By default the type name is {package name}.{value type name}.
// It becomes {namespace}.{value type name} if the namespace is not empty.
func TypeOfWithNamespace(namespace string, v interface{}) string {
	t := TypeOf(v)
	if namespace != "" {
		splits := strings.Split(t, ".")
		return namespace + "." + splits[len(splits)-1]
	}
	return t
}
