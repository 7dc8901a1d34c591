package event

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	regMu    sync.RWMutex
	registry = make(map[string]map[string]reflect.Type)
)

var (
	ErrNotFoundInRegistry = errors.New("event not found in registry")
)

// Register defines the registry service for the domain events carried by commits.
// The commit serializer relies on it to restore typed events on decode.
type Register interface {
	// Set registers the given event in the registry.
	Set(event interface{}) Register
	// Get returns a new empty instance of the event type registered under the given name.
	Get(name string) (interface{}, error)
	// clear all namespace registries. It's mainly used in internal tests.
	clear()
}

// register implements the Register interface.
// It keeps a registry per namespace, lookups never cross namespaces.
type register struct {
	namespace string
}

// NewRegister returns a Register instance for the given namespace.
func NewRegister(namespace string) Register {
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registry[namespace]; !ok {
		registry[namespace] = make(map[string]reflect.Type)
	}
	if _, ok := registry[""]; !ok {
		registry[""] = make(map[string]reflect.Type)
	}

	return &register{namespace: namespace}
}

// Set implements Set method of the Register interface.
// It registers the given event in the current namespace registry.
// By default the event name is {package name}.{event struct name},
// if a namespace exists the name becomes {namespace}.{event struct name}.
func (r *register) Set(evt interface{}) Register {
	name := TypeOfWithNamespace(r.namespace, evt)
	rType, _ := resolveType(evt)

	regMu.Lock()
	defer regMu.Unlock()
	registry[r.namespace][name] = rType

	return r
}

// Get implements Get method of the Register interface.
// In a named namespace it first looks the event type up under its namespaced
// name, {namespace}.{event struct name} whatever the given name's prefix,
// then under the given name as-is within the same namespace registry.
func (r *register) Get(name string) (interface{}, error) {
	regMu.RLock()
	defer regMu.RUnlock()

	if r.namespace != "" {
		parts := strings.Split(name, ".")
		eType, ok := registry[r.namespace][r.namespace+"."+parts[len(parts)-1]]
		if ok {
			return reflect.New(eType).Interface(), nil
		}
	}

	eType, ok := registry[r.namespace][name]
	if !ok {
		return nil, fmt.Errorf("%w: event type: %s", ErrNotFoundInRegistry, name)
	}

	return reflect.New(eType).Interface(), nil
}

// clear implements clear method of the Register interface
func (r *register) clear() {
	regMu.Lock()
	defer regMu.Unlock()

	registry = make(map[string]map[string]reflect.Type)
}
