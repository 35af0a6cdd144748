// Package configloader provides a generic runtime registry for configuration
// instances in landingroute. The CLI publishes its loaded configuration here
// so that commands and the logging package can reach it without import cycles.
//
// Typical usage:
//
//	func init() {
//	    configloader.RegisterConfig(&Config{...})
//	}
//	cfg := configloader.MustGetConfig[*Config]()
package configloader

import (
	"fmt"
	"reflect"
	"sync"
)

var registry sync.Map // key = reflect.Type of the config type, value = registered config instance

// RegisterConfig registers a config instance of type T for global access.
//
// It panics if a config of the same type is already registered.
func RegisterConfig[T any](cfg T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, loaded := registry.LoadOrStore(t, cfg); loaded {
		panic(fmt.Sprintf("config already registered for type %v", t))
	}
}

// SetConfig registers or replaces the config instance of type T.
// Loaders use it so that a reload overrides the defaults set at init time.
func SetConfig[T any](cfg T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	registry.Store(t, cfg)
}

// MustGetConfig retrieves the registered config instance of type T.
//
// It panics if no config of type T has been registered.
func MustGetConfig[T any]() T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if val, ok := registry.Load(t); ok {
		return val.(T)
	}
	panic(fmt.Sprintf("no config registered for type %v", t))
}

// TryGetConfig retrieves the registered config instance of type T.
//
// It returns (zero-value, false) if the config was not found.
//
//	if cfg, ok := TryGetConfig[*MyConfig](); ok {
//	    use(cfg)
//	}
func TryGetConfig[T any]() (T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if val, ok := registry.Load(t); ok {
		return val.(T), true
	}
	var zero T
	return zero, false
}
