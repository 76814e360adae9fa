package storage

import "github.com/pkg/errors"

// Factory builds a GraphStore from a store configuration, one per
// backend kind. csv and json each register themselves via Register.
type Factory func(cfg interface{}) (GraphStore, error)

var factories = map[string]Factory{}

// Register makes a backend kind available to Open, the way a real
// storage layer's driver registry works. Backend packages call this
// from an init() when the caller wants Open's dynamic dispatch instead
// of importing csv.NewFromConfig/json.NewFromConfig directly.
func Register(kind string, f Factory) {
	factories[kind] = f
}

// Open dispatches to the Factory registered for kind, mirroring the
// teacher's translateOutputName switch, generalized to a registry so
// storage backends can register themselves without this package
// importing every implementation.
func Open(kind string, cfg interface{}) (GraphStore, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, errors.Errorf("unknown store kind %q", kind)
	}
	return f(cfg)
}
