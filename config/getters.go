package config

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned (and wrapped) when a requested field isn't
// present and no default was supplied.
var ErrNotFound = errors.New("field not found")

// Option configures the behavior of the Get* helpers below.
type Option func(*options)

type options struct {
	withDefault  bool
	defaultValue interface{}
}

// WithDefault makes a Get* helper return value instead of ErrNotFound
// when the requested field is absent.
func WithDefault(value interface{}) Option {
	return func(o *options) {
		o.withDefault = true
		o.defaultValue = value
	}
}

func getOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetInterface gets a potentially dotted, nested field from config
// irrespective of its type, descending into sub-maps as needed.
func GetInterface(cfg map[string]interface{}, field string, opts ...Option) (interface{}, error) {
	o := getOptions(opts...)
	i := strings.Index(field, ".")
	if i == -1 {
		element, ok := cfg[field]
		if !ok {
			if o.withDefault {
				return o.defaultValue, nil
			}
			return nil, ErrNotFound
		}
		return element, nil
	}

	element, ok := cfg[field[:i]]
	if !ok {
		if o.withDefault {
			return o.defaultValue, nil
		}
		return nil, ErrNotFound
	}
	submap, ok := element.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%v should be a map, got: %v", field[:i], reflect.TypeOf(element))
	}
	out, err := GetInterface(submap, field[i+1:], opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get interface from %v", field[i+1:])
	}
	return out, nil
}

// GetString gets a string field from cfg.
func GetString(cfg map[string]interface{}, field string, opts ...Option) (string, error) {
	o := getOptions(opts...)
	out, err := GetInterface(cfg, field)
	if err != nil {
		if o.withDefault && errors.Cause(err) == ErrNotFound {
			return o.defaultValue.(string), nil
		}
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", errors.Errorf("expected string, got %v", reflect.TypeOf(out))
	}
	return s, nil
}

// GetBool gets a bool field from cfg.
func GetBool(cfg map[string]interface{}, field string, opts ...Option) (bool, error) {
	o := getOptions(opts...)
	out, err := GetInterface(cfg, field)
	if err != nil {
		if o.withDefault && errors.Cause(err) == ErrNotFound {
			return o.defaultValue.(bool), nil
		}
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, errors.Errorf("expected bool, got %v", reflect.TypeOf(out))
	}
	return b, nil
}

// GetInt gets an int field from cfg.
func GetInt(cfg map[string]interface{}, field string, opts ...Option) (int, error) {
	o := getOptions(opts...)
	out, err := GetInterface(cfg, field)
	if err != nil {
		if o.withDefault && errors.Cause(err) == ErrNotFound {
			return o.defaultValue.(int), nil
		}
		return 0, err
	}
	switch v := out.(type) {
	case int:
		return v, nil
	default:
		return 0, errors.Errorf("expected int, got %v", reflect.TypeOf(out))
	}
}
