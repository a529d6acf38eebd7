package algorithm

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rete/pandora/types"
)

// Settings is the parameter bag an algorithm is configured from.
//
// Lookups return types.ErrNotFound when a key is absent; the caller keeps
// its default and continues. A key that is present with an unusable type is
// a configuration error and aborts.
type Settings map[string]any

// ParseSettings decodes a YAML mapping into a Settings bag.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s == nil {
		s = Settings{}
	}

	return s, nil
}

// Float reads a floating-point parameter.
func (s Settings) Float(key string) (float64, error) {
	v, ok := s[key]
	if !ok {
		return 0, fmt.Errorf("setting %q: %w", key, types.ErrNotFound)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case uint:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("setting %q has type %T, want number: %w", key, v, types.ErrInvalidParameter)
	}
}

// Uint reads a non-negative integer parameter.
func (s Settings) Uint(key string) (uint, error) {
	v, ok := s[key]
	if !ok {
		return 0, fmt.Errorf("setting %q: %w", key, types.ErrNotFound)
	}

	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("setting %q is negative: %w", key, types.ErrInvalidParameter)
		}

		return uint(n), nil
	case uint:
		return n, nil
	default:
		return 0, fmt.Errorf("setting %q has type %T, want unsigned integer: %w", key, v, types.ErrInvalidParameter)
	}
}

// Bool reads a boolean parameter.
func (s Settings) Bool(key string) (bool, error) {
	v, ok := s[key]
	if !ok {
		return false, fmt.Errorf("setting %q: %w", key, types.ErrNotFound)
	}

	b, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("setting %q has type %T, want bool: %w", key, v, types.ErrInvalidParameter)
	}

	return b, nil
}

// FloatOr reads a floating-point parameter, substituting def when absent.
func (s Settings) FloatOr(key string, def float64) (float64, error) {
	v, err := s.Float(key)
	if errors.Is(err, types.ErrNotFound) {
		return def, nil
	}

	return v, err
}

// UintOr reads a non-negative integer parameter, substituting def when
// absent.
func (s Settings) UintOr(key string, def uint) (uint, error) {
	v, err := s.Uint(key)
	if errors.Is(err, types.ErrNotFound) {
		return def, nil
	}

	return v, err
}

// BoolOr reads a boolean parameter, substituting def when absent.
func (s Settings) BoolOr(key string, def bool) (bool, error) {
	v, err := s.Bool(key)
	if errors.Is(err, types.ErrNotFound) {
		return def, nil
	}

	return v, err
}

// StringOr reads a string parameter, substituting def when absent.
func (s Settings) StringOr(key, def string) (string, error) {
	v, err := s.String(key)
	if errors.Is(err, types.ErrNotFound) {
		return def, nil
	}

	return v, err
}

// String reads a string parameter.
func (s Settings) String(key string) (string, error) {
	v, ok := s[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, types.ErrNotFound)
	}

	str, isString := v.(string)
	if !isString {
		return "", fmt.Errorf("setting %q has type %T, want string: %w", key, v, types.ErrInvalidParameter)
	}

	return str, nil
}
