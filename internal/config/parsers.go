// Package config loads rxbench settings from flags and an optional YAML or
// JSON file. Flag values override file values.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// lookupSetting returns the first of keys present in settings. Keys are
// written snake_case; the kebab-case and run-together spellings match too.
func lookupSetting(settings map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		key = strings.ToLower(key)
		for _, k := range []string{
			key,
			strings.ReplaceAll(key, "_", "-"),
			strings.ReplaceAll(key, "_", ""),
		} {
			if val, ok := settings[k]; ok {
				return val, true
			}
		}
	}
	return nil, false
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("expected a string, got %T", value)
	}
}

// number widens a numeric setting. YAML yields ints, JSON yields float64
// and flags-in-files may arrive as strings.
func number(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}

func asInt(value any) (int, error) {
	f, err := number(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected a whole number, got %v", f)
	}
	return int(f), nil
}

func asFloat64(value any) (float64, error) {
	return number(value)
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("expected a boolean, got %T", value)
	}
}

// asDuration accepts Go duration strings ("250ms") or a number of seconds,
// fractions included.
func asDuration(value any) (time.Duration, error) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil && s != "" {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	secs, err := number(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// asStringSlice accepts a list or a single string.
func asStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{strings.TrimSpace(v)}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, err := asString(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", value)
	}
}

func asList(value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
}

// asMap returns a nested section with lower-cased keys, matching what
// viper produces for the top level.
func asMap(value any) (map[string]any, error) {
	out := map[string]any{}
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			out[strings.ToLower(strings.TrimSpace(key))] = val
		}
	case map[any]any:
		for key, val := range v {
			k, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("expected string keys, got %T", key)
			}
			out[strings.ToLower(strings.TrimSpace(k))] = val
		}
	default:
		return nil, fmt.Errorf("expected a map, got %T", value)
	}
	return out, nil
}
