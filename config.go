package mdp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config is a set of key=value solver settings, all kept as strings
// until they are parsed by PopParamOr.
type Config map[string]string

// ParseConfig splits a configuration string of the form
// "key1=value1,key2=value2" into a Config. Whitespace around keys and
// values is ignored. The empty string is an empty Config.
func ParseConfig(config string) (Config, error) {
	params := make(Config)
	if strings.TrimSpace(config) == "" {
		return params, nil
	}

	for _, part := range strings.Split(config, ",") {
		subParts := strings.SplitN(part, "=", 2) // Values may contain '='.
		key := strings.TrimSpace(subParts[0])
		if key == "" {
			return nil, errors.Wrapf(ErrInvalidArgument, "empty key in configuration %q", config)
		}

		if _, ok := params[key]; ok {
			return nil, errors.Wrapf(ErrInvalidArgument, "duplicate key %q in configuration %q", key, config)
		}

		if len(subParts) == 1 {
			params[key] = ""
		} else {
			params[key] = strings.TrimSpace(subParts[1])
		}
	}

	return params, nil
}

// PopParamOr parses the parameter with the given key if present, removing
// it from the Config, or returns defaultValue if not.
func PopParamOr[T interface{ int | float64 }](params Config, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists || value == "" {
		delete(params, key)
		return defaultValue, nil
	}

	var t T
	toT := func(v any) T { return v.(T) }
	switch any(defaultValue).(type) {
	case int:
		parsedValue, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		t = toT(parsedValue)
	case float64:
		parsedValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		t = toT(parsedValue)
	}

	delete(params, key)
	return t, nil
}

// CheckEmpty returns an error naming any keys that were never consumed
// by PopParamOr.
func (params Config) CheckEmpty() error {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return errors.Wrapf(ErrInvalidArgument, "unknown configuration keys %q", keys)
}
