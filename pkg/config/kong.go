package config

import (
	"fmt"
	"io"
	"strings"

	"cuelang.org/go/cue"
	"github.com/alecthomas/kong"
)

// Loader is a kong.ConfigurationLoader for YAML, JSON and CUE files. Use
// it with kong.Configuration and a kong.ConfigFlag.
func Loader(r io.Reader) (kong.Resolver, error) {
	val, err := ReadValue(r)
	if err != nil {
		return nil, err
	}
	return Resolver(val), nil
}

// Resolver resolves kong flags from a CUE value. A flag named max-depth
// is looked up as max_depth; dotted names walk nested structs.
func Resolver(val cue.Value) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		name := strings.ReplaceAll(flag.Name, "-", "_")
		v := val.LookupPath(cue.ParsePath(name))
		if !v.Exists() {
			return nil, nil
		}
		raw, err := scalar(v)
		if err != nil {
			return nil, fmt.Errorf("config key %s: %w", name, err)
		}
		return raw, nil
	})
}

// scalar converts v into a value kong's mappers accept.
func scalar(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.NullKind:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported value of kind %v", v.Kind())
}
