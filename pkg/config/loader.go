// Package config loads YAML, JSON and CUE files as CUE values.
//
// It backs both the tns configuration file and the documents the CLI and
// server convert to and from tnetstrings. CUE is the underlying parser for
// every format, so YAML, JSON and CUE inputs can be unified with each
// other.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/encoding/yaml"
)

// LoadValueFromReader loads a document from an io.Reader and returns a
// CUE value. The content is parsed as YAML, which is a superset of JSON.
// For CUE source, use ReadValue.
func LoadValueFromReader(r io.Reader) (cue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read document: %w", err)
	}
	return buildYAML(cuecontext.New(), "", data)
}

// ReadValue loads a document in any supported format from an io.Reader.
// The content is parsed as YAML (and so JSON) first; if that fails it is
// compiled as CUE.
func ReadValue(r io.Reader) (cue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read document: %w", err)
	}
	return readBytes(cuecontext.New(), "", data)
}

func readBytes(ctx *cue.Context, filename string, data []byte) (cue.Value, error) {
	val, yamlErr := buildYAML(ctx, filename, data)
	if yamlErr == nil {
		return val, nil
	}
	val = ctx.CompileBytes(data, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("document is neither YAML (%v) nor CUE: %w", yamlErr, err)
	}
	return val, nil
}

func buildYAML(ctx *cue.Context, filename string, data []byte) (cue.Value, error) {
	// An empty YAML stream is null, but an empty document should be an
	// empty struct.
	if len(bytes.TrimSpace(data)) == 0 {
		return ctx.CompileString("{}"), nil
	}

	file, err := yaml.Extract(filename, data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	val := ctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
	}
	return val, nil
}

// LoadValue loads a file and returns a CUE value.
//
// For .cue files: Uses CUE's load.Instances to support CUE packages with imports and modules.
// For .yaml/.yml/.json files: Uses direct parsing for standalone data files.
// For directories: Loads all .cue files as a package (supports imports between files).
// Anything else is tried as YAML, then CUE.
func LoadValue(path string) (cue.Value, error) {
	return loadValue(cuecontext.New(), path)
}

func loadValue(ctx *cue.Context, path string) (cue.Value, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to stat path: %w", err)
	}

	if fileInfo.IsDir() || strings.HasSuffix(strings.ToLower(path), ".cue") {
		return loadInstance(ctx, path, fileInfo.IsDir())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read file: %w", err)
	}

	var val cue.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return buildYAML(ctx, path, data)
	case ".json":
		// JSON can be compiled directly
		val = ctx.CompileBytes(data, cue.Filename(path))
	default:
		return readBytes(ctx, path, data)
	}

	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
	}
	return val, nil
}

func loadInstance(ctx *cue.Context, path string, dir bool) (cue.Value, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to resolve path: %w", err)
	}

	cfg := &load.Config{
		Dir:       filepath.Dir(absPath),
		DataFiles: true,
	}
	args := []string{absPath}
	if dir {
		cfg.Dir = absPath
		args = []string{"."}
	}

	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("no instances loaded from %s", path)
	}

	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, fmt.Errorf("failed to load %s: %w", path, inst.Err)
	}

	val := ctx.BuildInstance(inst)
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
	}
	return val, nil
}

// LoadFromFile loads a file or directory into the specified type. Field
// names follow the json struct tags of T.
//
// Examples:
//
//	s, err := LoadFromFile[Settings]("tns.yaml")
//	s, err := LoadFromFile[Settings]("./config")  // loads .cue directory
func LoadFromFile[T any](path string) (*T, error) {
	val, err := LoadValue(path)
	if err != nil {
		return nil, err
	}

	var out T
	if err := val.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &out, nil
}

// LoadAndUnifyPaths loads every file matching the glob patterns and
// unifies them into one value. Patterns that match nothing are skipped;
// if nothing matches at all the result is an empty struct. Conflicting
// values across files are an error.
func LoadAndUnifyPaths(patterns []string) (cue.Value, error) {
	ctx := cuecontext.New()
	var val cue.Value

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return cue.Value{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			v, err := loadValue(ctx, path)
			if err != nil {
				return cue.Value{}, fmt.Errorf("%s: %w", path, err)
			}
			if val.Exists() {
				val = val.Unify(v)
			} else {
				val = v
			}
		}
	}

	if !val.Exists() {
		return ctx.CompileString("{}"), nil
	}
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("failed to unify documents: %w", err)
	}
	return val, nil
}
