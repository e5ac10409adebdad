// Package loader reads raw hexlight option maps from configuration files and
// the environment. Maps are handed to config.Merge, which owns validation.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader produces a raw option map. A missing source yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// ReadFileFunc reads a whole file. os.ReadFile satisfies it.
type ReadFileFunc func(path string) ([]byte, error)

// Format is a configuration file syntax.
type Format uint8

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("unsupported config format %q", ext)
	}
}

// File loads one configuration file.
type File struct {
	Path   string
	Format Format
	read   ReadFileFunc
}

// NewFile returns a loader for path that reads through read. A nil read
// uses the OS file system.
func NewFile(path string, format Format, read ReadFileFunc) *File {
	if read == nil {
		read = os.ReadFile
	}
	return &File{Path: path, Format: format, read: read}
}

// ForPath returns a File loader whose format matches the extension of path.
func ForPath(path string, read ReadFileFunc) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, format, read), nil
}

// LoadFile reads path from disk in the format its extension names.
func LoadFile(path string) (map[string]any, error) {
	f, err := ForPath(path, nil)
	if err != nil {
		return nil, err
	}
	return f.Load()
}

// Load implements Loader.
func (f *File) Load() (map[string]any, error) {
	data, err := f.read(f.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", f.Path, err)
	}
	return Parse(f.Format, f.Path, data)
}

// Parse decodes data in format. source names the data in errors.
func Parse(format Format, source string, data []byte) (map[string]any, error) {
	var raw map[string]any
	var err error
	if format == YAML {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = toml.Unmarshal(data, &raw)
	}
	if err == nil {
		return raw, nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var decodeErr *toml.DecodeError
	var typeErr *yaml.TypeError
	switch {
	case errors.As(err, &decodeErr):
		perr.Line, perr.Column = decodeErr.Position()
	case errors.As(err, &typeErr) && len(typeErr.Errors) > 0:
		perr.Message = typeErr.Errors[0]
	}
	return nil, perr
}

// ParseError locates a syntax error in a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Overlay returns a new map holding dst with src laid over it.
func Overlay(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
