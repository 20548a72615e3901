// Package yamlflag provides a command line flag that accepts a YAML document.
package yamlflag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// Value is a flag.Getter that decodes a YAML document into *T.
//
// The YAML document can be specified directly on the command line:
//   --flag="key: value"
// Or it can be read from a file, when the flag value starts with '@':
//   --flag=@file.yaml
//
// JSON is a subset of YAML, so JSON documents are accepted too.
// Keys follow the `json` struct tags of T. An unknown key is an error.
// Decoding merges into the current content of *T, so defaults set beforehand are kept.
type Value[T any] struct {
	ptr *T
}

// New creates a Value that decodes into *ptr.
func New[T any](ptr *T) *Value[T] {
	if ptr == nil {
		ptr = new(T)
	}
	return &Value[T]{ptr: ptr}
}

// Ptr returns the decoding target.
func (v *Value[T]) Ptr() *T {
	return v.ptr
}

// Get implements flag.Getter interface.
func (v *Value[T]) Get() any {
	return v.ptr
}

// Set implements flag.Value interface.
func (v *Value[T]) Set(s string) error {
	doc := []byte(s)
	if filename, ok := strings.CutPrefix(s, "@"); ok {
		var e error
		if doc, e = os.ReadFile(filename); e != nil {
			return e
		}
	}

	j, e := yaml.YAMLToJSON(doc)
	if e != nil {
		return e
	}
	decoder := json.NewDecoder(bytes.NewReader(j))
	decoder.DisallowUnknownFields()
	if e := decoder.Decode(v.ptr); e != nil {
		return fmt.Errorf("%T %w", *v.ptr, e)
	}
	return nil
}

func (v *Value[T]) String() string {
	if v == nil || v.ptr == nil {
		return ""
	}
	j, _ := json.Marshal(v.ptr)
	return string(j)
}
