// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"m4o.io/val3d/internal/input"
)

type file struct {
	Packer
	f *os.File
}

func (w *file) Close() error {
	return errors.Join(w.Packer.Close(), w.f.Close())
}

// Create creates the file at path and returns a writer packing into it with
// the compression told by the extension of path. Closing the writer closes
// the file.
func Create(path string) (io.WriteCloser, error) {
	c, _, err := input.CompressionOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s: %w", path, err)
	}

	p, err := NewPacker(f, c)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("unable to close file", "path", path, "error", cerr)
		}

		return nil, err
	}

	return &file{Packer: p, f: f}, nil
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}

	return nil
}

// WriteJSONFile writes v as indented JSON to a new file at path, compressed
// according to its extension.
func WriteJSONFile(path string, v any) (err error) {
	w, err := Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close %s: %w", path, cerr)
		}
	}()

	return WriteJSON(w, v)
}
