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

package input

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"m4o.io/val3d/model"
)

// Read decodes a dump named name from r, decompressing it according to the
// extension of name. Failures of the document are reported as in Decode.
func Read(r io.Reader, name string, snapTol float64) (*model.Dataset, error) {
	c, _, err := CompressionOf(name)
	if err != nil {
		ds := model.NewDataset()
		ds.InputFile = name

		ie := &model.InputError{Code: model.FormatNotSupported, Info: "compression", Err: err}
		ie.Record(&ds.Errors)

		return ds, ie
	}

	rdr, err := Unpack(r, c)
	if err != nil {
		ds := model.NewDataset()
		ds.InputFile = name

		ie := &model.InputError{Code: model.InvalidInputFile, Info: "compression", Err: err}
		ie.Record(&ds.Errors)

		return ds, ie
	}

	defer func() {
		if err := rdr.Close(); err != nil {
			slog.Error("unable to close decompressor", "input", name, "error", err)
		}
	}()

	return Decode(rdr, name, snapTol)
}

// ReadFile reads the dump at path. Only failing to open the file prevents a
// dataset from being returned.
func ReadFile(path string, snapTol float64) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, path, snapTol)
}
