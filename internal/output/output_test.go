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

package output_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/val3d/internal/input"
	"m4o.io/val3d/internal/output"
)

var compressions = []input.Compression{
	input.Raw, input.Gzip, input.Zlib, input.Zstd, input.LZ4, input.XZ, input.LZMA,
}

func TestNewPacker(t *testing.T) {
	data := bytes.Repeat([]byte(`{"validity": true}`), 64)

	for _, c := range compressions {
		t.Run("compression"+string(c), func(t *testing.T) {
			var buf bytes.Buffer

			p, err := output.NewPacker(&buf, c)
			require.NoError(t, err)

			_, err = p.Write(data)
			require.NoError(t, err)
			require.NoError(t, p.Close())

			r, err := input.Unpack(&buf, c)
			require.NoError(t, err)

			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestNewPackerUnknown(t *testing.T) {
	_, err := output.NewPacker(io.Discard, input.Compression(".bz2"))
	assert.ErrorIs(t, err, input.ErrUnknownCompression)
}

func TestWriteJSONFile(t *testing.T) {
	report := map[string]any{"type": "val3d_report", "validity": false, "all_errors": []int{302}}

	dir := t.TempDir()

	for _, name := range []string{"report.json", "report.json.zst", "report.json.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, output.WriteJSONFile(path, report))

			f, err := os.Open(path)
			require.NoError(t, err)

			defer f.Close()

			c, _, err := input.CompressionOf(path)
			require.NoError(t, err)

			r, err := input.Unpack(f, c)
			require.NoError(t, err)

			defer r.Close()

			var got map[string]any
			require.NoError(t, json.NewDecoder(r).Decode(&got))
			assert.Equal(t, "val3d_report", got["type"])
			assert.Equal(t, []any{302.0}, got["all_errors"])
		})
	}
}

func TestCreateErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := output.Create(filepath.Join(dir, "report.tar"))
	assert.ErrorIs(t, err, input.ErrUnknownCompression)

	_, err = output.Create(filepath.Join(dir, "missing", "report.json"))
	assert.Error(t, err)
}
