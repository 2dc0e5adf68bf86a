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

// Package output writes reports, compressed according to the extension of
// the file they are written to.
package output

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/val3d/internal/input"
)

// Packer compresses what is written to it. Be sure to call the Close method
// to flush the packed contents to the underlying writer.
type Packer = io.WriteCloser

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// NewPacker creates the appropriate Packer for the compression. The
// underlying writer is not closed by the packer.
func NewPacker(w io.Writer, c input.Compression) (Packer, error) {
	switch c {
	case input.Raw:
		return nopCloserWriter{w}, nil
	case input.Gzip:
		return gzip.NewWriter(w), nil
	case input.Zlib:
		return zlib.NewWriter(w), nil
	case input.Zstd:
		return zstd.NewWriter(w)
	case input.LZ4:
		return lz4.NewWriter(w), nil
	case input.XZ:
		return xz.NewWriter(w)
	case input.LZMA:
		return lzma.NewWriter(w)
	default:
		return nil, fmt.Errorf("%q: %w", c, input.ErrUnknownCompression)
	}
}
