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
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

var ErrUnknownCompression = errors.New("unknown compression type")

// Compression of an input file, told by its extension.
type Compression string

const (
	Raw  Compression = ""
	Gzip Compression = ".gz"
	Zlib Compression = ".zz"
	Zstd Compression = ".zst"
	LZ4  Compression = ".lz4"
	XZ   Compression = ".xz"
	LZMA Compression = ".lzma"
)

var factories = map[Compression]func(r io.Reader) (io.ReadCloser, error){
	Gzip: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	Zlib: func(r io.Reader) (io.ReadCloser, error) {
		return zlib.NewReader(r)
	},
	Zstd: func(r io.Reader) (io.ReadCloser, error) {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return d.IOReadCloser(), nil
	},
	LZ4: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(lz4.NewReader(r)), nil
	},
	XZ: func(r io.Reader) (io.ReadCloser, error) {
		x, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(x), nil
	},
	LZMA: func(r io.Reader) (io.ReadCloser, error) {
		x, err := lzma.NewReader(r)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(x), nil
	},
}

// archives are recognized but cannot be streamed.
var archives = map[string]struct{}{
	".zip": {},
	".bz2": {},
	".7z":  {},
	".tar": {},
	".rar": {},
}

// CompressionOf returns the compression of the named file and the name
// without the compression extension.
func CompressionOf(name string) (Compression, string, error) {
	ext := strings.ToLower(filepath.Ext(name))

	if _, ok := factories[Compression(ext)]; ok {
		return Compression(ext), strings.TrimSuffix(name, filepath.Ext(name)), nil
	}

	if _, ok := archives[ext]; ok {
		return Raw, name, fmt.Errorf("%s: %w", ext, ErrUnknownCompression)
	}

	return Raw, name, nil
}

// Unpack wraps r with the decompressor of c.
func Unpack(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Raw {
		return io.NopCloser(r), nil
	}

	factory, ok := factories[c]
	if !ok {
		return nil, fmt.Errorf("%q: %w", string(c), ErrUnknownCompression)
	}

	rdr, err := factory(r)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	return rdr, nil
}
