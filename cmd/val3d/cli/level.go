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

package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// -- slog.Level Value
type levelValue struct {
	value    *slog.Level
	typename string
}

// NewLevelValue creates a cobra Value object for a slog.Level.
func NewLevelValue(def slog.Level, p *slog.Level, typename string) pflag.Value {
	lv := &levelValue{
		value:    p,
		typename: typename,
	}
	*lv.value = def

	return lv
}

func (l *levelValue) Set(val string) error {
	return l.value.UnmarshalText([]byte(val))
}

func (l *levelValue) Type() string {
	return l.typename
}

func (l *levelValue) String() string {
	if l.value == nil {
		return ""
	}

	return strings.ToLower(l.value.String())
}
