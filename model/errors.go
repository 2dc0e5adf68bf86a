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

package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Finding is a single recorded error with its context.
type Finding struct {
	Code        Code   `json:"code"`
	Description string `json:"description"`
	Info        string `json:"info"`
}

// Errors accumulates findings for one scope (dataset, feature, primitive or
// surface), keyed by code. The zero value is ready to use. Findings are never
// removed once recorded.
type Errors struct {
	byCode map[Code][]string
}

// Add records a finding for code with a human-readable context string.
func (e *Errors) Add(code Code, info string) {
	if e.byCode == nil {
		e.byCode = make(map[Code][]string)
	}

	e.byCode[code] = append(e.byCode[code], info)
}

// HasErrors checks if any finding was recorded.
func (e *Errors) HasErrors() bool {
	return len(e.byCode) > 0
}

// UniqueCodes returns the codes present, in ascending order.
func (e *Errors) UniqueCodes() []Code {
	codes := make([]Code, 0, len(e.byCode))
	for code := range e.byCode {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	return codes
}

// Findings returns every recorded finding ordered by code, then by the order
// in which they were added.
func (e *Errors) Findings() []Finding {
	return e.FindingsWithPrefix("")
}

// FindingsWithPrefix is Findings with prefix prepended to each context string.
func (e *Errors) FindingsWithPrefix(prefix string) []Finding {
	var findings []Finding

	for _, code := range e.UniqueCodes() {
		for _, info := range e.byCode[code] {
			if prefix != "" {
				info = prefix + " | " + info
			}

			findings = append(findings, Finding{Code: code, Description: code.String(), Info: info})
		}
	}

	return findings
}

// Text renders the findings in the plain report layout, one finding per
// two lines.
func (e *Errors) Text() string {
	var sb strings.Builder

	for _, f := range e.Findings() {
		fmt.Fprintf(&sb, "%d -- %s\n\tInfo: %s\n", f.Code, f.Description, f.Info)
	}

	return sb.String()
}

// MergeCodes adds the codes of the findings to the set.
func MergeCodes(set map[Code]struct{}, codes []Code) {
	for _, c := range codes {
		set[c] = struct{}{}
	}
}

// SortedCodes returns the codes of the set in ascending order.
func SortedCodes(set map[Code]struct{}) []Code {
	codes := make([]Code, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}

	slices.Sort(codes)

	return codes
}

var (
	ErrTemplateNotFound = errors.New("geometry template not found")
	ErrEmptyGeometry    = errors.New("empty geometry")
)

// InputError is an ingestion-level failure carrying a 9xx code. It is
// recorded against the single primitive or dataset it concerns.
type InputError struct {
	Code Code
	Info string
	Err  error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %s: %v", int(e.Code), e.Code, e.Info, e.Err)
	}

	return fmt.Sprintf("%d %s: %s", int(e.Code), e.Code, e.Info)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Record adds the error to a scope.
func (e *InputError) Record(errs *Errors) {
	info := e.Info
	if e.Err != nil {
		info = fmt.Sprintf("%s: %v", e.Info, e.Err)
	}

	errs.Add(e.Code, info)
}
