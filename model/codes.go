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

import "strconv"

// Code is a stable error code. The hundreds digit gives the scope of the
// finding: 1 ring, 2 polygon, 3 shell, 4 solid, 5 composite solid, 6 feature
// and 9 dataset or input.
type Code int

// Ring.
const (
	TooFewPoints          Code = 101
	ConsecutivePointsSame Code = 102
	RingNotClosed         Code = 103
	RingSelfIntersection  Code = 104
	RingCollapsed         Code = 105
)

// Polygon.
const (
	IntersectionRings                Code = 201
	DuplicatedRings                  Code = 202
	NonPlanarPolygonDistancePlane    Code = 203
	NonPlanarPolygonNormalsDeviation Code = 204
	PolygonInteriorDisconnected      Code = 205
	InnerRingOutside                 Code = 206
	InnerRingsNested                 Code = 207
	OrientationRingsSame             Code = 208
)

// Shell.
const (
	NotValid2Manifold       Code = 300
	TooFewPolygons          Code = 301
	ShellNotClosed          Code = 302
	NonManifoldVertex       Code = 303
	NonManifoldEdge         Code = 304
	SeparateParts           Code = 305
	ShellSelfIntersection   Code = 306
	PolygonWrongOrientation Code = 307
	VerticesNotUsed         Code = 309
)

// Solid.
const (
	IntersectionShells    Code = 401
	DuplicatedShells      Code = 402
	InnerShellOutside     Code = 403
	InteriorDisconnected  Code = 404
	WrongOrientationShell Code = 405
)

// Composite solid.
const (
	IntersectionSolids Code = 501
	DuplicatedSolids   Code = 502
	DisconnectedSolids Code = 503
)

// Feature.
const (
	BuildingPartsOverlap Code = 601
)

// Dataset and input.
const (
	InvalidInputFile     Code = 901
	EmptyPrimitive       Code = 902
	WrongInputParameters Code = 903
	FormatNotSupported   Code = 904
	UnknownError         Code = 999
)

var codeNames = map[Code]string{
	TooFewPoints:          "TOO_FEW_POINTS",
	ConsecutivePointsSame: "CONSECUTIVE_POINTS_SAME",
	RingNotClosed:         "RING_NOT_CLOSED",
	RingSelfIntersection:  "RING_SELF_INTERSECTION",
	RingCollapsed:         "RING_COLLAPSED",

	IntersectionRings:                "INTERSECTION_RINGS",
	DuplicatedRings:                  "DUPLICATED_RINGS",
	NonPlanarPolygonDistancePlane:    "NON_PLANAR_POLYGON_DISTANCE_PLANE",
	NonPlanarPolygonNormalsDeviation: "NON_PLANAR_POLYGON_NORMALS_DEVIATION",
	PolygonInteriorDisconnected:      "POLYGON_INTERIOR_DISCONNECTED",
	InnerRingOutside:                 "INNER_RING_OUTSIDE",
	InnerRingsNested:                 "INNER_RINGS_NESTED",
	OrientationRingsSame:             "ORIENTATION_RINGS_SAME",

	NotValid2Manifold:       "NOT_VALID_2_MANIFOLD",
	TooFewPolygons:          "TOO_FEW_POLYGONS",
	ShellNotClosed:          "SHELL_NOT_CLOSED",
	NonManifoldVertex:       "NON_MANIFOLD_VERTEX",
	NonManifoldEdge:         "NON_MANIFOLD_EDGE",
	SeparateParts:           "SEPARATE_PARTS",
	ShellSelfIntersection:   "SHELL_SELF_INTERSECTION",
	PolygonWrongOrientation: "POLYGON_WRONG_ORIENTATION",
	VerticesNotUsed:         "VERTICES_NOT_USED",

	IntersectionShells:    "INTERSECTION_SHELLS",
	DuplicatedShells:      "DUPLICATED_SHELLS",
	InnerShellOutside:     "INNER_SHELL_OUTSIDE",
	InteriorDisconnected:  "INTERIOR_DISCONNECTED",
	WrongOrientationShell: "WRONG_ORIENTATION_SHELL",

	IntersectionSolids: "INTERSECTION_SOLIDS",
	DuplicatedSolids:   "DUPLICATED_SOLIDS",
	DisconnectedSolids: "DISCONNECTED_SOLIDS",

	BuildingPartsOverlap: "BUILDINGPARTS_OVERLAP",

	InvalidInputFile:     "INVALID_INPUT_FILE",
	EmptyPrimitive:       "EMPTY_PRIMITIVE",
	WrongInputParameters: "WRONG_INPUT_PARAMETERS",
	FormatNotSupported:   "FORMAT_NOT_SUPPORTED",
	UnknownError:         "UNKNOWN_ERROR",
}

// String returns the upper-case name of the code, e.g. "RING_NOT_CLOSED".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// IsInput checks if the code is a dataset or input level (9xx) code rather
// than a geometric finding.
func (c Code) IsInput() bool {
	return c >= 900
}
