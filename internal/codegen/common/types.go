package common

import (
	"sort"
	"strconv"
	"strings"
)

// TypeMapping pairs a Slang type name with its C++ spelling.
type TypeMapping struct {
	Slang string
	Cpp   string
}

// slangToCpp is ordered so that ties in SortedTypeMappings stay stable.
var slangToCpp = []TypeMapping{
	{"void", "void"},
	{"bool", "bool"},
	{"int", "int32_t"},
	{"uint", "uint32_t"},
	{"float", "float"},
	{"half", "float"},
	{"float16_t", "float16_t"},
	{"float16_t2", "float16_t2"},
	{"float16_t3", "float16_t3"},
	{"float16_t4", "float16_t4"},
	{"float2", "float2"},
	{"float3", "float3"},
	{"float4", "float4"},
	{"int2", "int2"},
	{"int3", "int3"},
	{"int4", "int4"},
	{"uint2", "uint2"},
	{"uint3", "uint3"},
	{"uint4", "uint4"},
	{"float2x2", "float2x2"},
	{"float3x3", "float3x3"},
	{"float4x4", "float4x4"},
}

// CastTypes lists the primitive casts rewritten to static_cast, in rewrite order.
var CastTypes = []TypeMapping{
	{"bool", "bool"},
	{"int", "int32_t"},
	{"uint", "uint32_t"},
	{"float", "float"},
	{"uint16_t", "uint16_t"},
	{"int16_t", "int16_t"},
}

// scalarSizes holds the byte size of each scalar element type.
var scalarSizes = map[string]int{
	"bool":      4,
	"int":       4,
	"uint":      4,
	"float":     4,
	"half":      4,
	"float16_t": 2,
}

// SortedTypeMappings returns the type table longest Slang name first, so a
// shorter name is never substituted inside a longer one.
func SortedTypeMappings() []TypeMapping {
	out := make([]TypeMapping, len(slangToCpp))
	copy(out, slangToCpp)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Slang) > len(out[j].Slang)
	})
	return out
}

// CppTypeName maps a Slang type token to C++. Unknown tokens pass through.
func CppTypeName(slangType string) string {
	token := strings.TrimSpace(slangType)
	for _, m := range slangToCpp {
		if m.Slang == token {
			return m.Cpp
		}
	}
	return token
}

// BuiltinTypeSize returns the byte size of a scalar, vector or matrix type.
//
// Vectors are component count × element size. Matrices use padded 4-wide rows
// for 3x3, so float3x3 is 48 bytes rather than 36.
func BuiltinTypeSize(typeName string) (int, bool) {
	if size, ok := scalarSizes[typeName]; ok {
		return size, true
	}
	switch typeName {
	case "float2x2":
		return 16, true
	case "float3x3":
		return 48, true
	case "float4x4":
		return 64, true
	}
	if len(typeName) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(typeName[len(typeName)-1:])
	if err != nil || n < 2 || n > 4 {
		return 0, false
	}
	elem, ok := scalarSizes[typeName[:len(typeName)-1]]
	if !ok {
		return 0, false
	}
	switch typeName[:len(typeName)-1] {
	case "float", "int", "uint", "float16_t":
		return elem * n, true
	}
	return 0, false
}

// BuiltinTypeSizes returns every sized builtin type, for seeding resolver contexts.
func BuiltinTypeSizes() map[string]int {
	out := make(map[string]int, len(slangToCpp))
	for _, m := range slangToCpp {
		if size, ok := BuiltinTypeSize(m.Slang); ok {
			out[m.Slang] = size
		}
	}
	return out
}

// AlignUp rounds value up to the next multiple of alignment.
func AlignUp(value, alignment int) int {
	if alignment <= 0 {
		return value
	}
	return (value + alignment - 1) / alignment * alignment
}

// ParseArrayLength parses an integer literal such as "4", "0x10" or "8u".
func ParseArrayLength(token string) (int, bool) {
	token = strings.TrimSpace(token)
	token = strings.TrimRight(token, "uUlL")
	if token == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(token, 0, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return int(n), true
}
