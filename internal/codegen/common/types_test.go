package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinTypeSize(t *testing.T) {
	cases := []struct {
		typ  string
		size int
		ok   bool
	}{
		{"float", 4, true},
		{"half", 4, true},
		{"float16_t", 2, true},
		{"float16_t3", 6, true},
		{"uint4", 16, true},
		{"float3x3", 48, true},
		{"float4x4", 64, true},
		{"bool2", 0, false},
		{"float5", 0, false},
		{"Light", 0, false},
	}
	for _, tc := range cases {
		size, ok := BuiltinTypeSize(tc.typ)
		assert.Equal(t, tc.ok, ok, tc.typ)
		assert.Equal(t, tc.size, size, tc.typ)
	}
}

func TestSortedTypeMappings_LongestFirst(t *testing.T) {
	m := SortedTypeMappings()
	for i := 1; i < len(m); i++ {
		assert.GreaterOrEqual(t, len(m[i-1].Slang), len(m[i].Slang))
	}
	assert.Equal(t, "uint32_t", CppTypeName(" uint "))
	assert.Equal(t, "Light", CppTypeName("Light"))
}

func TestParseArrayLength(t *testing.T) {
	cases := map[string]int{"4": 4, "0x10": 16, "8u": 8, " 3 ": 3}
	for in, want := range cases {
		n, ok := ParseArrayLength(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, n, in)
	}
	for _, bad := range []string{"", "kCount", "-1", "?"} {
		_, ok := ParseArrayLength(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, 32, AlignUp(17, 16))
	assert.Equal(t, 16, AlignUp(16, 16))
}
