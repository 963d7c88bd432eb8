package common

import (
	"path"
	"strings"
)

// DefaultSchemaSuffix marks a Slang file as a shared CPU/GPU schema.
const DefaultSchemaSuffix = ".shared.slang"

const generatedMarker = ".generated"

// NormalizeModuleName folds a module reference to the identifier used as a
// module graph key. Only the final dotted segment is kept.
// Example: "material.Shared-Types" -> "shared_types".
func NormalizeModuleName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// ModuleNameForFile returns the module identifier of a schema file, i.e. its
// base name without the schema suffix.
func ModuleNameForFile(filename, suffix string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if suffix != "" && strings.HasSuffix(base, suffix) {
		return NormalizeModuleName(strings.TrimSuffix(base, suffix))
	}
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	return NormalizeModuleName(base)
}

// GeneratedName maps "lights.shared.slang" to "lights.generated<ext>". Files
// without the schema suffix lose only their final extension.
func GeneratedName(filename, suffix, ext string) string {
	if suffix != "" && strings.HasSuffix(filename, suffix) {
		return strings.TrimSuffix(filename, suffix) + generatedMarker + ext
	}
	stem := filename
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		stem = filename[:idx]
	}
	return stem + generatedMarker + ext
}

// GeneratedModuleName recovers the Slang module segment from a generated file
// name: "point-light.generated.slang" -> "point_light".
func GeneratedModuleName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, generatedMarker, "")
	return strings.ReplaceAll(base, "-", "_")
}
