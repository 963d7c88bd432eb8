package cpp

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/layout"
	"github.com/april-engine/schemagen/internal/codegen/meta"
	"github.com/april-engine/schemagen/internal/codegen/transform"
)

func tplFuncs(layouts map[string]meta.Layout) template.FuncMap {
	return template.FuncMap{
		"cpptype": common.CppTypeName,
		"backing": func(t string) string {
			if t == "" {
				t = "uint"
			}
			return common.CppTypeName(t)
		},
		"expr":   transform.Expr,
		"body":   transform.Body,
		"indent": common.Reindent,
		"layoutComment": func(name string) string {
			l, ok := layouts[name]
			if !ok {
				return ""
			}
			return layoutComment(l)
		},
		"alignment": func() int { return layout.Alignment },
		"sizeAssert": func(name, alias string) string {
			l, ok := layouts[name]
			if !ok {
				return ""
			}
			return sizeAssert(alias, l)
		},
	}
}

func layoutComment(l meta.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    // layout: %d bytes\n", l.Size)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "    //   %s %s: offset %d, size %d\n", f.Type, f.Name, f.Offset, f.Size)
	}
	return b.String()
}

// sizeAssert pins the resolved size in the C++ build. Empty structs are left
// out since C++ never gives a type a size of zero.
func sizeAssert(alias string, l meta.Layout) string {
	if l.Size == 0 {
		return ""
	}
	return fmt.Sprintf("    static_assert(sizeof(%s) == %d, \"Size mismatch for %s\");\n", alias, l.Size, alias)
}
