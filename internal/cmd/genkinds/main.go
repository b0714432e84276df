// Command genkinds generates the per-kind Builder methods.
//
// It loads package resource, collects every Factory method of the form
//
//	func (f *Factory) NewX(desc XDesc) (*X, error)
//
// and writes CreateX, CreateXShared, GetX, GetOrAddX, UpdateX, RemoveX and
// AllXs for each kind X.
//
// Usage (from the module root, via go generate):
//
//	go run ./internal/cmd/genkinds -o builder_kinds.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/types"
	"log"
	"os"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

const resourcePkg = "github.com/gogpu/rendergraph/resource"

// Kind is one resource kind found in package resource.
type Kind struct {
	Name string // object type, e.g. Texture2D
	Desc string // description type, e.g. Texture2DDesc
}

func main() {
	var (
		output = flag.String("o", "builder_kinds.go", "output file")
		pkg    = flag.String("pkg", resourcePkg, "package to scan for Factory constructors")
	)
	flag.Parse()

	kinds, err := loadKinds(*pkg)
	if err != nil {
		log.Fatalf("genkinds: %v", err)
	}
	src, err := generate(kinds)
	if err != nil {
		log.Fatalf("genkinds: %v", err)
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil { //nolint:gosec // generated source is world readable
		log.Fatalf("genkinds: %v", err)
	}
	log.Printf("genkinds: wrote %d kinds to %s", len(kinds), *output)
}

// loadKinds type-checks pkgPath and returns its kinds sorted by name.
func loadKinds(pkgPath string) ([]Kind, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName | packages.NeedTypes}, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", pkgPath, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("load %s: got %d packages", pkgPath, len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("load %s: %v", pkgPath, pkgs[0].Errors[0])
	}
	obj := pkgs[0].Types.Scope().Lookup("Factory")
	if obj == nil {
		return nil, fmt.Errorf("%s has no Factory type", pkgPath)
	}
	return kindsOf(types.NewPointer(obj.Type())), nil
}

// kindsOf returns the kinds constructed by the method set of factory.
func kindsOf(factory types.Type) []Kind {
	var kinds []Kind
	mset := types.NewMethodSet(factory)
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() || !strings.HasPrefix(fn.Name(), "New") {
			continue
		}
		if k, ok := constructorKind(fn); ok {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	return kinds
}

// constructorKind reports whether fn is NewX(XDesc) (*X, error).
func constructorKind(fn *types.Func) (Kind, bool) {
	sig := fn.Type().(*types.Signature)
	name := strings.TrimPrefix(fn.Name(), "New")
	if sig.Params().Len() != 1 || sig.Results().Len() != 2 {
		return Kind{}, false
	}
	desc, ok := sig.Params().At(0).Type().(*types.Named)
	if !ok || desc.Obj().Name() != name+"Desc" {
		return Kind{}, false
	}
	ptr, ok := sig.Results().At(0).Type().(*types.Pointer)
	if !ok {
		return Kind{}, false
	}
	obj, ok := ptr.Elem().(*types.Named)
	if !ok || obj.Obj().Name() != name {
		return Kind{}, false
	}
	if sig.Results().At(1).Type().String() != "error" {
		return Kind{}, false
	}
	return Kind{Name: name, Desc: desc.Obj().Name()}, true
}

var kindsTmpl = template.Must(template.New("kinds").Parse(`// Code generated by "genkinds"; DO NOT EDIT.

package rendergraph

import "github.com/gogpu/rendergraph/resource"
{{range .}}
// Create{{.Name}} establishes or updates the {{.Name}} named name.
func (b *Builder) Create{{.Name}}(name string, desc resource.{{.Desc}}, flags ...CreationFlags) (*Ref[*resource.{{.Name}}], error) {
	return createKind(b, name, desc, b.factory.New{{.Name}}, flags)
}

// Create{{.Name}}Shared creates name as an alias of the {{.Name}} registered as source.
func (b *Builder) Create{{.Name}}Shared(name string, desc resource.{{.Desc}}, source string) (*Ref[*resource.{{.Name}}], error) {
	return createShared(b, name, desc, b.factory.New{{.Name}}, source)
}

// Get{{.Name}} returns the {{.Name}} named name.
func (b *Builder) Get{{.Name}}(name string) (*Ref[*resource.{{.Name}}], error) {
	return GetResource[*resource.{{.Name}}](b, name)
}

// GetOrAdd{{.Name}} returns the {{.Name}} named name, declaring it when absent.
func (b *Builder) GetOrAdd{{.Name}}(name string) (*Ref[*resource.{{.Name}}], error) {
	return GetOrAddResource[*resource.{{.Name}}](b, name)
}

// Update{{.Name}} rebuilds the {{.Name}} named name from desc.
func (b *Builder) Update{{.Name}}(name string, desc resource.{{.Desc}}) (*Ref[*resource.{{.Name}}], error) {
	return UpdateResource[*resource.{{.Name}}](b, name, desc)
}

// Remove{{.Name}} removes the {{.Name}} named name.
func (b *Builder) Remove{{.Name}}(name string) bool {
	return RemoveResource[*resource.{{.Name}}](b, name)
}

// All{{.Name}}s returns every live {{.Name}}.
func (b *Builder) All{{.Name}}s() []*resource.{{.Name}} {
	return Objects[*resource.{{.Name}}](b.reg)
}
{{end}}`))

// generate renders and formats the Builder methods for kinds.
func generate(kinds []Kind) ([]byte, error) {
	var buf bytes.Buffer
	if err := kindsTmpl.Execute(&buf, kinds); err != nil {
		return nil, err
	}
	src, err := imports.Process("builder_kinds.go", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}
