// Package schemagen derives a node schema from Go type declarations.
package schemagen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/treefmt/pkg/schema"
)

// Extractor holds state of one extraction run.
type Extractor struct {
	records []*types.TypeName
	enums   []*types.TypeName
	sums    []*types.TypeName
	docs    map[*types.TypeName]string
	tags    map[*types.Var]string
	consts  map[*types.TypeName][]*types.Const
}

// Extract loads the Go package(s) matched by patterns in dir and converts:
//
//   - exported structs                        → records
//   - exported integer types with constants   → enums
//   - exported interfaces implemented by them → sums
func Extract(dir string, patterns ...string) (*schema.Schema, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
		Fset: token.NewFileSet(),
	}, patterns...)
	if err != nil {
		return nil, err
	}

	var errs []error
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			errs = append(errs, e)
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("load packages: %w", errors.Join(errs...))
	}

	x := &Extractor{
		docs:   make(map[*types.TypeName]string),
		tags:   make(map[*types.Var]string),
		consts: make(map[*types.TypeName][]*types.Const),
	}
	var name string
	for _, pkg := range pkgs {
		if name == "" {
			name = pkg.Name
		}
		for _, file := range pkg.Syntax {
			x.collectDecls(pkg.TypesInfo, file)
		}
		x.collectConsts(pkg.Types.Scope())
	}
	return x.build(name)
}

func (x *Extractor) collectDecls(info *types.Info, file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() || !ts.Name.IsExported() || ts.TypeParams != nil {
				continue
			}
			tn, ok := info.Defs[ts.Name].(*types.TypeName)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil {
				doc = gen.Doc
			}
			if doc != nil {
				x.docs[tn] = strings.TrimSpace(doc.Text())
			}

			switch u := tn.Type().Underlying().(type) {
			case *types.Struct:
				x.records = append(x.records, tn)
				if st, ok := ts.Type.(*ast.StructType); ok {
					x.collectTags(info, st)
				}
			case *types.Interface:
				x.sums = append(x.sums, tn)
			case *types.Basic:
				if u.Info()&types.IsInteger != 0 {
					x.enums = append(x.enums, tn)
				}
			}
		}
	}
}

func (x *Extractor) collectTags(info *types.Info, st *ast.StructType) {
	for _, fld := range st.Fields.List {
		if fld.Tag == nil {
			continue
		}
		for _, id := range fld.Names {
			if v, ok := info.Defs[id].(*types.Var); ok {
				x.tags[v] = fld.Tag.Value
			}
		}
	}
}

func (x *Extractor) collectConsts(scope *types.Scope) {
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok {
			continue
		}
		x.consts[named.Obj()] = append(x.consts[named.Obj()], c)
	}
}

func (x *Extractor) build(pkgName string) (*schema.Schema, error) {
	s := &schema.Schema{
		Package: pkgName,
		Enums:   map[string][]string{},
		Sums:    map[string][]string{},
	}

	enums := map[*types.TypeName]bool{}
	for _, tn := range x.enums {
		consts := x.consts[tn]
		if len(consts) == 0 {
			continue
		}
		sort.SliceStable(consts, func(i, j int) bool {
			return constValue(consts[i]) < constValue(consts[j])
		})
		names := make([]string, 0, len(consts))
		for _, c := range consts {
			names = append(names, strings.TrimPrefix(c.Name(), tn.Name()))
		}
		s.Enums[schemaName(tn)] = names
		enums[tn] = true
	}

	sums := map[*types.TypeName]bool{}
	for _, tn := range x.sums {
		iface := tn.Type().Underlying().(*types.Interface)
		if iface.NumMethods() == 0 {
			continue
		}
		var ctors []string
		for _, rec := range x.records {
			if types.Implements(rec.Type(), iface) || types.Implements(types.NewPointer(rec.Type()), iface) {
				ctors = append(ctors, rec.Name())
			}
		}
		if len(ctors) == 0 {
			continue
		}
		s.Sums[schemaName(tn)] = ctors
		sums[tn] = true
	}

	records := map[*types.TypeName]bool{}
	for _, tn := range x.records {
		records[tn] = true
	}

	m := &typeMapper{records: records, enums: enums, sums: sums}
	for _, tn := range x.records {
		st := tn.Type().Underlying().(*types.Struct)
		r := &schema.Record{Name: tn.Name(), Comment: x.docs[tn], Fields: []schema.Field{}}
		for i := 0; i < st.NumFields(); i++ {
			v := st.Field(i)
			if !v.Exported() || v.Embedded() {
				continue
			}
			tag := parseFieldTag(x.tags[v])
			if tag.Omit {
				continue
			}
			expr, ok := m.expr(v.Type())
			if !ok {
				slog.Warn("skipping field with unsupported type", "record", tn.Name(), "field", v.Name(), "type", v.Type().String())
				continue
			}
			if tag.Optional && !strings.HasSuffix(expr, "?") {
				expr += "?"
			}
			name := tag.Name
			if name == "" {
				name = inflect.Underscore(v.Name())
			}
			r.Fields = append(r.Fields, schema.Field{Name: name, Type: expr})
		}
		s.Records = append(s.Records, r)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type typeMapper struct {
	records, enums, sums map[*types.TypeName]bool
}

// expr maps a Go type to a schema type expression. Pointers to records stay
// required; pointers to scalars become optional.
func (m *typeMapper) expr(t types.Type) (string, bool) {
	switch t := t.(type) {
	case *types.Alias:
		return m.expr(types.Unalias(t))
	case *types.Named:
		obj := t.Obj()
		switch {
		case m.records[obj]:
			return obj.Name(), true
		case m.enums[obj], m.sums[obj]:
			return schemaName(obj), true
		}
		return m.expr(t.Underlying())
	case *types.Basic:
		switch {
		case t.Info()&types.IsInteger != 0:
			return "int", true
		case t.Info()&types.IsString != 0:
			return "string", true
		}
	case *types.Slice:
		elem, ok := m.expr(t.Elem())
		return elem + "*", ok
	case *types.Pointer:
		elem, ok := m.expr(t.Elem())
		if !ok {
			return "", false
		}
		if named, isNamed := t.Elem().(*types.Named); isNamed && m.records[named.Obj()] {
			return elem, true
		}
		return elem + "?", true
	}
	return "", false
}

func schemaName(tn *types.TypeName) string {
	return inflect.Underscore(tn.Name())
}

func constValue(c *types.Const) int64 {
	v, _ := constant.Int64Val(constant.ToInt(c.Val()))
	return v
}
