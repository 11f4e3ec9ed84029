// Package codegen generates Go node types implementing node.Node from a
// schema.
package codegen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/treefmt/pkg/node"
	"github.com/cmmoran/treefmt/pkg/schema"
)

const nodePkg = "github.com/cmmoran/treefmt/pkg/node"

// Generator emits one Go file for a schema.
type Generator struct {
	schema     *schema.Schema
	pkgName    string
	importPath string
}

// New initializes a Generator. importPath may be empty when the output
// package is not inside a module.
func New(s *schema.Schema, pkgName, importPath string) *Generator {
	return &Generator{schema: s, pkgName: pkgName, importPath: importPath}
}

// File builds the generated source.
func (g *Generator) File() (*jen.File, error) {
	var f *jen.File
	if g.importPath != "" {
		f = jen.NewFilePathName(g.importPath, g.pkgName)
	} else {
		f = jen.NewFile(g.pkgName)
	}
	f.HeaderComment("Code generated by treefmt. DO NOT EDIT.")
	f.ImportName(nodePkg, "node")

	for _, name := range g.schema.SortedEnums() {
		g.genEnum(f, name, g.schema.Enums[name])
	}
	for _, name := range g.schema.SortedSums() {
		g.genSum(f, name, g.schema.Sums[name])
	}
	for _, r := range g.schema.Records {
		if err := g.genRecord(f, r); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Ident converts a schema name into an exported Go identifier.
func Ident(name string) string {
	return inflect.Camelize(name)
}

func (g *Generator) genEnum(f *jen.File, name string, constants []string) {
	typ := Ident(name)
	namesVar := inflect.CamelizeDownFirst(name) + "Names"

	f.Commentf("%s is a simple sum of %d constants.", typ, len(constants))
	f.Type().Id(typ).Int()

	f.Const().DefsFunc(func(grp *jen.Group) {
		for i, c := range constants {
			if i == 0 {
				grp.Id(typ + Ident(c)).Id(typ).Op("=").Iota()
				continue
			}
			grp.Id(typ + Ident(c))
		}
	})

	f.Var().Id(namesVar).Op("=").Index(jen.Op("...")).String().ValuesFunc(func(grp *jen.Group) {
		for _, c := range constants {
			grp.Lit(c)
		}
	})

	// Out-of-range values render as their decimal value.
	f.Func().Params(jen.Id("e").Id(typ)).Id("Name").Params().String().Block(
		jen.If(jen.Id("e").Op("<").Lit(0).Op("||").Int().Call(jen.Id("e")).Op(">=").Len(jen.Id(namesVar))).Block(
			jen.Return(jen.Qual("strconv", "Itoa").Call(jen.Int().Call(jen.Id("e")))),
		),
		jen.Return(jen.Id(namesVar).Index(jen.Id("e"))),
	)
	f.Func().Params(jen.Id("e").Id(typ)).Id("String").Params().String().Block(
		jen.Return(jen.Id("e").Dot("Name").Call()),
	)
}

func (g *Generator) genSum(f *jen.File, name string, ctors []string) {
	typ := Ident(name)
	f.Commentf("%s is implemented by %s.", typ, strings.Join(ctors, ", "))
	f.Type().Id(typ).Interface(
		jen.Qual(nodePkg, "Node"),
		jen.Id(marker(name)).Params(),
	)
}

func (g *Generator) genRecord(f *jen.File, r *schema.Record) error {
	typ := Ident(r.Name)
	recv := jen.Id("x").Op("*").Id(typ)

	descs := make([]node.Descriptor, len(r.Fields))
	for i, fld := range r.Fields {
		d, err := g.schema.Resolve(fld.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", r.Name, fld.Name, err)
		}
		descs[i] = d
	}

	if r.Comment != "" {
		f.Comment(r.Comment)
	}
	f.Type().Id(typ).StructFunc(func(grp *jen.Group) {
		for i, fld := range r.Fields {
			grp.Id(Ident(fld.Name)).Add(g.goType(descs[i])).Tag(map[string]string{"json": fld.Name, "yaml": fld.Name})
		}
	})

	for _, sum := range g.schema.SumsOf(r.Name) {
		f.Func().Params(jen.Op("*").Id(typ)).Id(marker(sum)).Params().Block()
	}

	f.Func().Params(jen.Op("*").Id(typ)).Id("Label").Params().String().Block(
		jen.Return(jen.Lit(r.Name)),
	)

	f.Func().Params(jen.Op("*").Id(typ)).Id("FieldNames").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(grp *jen.Group) {
			for _, fld := range r.Fields {
				grp.Lit(fld.Name)
			}
		})),
	)

	f.Func().Params(recv).Id("Field").Params(jen.Id("name").String()).Params(jen.Interface(), jen.Bool()).Block(
		jen.Switch(jen.Id("name")).BlockFunc(func(grp *jen.Group) {
			for i, fld := range r.Fields {
				grp.Case(jen.Lit(fld.Name)).Block(fieldReturn(jen.Id("x").Dot(Ident(fld.Name)), descs[i])...)
			}
		}),
		jen.Return(jen.Nil(), jen.False()),
	)

	f.Func().Params(jen.Op("*").Id(typ)).Id("Descriptor").Params(jen.Id("name").String()).Params(jen.Qual(nodePkg, "Descriptor"), jen.Bool()).Block(
		jen.Switch(jen.Id("name")).BlockFunc(func(grp *jen.Group) {
			for i, fld := range r.Fields {
				grp.Case(jen.Lit(fld.Name)).Block(jen.Return(descExpr(descs[i]), jen.True()))
			}
		}),
		jen.Return(jen.Qual(nodePkg, "Descriptor").Values(), jen.False()),
	)

	for i, fld := range r.Fields {
		if descs[i].Kind != node.KindArray {
			continue
		}
		field := Ident(fld.Name)
		f.Commentf("Append%s appends to %s.", Ident(inflection.Singular(fld.Name)), field)
		f.Func().Params(recv).Id("Append"+Ident(inflection.Singular(fld.Name))).
			Params(jen.Id("v").Op("...").Add(g.goType(descs[i].Element()))).Op("*").Id(typ).Block(
			jen.Id("x").Dot(field).Op("=").Append(jen.Id("x").Dot(field), jen.Id("v").Op("...")),
			jen.Return(jen.Id("x")),
		)
	}
	return nil
}

// fieldReturn reports nil required children as missing and nil optionals as
// absent.
func fieldReturn(sel *jen.Statement, d node.Descriptor) []jen.Code {
	switch d.Kind {
	case node.KindRecord:
		return []jen.Code{
			jen.If(sel.Clone().Op("==").Nil()).Block(jen.Return(jen.Nil(), jen.False())),
			jen.Return(sel, jen.True()),
		}
	case node.KindOptional:
		return []jen.Code{
			jen.If(sel.Clone().Op("==").Nil()).Block(jen.Return(jen.Nil(), jen.True())),
			jen.Return(sel, jen.True()),
		}
	}
	return []jen.Code{jen.Return(sel, jen.True())}
}

func (g *Generator) goType(d node.Descriptor) jen.Code {
	switch d.Kind {
	case node.KindInt:
		return jen.Int()
	case node.KindString:
		return jen.String()
	case node.KindEnum:
		return jen.Id(Ident(d.Name))
	case node.KindArray:
		return jen.Index().Add(g.goType(d.Element()))
	case node.KindOptional:
		elem := d.Element()
		switch elem.Kind {
		case node.KindInt, node.KindString, node.KindEnum:
			return jen.Op("*").Add(g.goType(elem))
		}
		return g.goType(elem)
	case node.KindRecord:
		if g.schema.IsSum(d.Name) {
			return jen.Id(Ident(d.Name))
		}
		return jen.Op("*").Id(Ident(d.Name))
	}
	return jen.Qual(nodePkg, "Node")
}

func descExpr(d node.Descriptor) jen.Code {
	switch d.Kind {
	case node.KindInt:
		return jen.Qual(nodePkg, "Int").Call()
	case node.KindString:
		return jen.Qual(nodePkg, "String").Call()
	case node.KindEnum:
		return jen.Qual(nodePkg, "Enum").Call(jen.Lit(d.Name))
	case node.KindRecord:
		return jen.Qual(nodePkg, "RecordOf").Call(jen.Lit(d.Name))
	case node.KindArray:
		return jen.Qual(nodePkg, "Array").Call(descExpr(d.Element()))
	case node.KindOptional:
		return jen.Qual(nodePkg, "Optional").Call(descExpr(d.Element()))
	}
	return jen.Qual(nodePkg, "Descriptor").Values(jen.Dict{
		jen.Id("Kind"): jen.Qual(nodePkg, "KindInvalid"),
	})
}

func marker(sum string) string {
	return "is" + Ident(sum)
}
