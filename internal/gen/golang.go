package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/json2code/internal/ir"
)

const (
	pathdescPath = "github.com/koskimas/json2code/pkg/pathdesc"

	idRecvEnum   = "e"
	idParamValue = "value"
	idParamFrom  = "from"
	idParamTo    = "to"
	idParamStr   = "s"
	idParamData  = "data"

	idVarClone = "clone"
	idVarItems = "items"
	idVarErr   = "err"

	suffixNumItems = "NumItems"
	suffixValues   = "Values"
	suffixItems    = "Items"
	suffixRoute    = "Route"
	suffixRoutes   = "Routes"

	prefixParse  = "Parse"
	prefixGetter = "Get"
	prefixSetter = "Set"

	methodClone  = "Clone"
	methodAssign = "Assign"
	methodUpdate = "Update"
)

// goBackend renders units into Go source files of one package. It remembers
// the top level identifiers of every unit it has rendered because all the
// files end up in the same package.
type goBackend struct {
	pkg      string
	declared map[string]string
}

func newGoBackend(pkg string) *goBackend {
	return &goBackend{
		pkg:      pkg,
		declared: make(map[string]string),
	}
}

func (b *goBackend) Render(unit *ir.Unit) ([]byte, error) {
	f := jen.NewFile(b.pkg)
	f.HeaderComment(generatedHeader)
	f.ImportName(pathdescPath, "pathdesc")

	for i := range unit.Records {
		if err := b.genRecord(f, unit, &unit.Records[i]); err != nil {
			return nil, err
		}
	}

	for i := range unit.Routes {
		if err := b.genRoute(f, unit, &unit.Routes[i]); err != nil {
			return nil, err
		}
	}

	if err := b.genRouteList(f, unit); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf(`failed to render Go code for "%s": %w`, unit.File, err)
	}

	return buf.Bytes(), nil
}

func (b *goBackend) declare(unit *ir.Unit, names ...string) error {
	for _, name := range names {
		if name == "" {
			return fmt.Errorf(`failed to generate Go code for "%s": empty identifier`, unit.File)
		}

		if prev, ok := b.declared[name]; ok {
			return fmt.Errorf(`failed to generate Go code for "%s": identifier "%s" is already declared by "%s"`, unit.File, name, prev)
		}

		b.declared[name] = unit.File
	}

	return nil
}

func (b *goBackend) genRecord(f *jen.File, unit *ir.Unit, r *ir.Record) error {
	for i := range r.Enums {
		if err := b.genEnum(f, unit, &r.Enums[i]); err != nil {
			return err
		}
	}

	name := goName(r.Name)
	accessors := goName(r.Accessors().Name)
	setters := goName(r.Setters().Name)

	if err := b.declare(unit, name, accessors, setters); err != nil {
		return err
	}

	fields, err := recordFieldNames(r)
	if err != nil {
		return err
	}

	if r.Description != "" {
		f.Comment(oneLine(r.Description))
	}

	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, fd := range r.Fields {
			if fd.Description != "" {
				g.Comment(oneLine(fd.Description))
			}

			g.Id(fields[fd.Name]).Add(goType(fd.Type)).Tag(map[string]string{"json": jsonTag(fd)})
		}
	})
	f.Empty()

	genCapability(f, r.Accessors(), accessors, fields)
	genCapability(f, r.Setters(), setters, fields)

	recv := receiverName(name)
	for _, fd := range r.Fields {
		genGetterAndSetter(f, name, recv, fields[fd.Name], fd)
	}

	for _, kind := range []ir.OperationKind{ir.CopyConstruct, ir.AssignFrom, ir.UpdateInto} {
		if op, ok := r.FindOperation(kind); ok {
			genOperation(f, r, *op, name, recv, accessors, setters, fields)
		}
	}

	return nil
}

// recordFieldNames maps serialized field names to Go field names and makes
// sure the struct can be compiled.
func recordFieldNames(r *ir.Record) (map[string]string, error) {
	fields := make(map[string]string, len(r.Fields))
	methods := map[string]bool{
		methodClone:  true,
		methodAssign: true,
		methodUpdate: true,
	}

	taken := make(map[string]string, len(r.Fields))
	for _, fd := range r.Fields {
		n := goName(fd.Name)
		if n == "" {
			return nil, fmt.Errorf(`field "%s" of record "%s" has no usable Go name`, fd.Name, r.Name)
		}

		if prev, ok := taken[n]; ok {
			return nil, fmt.Errorf(`fields "%s" and "%s" of record "%s" have the same Go name "%s"`, prev, fd.Name, r.Name, n)
		}

		taken[n] = fd.Name
		fields[fd.Name] = n
		methods[prefixGetter+n] = true
		methods[prefixSetter+n] = true
	}

	for n, fd := range taken {
		if methods[n] {
			return nil, fmt.Errorf(`field "%s" of record "%s" collides with the generated method "%s"`, fd, r.Name, n)
		}
	}

	return fields, nil
}

func genCapability(f *jen.File, c ir.Capability, name string, fields map[string]string) {
	f.Type().Id(name).InterfaceFunc(func(g *jen.Group) {
		for _, fd := range c.Fields {
			if c.Setters {
				g.Id(prefixSetter + fields[fd.Name]).Params(goType(fd.Type))
			} else {
				g.Id(prefixGetter + fields[fd.Name]).Params().Add(goType(fd.Type))
			}
		}
	})
	f.Empty()
}

func genGetterAndSetter(f *jen.File, name string, recv string, field string, fd ir.Field) {
	f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(prefixGetter + field).Params().Add(goType(fd.Type)).Block(
		jen.Return(jen.Id(recv).Dot(field)),
	)
	f.Empty()

	f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(prefixSetter + field).Params(
		jen.Id(idParamValue).Add(goType(fd.Type)),
	).Block(
		jen.Id(recv).Dot(field).Op("=").Id(idParamValue),
	)
	f.Empty()
}

func genOperation(f *jen.File, r *ir.Record, op ir.Operation, name string, recv string, accessors string, setters string, fields map[string]string) {
	switch op.Kind {
	case ir.CopyConstruct:
		f.Commentf("%s returns a one level copy of %s. List fields get new backing arrays but their elements are copied as is.", methodClone, recv)
		f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(methodClone).Params().Op("*").Id(name).BlockFunc(func(g *jen.Group) {
			g.Id(idVarClone).Op(":=").Op("*").Id(recv)

			for _, fn := range op.Fields {
				fd, _ := r.FindField(fn)
				if fd.Type.Kind == ir.KindList {
					g.Id(idVarClone).Dot(fields[fn]).Op("=").Qual("slices", "Clone").Call(jen.Id(recv).Dot(fields[fn]))
				}
			}

			g.Return(jen.Op("&").Id(idVarClone))
		})
	case ir.AssignFrom:
		f.Commentf("%s copies every field from `%s`.", methodAssign, idParamFrom)
		f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(methodAssign).Params(jen.Id(idParamFrom).Id(accessors)).BlockFunc(func(g *jen.Group) {
			for _, fn := range op.Fields {
				fd, _ := r.FindField(fn)
				g.Id(recv).Dot(fields[fn]).Op("=").Add(copied(fd.Type, jen.Id(idParamFrom).Dot(prefixGetter+fields[fn]).Call()))
			}
		})
	case ir.UpdateInto:
		f.Commentf("%s copies every field into `%s`.", methodUpdate, idParamTo)
		f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(methodUpdate).Params(jen.Id(idParamTo).Id(setters)).BlockFunc(func(g *jen.Group) {
			for _, fn := range op.Fields {
				fd, _ := r.FindField(fn)
				g.Id(idParamTo).Dot(prefixSetter + fields[fn]).Call(copied(fd.Type, jen.Id(recv).Dot(fields[fn])))
			}
		})
	}

	f.Empty()
}

// copied wraps list values in `slices.Clone` so that the copy doesn't alias
// the source.
func copied(t ir.Type, value *jen.Statement) *jen.Statement {
	if t.Kind == ir.KindList {
		return jen.Qual("slices", "Clone").Call(value)
	}

	return value
}

func (b *goBackend) genEnum(f *jen.File, unit *ir.Unit, e *ir.EnumWrapper) error {
	name := goName(e.TypeName())
	sentinel := name + suffixNumItems
	values := firstLower(name) + suffixValues
	items := name + suffixItems
	parse := prefixParse + name
	consts := enumConstNames(name, e.Values)

	if err := b.declare(unit, name, sentinel, values, items, parse); err != nil {
		return err
	}

	if err := b.declare(unit, consts...); err != nil {
		return err
	}

	f.Commentf("%s enumerates the values of `%s` in `%s`.", name, e.Name, e.Owner)
	f.Type().Id(name).Int()
	f.Empty()

	f.Const().DefsFunc(func(g *jen.Group) {
		for i, c := range consts {
			if i == 0 {
				g.Id(c).Id(name).Op("=").Iota()
			} else {
				g.Id(c)
			}
		}

		if len(consts) == 0 {
			g.Id(sentinel).Id(name).Op("=").Iota()
		} else {
			g.Id(sentinel)
		}
	})
	f.Empty()

	f.Var().Id(values).Op("=").Index(jen.Op("...")).String().ValuesFunc(func(g *jen.Group) {
		for _, v := range e.Values {
			g.Lit(v)
		}
	})
	f.Empty()

	f.Commentf("%s returns the first value serialized as `%s` or %s if there is none.", parse, idParamStr, sentinel)
	f.Func().Id(parse).Params(jen.Id(idParamStr).String()).Id(name).Block(
		jen.For(jen.List(jen.Id("i"), jen.Id("v")).Op(":=").Range().Id(values)).Block(
			jen.If(jen.Id("v").Op("==").Id(idParamStr)).Block(
				jen.Return(jen.Id(name).Call(jen.Id("i"))),
			),
		),
		jen.Line(),
		jen.Return(jen.Id(sentinel)),
	)
	f.Empty()

	f.Func().Id(items).Params().Index().Id(name).Block(
		jen.Id(idVarItems).Op(":=").Make(jen.Index().Id(name), jen.Lit(0), jen.Len(jen.Id(values))),
		jen.For(jen.Id("i").Op(":=").Range().Id(values)).Block(
			jen.Id(idVarItems).Op("=").Append(jen.Id(idVarItems), jen.Id(name).Call(jen.Id("i"))),
		),
		jen.Line(),
		jen.Return(jen.Id(idVarItems)),
	)
	f.Empty()

	recv := jen.Id(idRecvEnum).Id(name)
	ptrRecv := func() *jen.Statement { return jen.Id(idRecvEnum).Op("*").Id(name) }

	f.Func().Params(recv.Clone()).Id("Valid").Params().Bool().Block(
		jen.Return(jen.Id(idRecvEnum).Op(">=").Lit(0).Op("&&").Id(idRecvEnum).Op("<").Id(sentinel)),
	)
	f.Empty()

	f.Func().Params(recv.Clone()).Id("String").Params().String().Block(
		jen.If(jen.Op("!").Id(idRecvEnum).Dot("Valid").Call()).Block(
			jen.Return(jen.Lit(ir.UnknownValue)),
		),
		jen.Line(),
		jen.Return(jen.Id(values).Index(jen.Id(idRecvEnum))),
	)
	f.Empty()

	f.Func().Params(recv.Clone()).Id("Ordinal").Params().Int().Block(
		jen.Return(jen.Int().Call(jen.Id(idRecvEnum))),
	)
	f.Empty()

	f.Func().Params(recv.Clone()).Id("NumItems").Params().Int().Block(
		jen.Return(jen.Int().Call(jen.Id(sentinel))),
	)
	f.Empty()

	f.Comment("SetOrdinal converts `from` by position. Both enumerations must have the same number of values.")
	f.Func().Params(ptrRecv()).Id("SetOrdinal").Params(jen.Id(idParamFrom).Qual(pathdescPath, "Enum")).Error().Block(
		jen.List(jen.Id("o"), jen.Id(idVarErr)).Op(":=").Qual(pathdescPath, "ConvertOrdinal").Call(jen.Id(idParamFrom), jen.Int().Call(jen.Id(sentinel))),
		jen.If(jen.Id(idVarErr).Op("!=").Nil()).Block(
			jen.Return(jen.Id(idVarErr)),
		),
		jen.Line(),
		jen.Op("*").Id(idRecvEnum).Op("=").Id(name).Call(jen.Id("o")),
		jen.Return(jen.Nil()),
	)
	f.Empty()

	f.Comment("SetSymbol converts `from` by matching the symbol of its value.")
	f.Func().Params(ptrRecv()).Id("SetSymbol").Params(jen.Id(idParamFrom).Qual(pathdescPath, "NamedEnum")).Block(
		jen.List(jen.Id(idParamStr), jen.Id("ok")).Op(":=").Qual(pathdescPath, "Symbol").Call(jen.Id(idParamFrom)),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Op("*").Id(idRecvEnum).Op("=").Id(sentinel),
			jen.Return(),
		),
		jen.Line(),
		jen.Op("*").Id(idRecvEnum).Op("=").Id(parse).Call(jen.Id(idParamStr)),
	)
	f.Empty()

	f.Func().Params(recv.Clone()).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id(idRecvEnum).Dot("String").Call())),
	)
	f.Empty()

	f.Func().Params(ptrRecv()).Id("UnmarshalJSON").Params(jen.Id(idParamData).Index().Byte()).Error().Block(
		jen.Var().Id(idParamStr).String(),
		jen.If(
			jen.Id(idVarErr).Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id(idParamData), jen.Op("&").Id(idParamStr)),
			jen.Id(idVarErr).Op("!=").Nil(),
		).Block(
			jen.Return(jen.Id(idVarErr)),
		),
		jen.Line(),
		jen.Op("*").Id(idRecvEnum).Op("=").Id(parse).Call(jen.Id(idParamStr)),
		jen.Return(jen.Nil()),
	)
	f.Empty()

	return nil
}

// enumConstNames names the constant of every value. Values that don't make
// a usable identifier, would repeat an earlier one or would collide with
// another identifier of the enum are named after their position instead.
func enumConstNames(typeName string, values []string) []string {
	names := make([]string, len(values))
	seen := map[string]bool{
		typeName + suffixNumItems:           true,
		typeName + suffixItems:              true,
		prefixParse + typeName:              true,
		firstLower(typeName) + suffixValues: true,
	}

	for i, v := range values {
		n := typeName + goName(v)
		if goName(v) == "" || seen[n] {
			n = fmt.Sprintf("%sValue%d", typeName, i)
		}

		seen[n] = true
		names[i] = n
	}

	return names
}

func (b *goBackend) genRoute(f *jen.File, unit *ir.Unit, r *ir.RouteDescriptor) error {
	for i := range r.Enums {
		if err := b.genEnum(f, unit, &r.Enums[i]); err != nil {
			return err
		}
	}

	name := goName(r.Nickname) + suffixRoute
	if err := b.declare(unit, name); err != nil {
		return err
	}

	if r.Summary != "" {
		f.Commentf("%s: %s", name, oneLine(r.Summary))
	}

	f.Var().Id(name).Op("=").Qual(pathdescPath, "Description").Values(jen.Dict{
		jen.Id("Base"):     jen.Lit(r.BasePath),
		jen.Id("Path"):     jen.Lit(r.Path),
		jen.Id("Method"):   jen.Lit(r.Method),
		jen.Id("Nickname"): jen.Lit(r.Nickname),
		jen.Id("Components"): jen.Index().Qual(pathdescPath, "Component").ValuesFunc(func(g *jen.Group) {
			for _, s := range r.Segments {
				g.Values(jen.Dict{
					jen.Id("Name"): jen.Lit(s.Value),
					jen.Id("Type"): jen.Qual(pathdescPath, componentType(s.Kind)),
				})
			}
		}),
		jen.Id("Mandatory"): jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, m := range r.MandatoryQuery {
				g.Lit(m)
			}
		}),
	})
	f.Empty()

	return nil
}

// genRouteList collects the routes of a unit into one slice.
func (b *goBackend) genRouteList(f *jen.File, unit *ir.Unit) error {
	if len(unit.Routes) == 0 {
		return nil
	}

	name := goName(unit.Base) + suffixRoutes
	if err := b.declare(unit, name); err != nil {
		return err
	}

	f.Var().Id(name).Op("=").Index().Op("*").Qual(pathdescPath, "Description").ValuesFunc(func(g *jen.Group) {
		for _, r := range unit.Routes {
			g.Op("&").Id(goName(r.Nickname) + suffixRoute)
		}
	})

	return nil
}

func componentType(k ir.SegmentKind) string {
	switch k {
	case ir.Param:
		return "Param"
	case ir.ParamGreedy:
		return "ParamUntilEndOfPath"
	}

	return "FixedString"
}

func goType(t ir.Type) *jen.Statement {
	switch t.Kind {
	case ir.KindRef:
		return jen.Id(goName(t.Ref))
	case ir.KindList:
		return jen.Index().Add(goType(*t.Elem))
	case ir.KindEnum:
		return jen.Id(goName(t.Enum))
	}

	switch t.Primitive {
	case ir.Int:
		return jen.Int32()
	case ir.Long:
		return jen.Int64()
	case ir.Float:
		return jen.Float32()
	case ir.Double:
		return jen.Float64()
	case ir.Bool:
		return jen.Bool()
	case ir.Char:
		return jen.Rune()
	case ir.DateTime:
		return jen.Qual("time", "Time")
	}

	return jen.String()
}

func jsonTag(fd ir.Field) string {
	if fd.Required {
		return fd.Name
	}

	return fd.Name + ",omitempty"
}

func receiverName(typeName string) string {
	return firstLower(string([]rune(typeName)[0]))
}
