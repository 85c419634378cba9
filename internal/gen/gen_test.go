package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/koskimas/json2code/internal/ir"
	assert "github.com/stretchr/testify/require"
)

func petUnit() *ir.Unit {
	return &ir.Unit{
		File: "api/petstore.json",
		Base: "petstore",
		Records: []ir.Record{
			{
				Name:        "Pet",
				Description: "A pet\nfor sale",
				Fields: []ir.Field{
					{Name: "id", Type: ir.Scalar(ir.Long), Required: true},
					{Name: "name", Type: ir.Scalar(ir.String), Required: true},
					{Name: "photo_urls", Type: ir.List(ir.Scalar(ir.String))},
					{Name: "status", Type: ir.Enum("Pet_status")},
				},
				Enums: []ir.EnumWrapper{
					{Owner: "Pet", Name: "status", Values: []string{"available", "pending", "sold"}},
				},
				Operations: []ir.Operation{
					{Kind: ir.CopyConstruct, Fields: []string{"id", "name", "photo_urls", "status"}},
					{Kind: ir.AssignFrom, Fields: []string{"id", "name", "photo_urls", "status"}},
					{Kind: ir.UpdateInto, Fields: []string{"id", "name", "photo_urls", "status"}},
				},
			},
		},
		Routes: []ir.RouteDescriptor{
			{
				Method:   "GET",
				Nickname: "getPetById",
				Summary:  "Find pet by ID",
				BasePath: "/pet",
				Path:     "/pet/{petId}",
				Segments: []ir.PathSegment{
					{Kind: ir.FixedString, Value: "pet"},
					{Kind: ir.Param, Value: "petId"},
				},
				MandatoryQuery: []string{"api_key"},
			},
		},
	}
}

func declarations(t *testing.T, src []byte) map[string]bool {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "petstore.go", src, parser.ParseComments)
	assert.NoError(t, err, string(src))

	decls := make(map[string]bool)
	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					decls[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						decls[n.Name] = true
					}
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = recvType(d.Recv.List[0].Type) + "." + name
			}

			decls[name] = true
		}
	}

	return decls
}

func recvType(e ast.Expr) string {
	if star, ok := e.(*ast.StarExpr); ok {
		e = star.X
	}

	return e.(*ast.Ident).Name
}

func TestGoBackend(t *testing.T) {
	src, err := newGoBackend("api").Render(petUnit())
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(src), "// "+generatedHeader))
	assert.Contains(t, string(src), "package api")
	assert.Contains(t, string(src), `json:"photo_urls,omitempty"`)
	assert.Contains(t, string(src), `json:"id"`)
	assert.Contains(t, string(src), "// A pet for sale")
	assert.Contains(t, string(src), "// Clone returns a one level copy of p.")

	decls := declarations(t, src)
	for _, name := range []string{
		"Pet",
		"PetFields",
		"PetSetter",
		"Pet.GetId",
		"Pet.SetPhotoUrls",
		"Pet.Clone",
		"Pet.Assign",
		"Pet.Update",
		"PetStatus",
		"PetStatusAvailable",
		"PetStatusPending",
		"PetStatusSold",
		"PetStatusNumItems",
		"petStatusValues",
		"ParsePetStatus",
		"PetStatusItems",
		"PetStatus.String",
		"PetStatus.SetOrdinal",
		"PetStatus.SetSymbol",
		"PetStatus.UnmarshalJSON",
		"GetPetByIdRoute",
		"PetstoreRoutes",
	} {
		assert.True(t, decls[name], name)
	}
}

func TestGoBackendDuplicateIdentifier(t *testing.T) {
	b := newGoBackend("api")

	_, err := b.Render(petUnit())
	assert.NoError(t, err)

	other := petUnit()
	other.File = "api/other.json"
	other.Base = "other"

	_, err = b.Render(other)
	assert.ErrorContains(t, err, `identifier "PetStatus" is already declared by "api/petstore.json"`)
}

func TestGoBackendFieldNameCollision(t *testing.T) {
	unit := &ir.Unit{
		File: "a.json",
		Records: []ir.Record{{
			Name: "A",
			Fields: []ir.Field{
				{Name: "pet_id", Type: ir.Scalar(ir.Int)},
				{Name: "petId", Type: ir.Scalar(ir.Int)},
			},
		}},
	}

	_, err := newGoBackend("api").Render(unit)
	assert.ErrorContains(t, err, `have the same Go name "PetId"`)
}

func TestEnumConstNames(t *testing.T) {
	names := enumConstNames("Color", []string{"red", "Red", "-", "NumItems", "dark blue", "Items", "items"})
	assert.Equal(t, []string{"ColorRed", "ColorValue1", "ColorValue2", "ColorValue3", "ColorDarkBlue", "ColorValue5", "ColorValue6"}, names)
}

func TestGoBackendEnumValueNamedLikeHelper(t *testing.T) {
	unit := &ir.Unit{
		File: "pets.json",
		Base: "pets",
		Records: []ir.Record{{
			Name:   "Pet",
			Fields: []ir.Field{{Name: "status", Type: ir.Enum("Pet_status")}},
			Enums: []ir.EnumWrapper{
				{Owner: "Pet", Name: "status", Values: []string{"available", "Items"}},
			},
		}},
	}

	src, err := newGoBackend("api").Render(unit)
	assert.NoError(t, err)

	decls := declarations(t, src)
	assert.True(t, decls["PetStatusAvailable"])
	assert.True(t, decls["PetStatusValue1"])
	assert.True(t, decls["PetStatusItems"])
}

func TestSQLBackend(t *testing.T) {
	sql, err := (&sqlBackend{schema: "shop"}).Render(petUnit())
	assert.NoError(t, err)

	assert.Contains(t, string(sql), "-- "+generatedHeader)
	assert.Contains(t, string(sql), `CREATE TABLE "shop"."pet" (`)
	assert.Contains(t, string(sql), `"id" int8 NOT NULL,`)
	assert.Contains(t, string(sql), `"photo_urls" jsonb,`)
	assert.Contains(t, string(sql), `"status" text CHECK ("status" IN ('available', 'pending', 'sold'))`)
	assert.Contains(t, string(sql), `DROP TABLE IF EXISTS "shop"."pet";`)
}

func TestSQLBackendColumnCollision(t *testing.T) {
	unit := &ir.Unit{
		File: "a.json",
		Records: []ir.Record{{
			Name: "A",
			Fields: []ir.Field{
				{Name: "petId", Type: ir.Scalar(ir.Int)},
				{Name: "pet_id", Type: ir.Scalar(ir.Int)},
			},
		}},
	}

	_, err := (&sqlBackend{}).Render(unit)
	assert.ErrorContains(t, err, `more than one field named "pet_id"`)
}

func TestIRBackend(t *testing.T) {
	data, err := irBackend{}.Render(petUnit())
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "# "+generatedHeader+"\n"))
	assert.Contains(t, string(data), "base: petstore")
	assert.Contains(t, string(data), "nickname: getPetById")
}

func TestGenerator(t *testing.T) {
	g, err := NewGenerator(Options{
		Package: "api",
		OutDir:  "autogen",
		Targets: []Target{TargetGo, TargetSQL, TargetIR},
	})
	assert.NoError(t, err)

	files, err := g.Generate(petUnit())
	assert.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, filepath.Join("autogen", "petstore.go"), files[0].Path)
	assert.Equal(t, filepath.Join("autogen", "petstore.sql"), files[1].Path)
	assert.Equal(t, filepath.Join("autogen", "petstore.ir.yaml"), files[2].Path)

	var m Manifest
	m.Add(petUnit(), files)

	data, err := m.Render()
	assert.NoError(t, err)
	assert.Contains(t, string(data), "file: api/petstore.json")
	assert.Contains(t, string(data), "- Pet")
	assert.Contains(t, string(data), "- getPetById")
}

func TestGeneratorOutput(t *testing.T) {
	g, err := NewGenerator(Options{
		OutDir:  "out",
		Output:  "models.go",
		Package: "api",
		Targets: []Target{TargetGo},
	})
	assert.NoError(t, err)

	files, err := g.Generate(petUnit())
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "models.go"), files[0].Path)
}

func TestGeneratorUnknownTarget(t *testing.T) {
	_, err := NewGenerator(Options{Targets: []Target{"rust"}})
	assert.ErrorContains(t, err, `unknown target "rust"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "PetStatus", goName("pet_status"))
	assert.Equal(t, "GetPetById", goName("getPetById"))
	assert.Equal(t, "X2faEnabled", goName("2fa-enabled"))
	assert.Equal(t, "", goName("--"))

	assert.Equal(t, "pet_owner", snakeName("PetOwner"))
	assert.Equal(t, "owner_id", snakeName("ownerID"))
	assert.Equal(t, "http_server", snakeName("HTTPServer"))
	assert.Equal(t, "photo_urls", snakeName("photo-urls"))

	assert.Equal(t, "a b", oneLine(" a\n  b "))
}
