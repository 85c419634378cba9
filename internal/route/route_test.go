package route

import (
	"errors"
	"testing"

	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/model"
	assert "github.com/stretchr/testify/require"
)

func TestCompileSegments(t *testing.T) {
	r := &model.RouteDef{
		Path:     "/pets/{id}/photos",
		Method:   "get",
		Nickname: "getPhotos",
		Parameters: []model.ParameterDef{
			{Name: "id", ParamType: "path", Required: true},
		},
	}

	d, err := Compile(r)
	assert.NoError(t, err)

	assert.Equal(t, []ir.PathSegment{
		{Kind: ir.FixedString, Value: "pets"},
		{Kind: ir.Param, Value: "id"},
		{Kind: ir.FixedString, Value: "photos"},
	}, d.Segments)

	assert.Equal(t, "GET", d.Method)
	assert.Equal(t, "getPhotos", d.Nickname)
	assert.Equal(t, "/pets/{id}/photos", d.Path)
	assert.Equal(t, "/pets", d.BasePath)
	assert.Empty(t, d.MandatoryQuery)
}

func TestCompileGreedyParameter(t *testing.T) {
	r := &model.RouteDef{
		Path:     "/pets/{ids}",
		Method:   "GET",
		Nickname: "getPets",
		Parameters: []model.ParameterDef{
			{Name: "ids", In: "path", AllowMultiple: true},
		},
	}

	d, err := Compile(r)
	assert.NoError(t, err)

	assert.Equal(t, []ir.PathSegment{
		{Kind: ir.FixedString, Value: "pets"},
		{Kind: ir.ParamGreedy, Value: "ids"},
	}, d.Segments)
	assert.Equal(t, "/pets/{ids...}", d.Pattern())
}

func TestCompileTrailingSlash(t *testing.T) {
	d, err := Compile(&model.RouteDef{Path: "/store/inventory/", Method: "GET", Nickname: "getInventory"})
	assert.NoError(t, err)

	assert.Equal(t, "/store/inventory", d.Path)
	assert.Equal(t, "/store/inventory", d.BasePath)
	assert.Len(t, d.Segments, 2)
}

func TestCompileMissingParameter(t *testing.T) {
	r := &model.RouteDef{
		Path:     "/pets/{petId}",
		Method:   "GET",
		Nickname: "getPet",
		Line:     14,
	}

	_, err := Compile(r)
	assert.True(t, errors.Is(err, model.ErrMissingParameterDeclaration))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "getPet", e.Route)
	assert.Equal(t, 14, e.Line)
	assert.Contains(t, e.Error(), `"petId"`)
}

func TestCompileSkipsEmptyParameterNames(t *testing.T) {
	d, err := Compile(&model.RouteDef{Path: "/pets/{}/all", Method: "GET", Nickname: "all"})
	assert.NoError(t, err)

	assert.Equal(t, []ir.PathSegment{
		{Kind: ir.FixedString, Value: "pets"},
		{Kind: ir.FixedString, Value: "all"},
	}, d.Segments)
}

func TestCompileParameterWithSpaces(t *testing.T) {
	r := &model.RouteDef{
		Path:       "/pets/{ petId }",
		Method:     "GET",
		Nickname:   "getPet",
		Parameters: []model.ParameterDef{{Name: "petId", In: "path"}},
	}

	d, err := Compile(r)
	assert.NoError(t, err)
	assert.Equal(t, ir.PathSegment{Kind: ir.Param, Value: "petId"}, d.Segments[1])
}

func TestMandatoryQuery(t *testing.T) {
	r := &model.RouteDef{
		Path:     "/pets",
		Method:   "GET",
		Nickname: "findPets",
		Parameters: []model.ParameterDef{
			{Name: "status", ParamType: "query", Required: true},
			{Name: "limit", In: "query"},
			{Name: "body", In: "body", Required: true},
			{Name: "tags", In: "query", Required: true},
			{Name: "owner", ParamType: "path", Required: true},
		},
	}

	assert.Equal(t, []string{"status", "tags"}, MandatoryQuery(r))
}

func TestEnums(t *testing.T) {
	r := &model.RouteDef{
		Path:     "/pets",
		Method:   "GET",
		Nickname: "findPets",
		Enum:     []string{"json", "xml"},
		Parameters: []model.ParameterDef{
			{Name: "status", In: "query", Enum: []string{"available", "sold"}},
			{Name: "limit", In: "query"},
		},
	}

	d, err := Compile(r)
	assert.NoError(t, err)
	assert.Len(t, d.Enums, 2)

	ret, ok := d.FindEnum(ReturnType)
	assert.True(t, ok)
	assert.Equal(t, "findPets_return_type", ret.TypeName())
	assert.Equal(t, []string{"json", "xml"}, ret.Values)

	status, ok := d.FindEnum("status")
	assert.True(t, ok)
	assert.Equal(t, 1, status.Lookup("sold"))
	assert.Equal(t, 2, status.Lookup("adopted"))
}

func TestCompileAllStopsAtFirstError(t *testing.T) {
	routes := []model.RouteDef{
		{Path: "/a", Method: "GET", Nickname: "a"},
		{Path: "/b/{id}", Method: "GET", Nickname: "b"},
		{Path: "/c", Method: "GET", Nickname: "c"},
	}

	_, err := CompileAll(routes)
	assert.True(t, errors.Is(err, model.ErrMissingParameterDeclaration))

	out, err := CompileAll(routes[:1])
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}
