package swagger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/koskimas/json2code/internal/model"
	assert "github.com/stretchr/testify/require"
)

func load(t *testing.T, file string, opts Options) (*model.Document, error) {
	l, err := NewLoader(opts)
	assert.NoError(t, err)

	return l.Load(file)
}

func TestLoadLegacy(t *testing.T) {
	doc, err := load(t, "testdata/petstore.json", Options{})
	assert.NoError(t, err)

	assert.Equal(t, "testdata/petstore.json", doc.File)
	assert.Len(t, doc.APIs, 2)

	routes := doc.Routes()
	assert.Len(t, routes, 3)

	get := routes[0]
	assert.Equal(t, "/pet/{petId}", get.Path)
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "getPetById", get.Nickname)
	assert.Equal(t, "Find pet by ID", get.Summary)
	assert.Equal(t, 6, get.Line)
	assert.Len(t, get.Parameters, 2)
	assert.Equal(t, model.ParameterDef{Name: "petId", ParamType: "path", Type: "long", Required: true, Line: 11}, get.Parameters[0])
	assert.True(t, get.Parameters[1].Required)

	assert.Equal(t, "deletePet", routes[1].Nickname)
	assert.Equal(t, "DELETE", routes[1].Method)

	find := routes[2]
	assert.Equal(t, []string{"json", "xml"}, find.Enum)
	assert.True(t, find.Parameters[0].AllowMultiple)
	assert.Equal(t, []string{"available", "pending", "sold"}, find.Parameters[0].Enum)
}

func TestLoadLegacyModelsKeepDeclarationOrder(t *testing.T) {
	doc, err := load(t, "testdata/petstore.json", Options{})
	assert.NoError(t, err)

	names := make([]string, 0)
	for _, m := range doc.Models {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"Pet", "Category", "Tag", "Empty"}, names)

	pet, ok := doc.FindModel("Pet")
	assert.True(t, ok)
	assert.Equal(t, 39, pet.Line)
	assert.Equal(t, "A pet for sale", pet.Description)
	assert.Equal(t, []string{"id", "name"}, pet.Required)

	props := make([]string, 0)
	for _, p := range pet.Properties {
		props = append(props, p.Name)
	}

	assert.Equal(t, []string{"id", "category", "name", "tags", "status"}, props)
	assert.Equal(t, &model.ItemsDef{Ref: "Tag"}, pet.Properties[3].Items)
	assert.Equal(t, model.KindEnum, pet.Properties[4].Kind())

	empty, ok := doc.FindModel("Empty")
	assert.True(t, ok)
	assert.Empty(t, empty.Properties)
}

func TestLoadFragment(t *testing.T) {
	doc, err := load(t, "testdata/store.json", Options{})
	assert.NoError(t, err)

	routes := doc.Routes()
	assert.Len(t, routes, 3)

	get := routes[0]
	assert.Equal(t, "getOrderById", get.Nickname)
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "/store/order/{orderId}", get.Path)
	assert.Equal(t, 6, get.Line)
	assert.Len(t, get.Parameters, 1)
	assert.Equal(t, "orderId", get.Parameters[0].Name)

	del := routes[1]
	assert.Equal(t, "deleteOrder", del.Nickname)
	assert.Equal(t, "DELETE", del.Method)
	assert.Equal(t, 10, del.Line)
	assert.Equal(t, "force", del.Parameters[0].Name)
	assert.Equal(t, "orderId", del.Parameters[1].Name)

	assert.Equal(t, "getFile", routes[2].Nickname)
	assert.True(t, routes[2].Parameters[0].AllowMultiple)
}

func TestLoadFragmentSidecar(t *testing.T) {
	doc, err := load(t, "testdata/store.json", Options{})
	assert.NoError(t, err)

	assert.Len(t, doc.Models, 2)
	assert.Equal(t, "Order", doc.Models[0].Name)
	assert.Equal(t, 2, doc.Models[0].Line)
	assert.Equal(t, "OrderItem", doc.Models[1].Name)

	items := doc.Models[0].Properties[1]
	assert.Equal(t, "#/definitions/OrderItem", items.Items.Ref)
	assert.Equal(t, "OrderItem", items.TypeToken())
	assert.Equal(t, "datetime", doc.Models[0].Properties[2].Type)
}

func TestLoadFragmentWithoutSidecar(t *testing.T) {
	doc, err := load(t, "testdata/nosidecar.json", Options{})
	assert.NoError(t, err)

	assert.Empty(t, doc.Models)
	assert.Equal(t, "health", doc.Routes()[0].Nickname)
}

func TestLoadSidecarWrappedInDefinitions(t *testing.T) {
	doc, err := load(t, "testdata/wrapped.json", Options{})
	assert.NoError(t, err)

	assert.Len(t, doc.Models, 1)
	assert.Equal(t, "User", doc.Models[0].Name)
}

func TestLoadMalformedSidecar(t *testing.T) {
	_, err := load(t, "testdata/badsidecar.json", Options{})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "testdata/badsidecar.def.json", e.File)
}

func TestLoadMalformedInput(t *testing.T) {
	_, err := load(t, "testdata/broken.json", Options{})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "testdata/broken.json", e.File)
}

func TestLoadJSONEscapes(t *testing.T) {
	doc, err := load(t, "testdata/escaped.json", Options{Validate: true})
	assert.NoError(t, err)

	routes := doc.Routes()
	assert.Len(t, routes, 1)
	assert.Equal(t, "/pet/{petId}", routes[0].Path)
	assert.Equal(t, 6, routes[0].Line)
	assert.Equal(t, "Served as application/json", doc.Models[0].Description)
	assert.Equal(t, 18, doc.Models[0].Line)

	doc, err = load(t, "testdata/escapedfragment.json", Options{Validate: true})
	assert.NoError(t, err)

	routes = doc.Routes()
	assert.Len(t, routes, 1)
	assert.Equal(t, "/store/inventory", routes[0].Path)
	assert.Equal(t, "getInventory", routes[0].Nickname)
	assert.Equal(t, 3, routes[0].Line)
}

func TestLoadLongKey(t *testing.T) {
	name := strings.Repeat("Pet", 400)
	file := filepath.Join(t.TempDir(), "long.json")

	data := `{"models": {"` + name + `": {"properties": {"id": {"type": "long"}}}}}`
	assert.NoError(t, os.WriteFile(file, []byte(data), 0o644))

	doc, err := load(t, file, Options{})
	assert.NoError(t, err)
	assert.Equal(t, name, doc.Models[0].Name)
}

func TestLoadDuplicateKeys(t *testing.T) {
	_, err := load(t, "testdata/duplicate.json", Options{})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
	assert.Contains(t, err.Error(), `model "Pet" is declared more than once`)

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, 8, e.Line)

	_, err = load(t, "testdata/duplicateproperty.json", Options{})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
	assert.Contains(t, err.Error(), `property "id" of model "Pet" is declared more than once`)
}

func TestParseNode(t *testing.T) {
	root, err := parseNode([]byte("{\n  \"a\": [1, 2.5, true, null],\n  \"b\": {\"c\": \"\\/\"}\n}"))
	assert.NoError(t, err)

	assert.Len(t, root.Content, 4)
	assert.Equal(t, "a", root.Content[0].Value)
	assert.Equal(t, 2, root.Content[0].Line)

	a := root.Content[1]
	assert.Len(t, a.Content, 4)
	assert.Equal(t, "!!int", a.Content[0].Tag)
	assert.Equal(t, "2.5", a.Content[1].Value)
	assert.Equal(t, "true", a.Content[2].Value)
	assert.Equal(t, "!!null", a.Content[3].Tag)

	b := root.Content[3]
	assert.Equal(t, 3, b.Line)
	assert.Equal(t, "/", b.Content[1].Value)

	_, err = parseNode([]byte("[1]"))
	assert.Error(t, err)
}

func TestLoadMissingNickname(t *testing.T) {
	_, err := load(t, "testdata/invalid.json", Options{})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
	assert.Contains(t, err.Error(), `"nickname" not found`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(t, "testdata/nope.json", Options{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrMalformedInput))
}

func TestLoadValidated(t *testing.T) {
	for _, file := range []string{"testdata/petstore.json", "testdata/store.json", "testdata/wrapped.json"} {
		_, err := load(t, file, Options{Validate: true})
		assert.NoError(t, err, file)
	}

	_, err := load(t, "testdata/invalid.json", Options{Validate: true})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
	assert.Contains(t, err.Error(), "legacy schema")
}

func TestWrapFragmentKeepsLines(t *testing.T) {
	wrapped := WrapFragment([]byte(",\n\"a\": 1\n"))

	assert.Equal(t, "{ \n\"a\": 1\n}", string(wrapped))

	root, err := parseNode(wrapped)
	assert.NoError(t, err)
	assert.Equal(t, 2, root.Content[0].Line)
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "api/pets.def.json", SidecarPath("api/pets.json"))
	assert.True(t, IsSidecar("api/pets.def.json"))
	assert.False(t, IsSidecar("api/pets.json"))
}
