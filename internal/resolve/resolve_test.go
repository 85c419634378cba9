package resolve

import (
	"errors"
	"testing"

	"github.com/koskimas/json2code/internal/model"
	"github.com/koskimas/json2code/internal/types"
	assert "github.com/stretchr/testify/require"
)

func ref(name string, to string) model.PropertyDef {
	return model.PropertyDef{Name: name, Type: to}
}

func list(name string, of string) model.PropertyDef {
	return model.PropertyDef{Name: name, Type: "array", Items: &model.ItemsDef{Ref: of}}
}

func doc(models ...model.ModelDef) *model.Document {
	return &model.Document{File: "test.json", Models: models}
}

func TestOrderDependenciesFirst(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "A", Properties: []model.PropertyDef{ref("b", "B")}},
		model.ModelDef{Name: "B", Properties: []model.PropertyDef{ref("c", "C")}},
		model.ModelDef{Name: "C", Properties: []model.PropertyDef{ref("name", "string")}},
	)

	order, err := Order(d, types.NewTable())
	assert.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, order)
}

func TestOrderKeepsDeclarationOrderOfIndependentModels(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{ref("id", "long"), list("tags", "Tag")}},
		model.ModelDef{Name: "Tag", Properties: []model.PropertyDef{ref("name", "string")}},
		model.ModelDef{Name: "Category"},
		model.ModelDef{Name: "Order", Properties: []model.PropertyDef{ref("pet", "Pet")}},
	)

	order, err := Order(d, types.NewTable())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Tag", "Pet", "Category", "Order"}, order)
}

func TestOrderDiamond(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Top", Properties: []model.PropertyDef{ref("l", "Left"), ref("r", "Right")}},
		model.ModelDef{Name: "Left", Properties: []model.PropertyDef{ref("b", "Bottom")}},
		model.ModelDef{Name: "Right", Properties: []model.PropertyDef{ref("b", "Bottom")}},
		model.ModelDef{Name: "Bottom"},
	)

	order, err := Order(d, types.NewTable())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Bottom", "Left", "Right", "Top"}, order)
}

func TestOrderTwoNodeCycle(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "A", Line: 3, Properties: []model.PropertyDef{ref("b", "B")}},
		model.ModelDef{Name: "B", Line: 9, Properties: []model.PropertyDef{ref("a", "A")}},
	)

	_, err := Order(d, types.NewTable())
	assert.True(t, errors.Is(err, model.ErrCyclicDependency))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "A", e.Model)
	assert.Contains(t, e.Error(), `cyclic dependency found: "A"`)
}

func TestOrderThreeNodeCycle(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "A", Properties: []model.PropertyDef{ref("b", "B")}},
		model.ModelDef{Name: "B", Properties: []model.PropertyDef{list("c", "C")}},
		model.ModelDef{Name: "C", Properties: []model.PropertyDef{ref("a", "A")}},
	)

	_, err := Order(d, types.NewTable())
	assert.True(t, errors.Is(err, model.ErrCyclicDependency))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Contains(t, []string{"A", "B", "C"}, e.Model)
}

func TestOrderSelfReference(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Node", Properties: []model.PropertyDef{list("children", "Node")}},
	)

	_, err := Order(d, types.NewTable())
	assert.True(t, errors.Is(err, model.ErrCyclicDependency))
}

func TestOrderUnknownType(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{ref("owner", "Owner")}},
	)

	_, err := Order(d, types.NewTable())
	assert.True(t, errors.Is(err, model.ErrUnknownType))

	var e *model.Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "Pet", e.Model)
	assert.Equal(t, "owner", e.Property)
}

func TestOrderUsesTypeTableForOtherFiles(t *testing.T) {
	table := types.NewTable()
	table.Add("Owner")

	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{ref("owner", "Owner")}},
	)

	order, err := Order(d, table)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pet"}, order)
	assert.False(t, table.Has("Pet"))
}

func TestOrderPrefersLocalDeclarations(t *testing.T) {
	table := types.NewTable()
	table.Add("Owner")

	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{ref("owner", "Owner")}},
		model.ModelDef{Name: "Owner", Properties: []model.PropertyDef{ref("name", "string")}},
	)

	order, err := Order(d, table)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Owner", "Pet"}, order)
}

func TestOrderIgnoresEnumProperties(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{
			{Name: "status", Type: "Whatever", Enum: []string{"available", "sold"}},
		}},
	)

	order, err := Order(d, types.NewTable())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pet"}, order)
}

func TestOrderMalformedArray(t *testing.T) {
	d := doc(
		model.ModelDef{Name: "Pet", Properties: []model.PropertyDef{{Name: "tags", Type: "array"}}},
	)

	_, err := Order(d, types.NewTable())
	assert.True(t, errors.Is(err, model.ErrMalformedSchema))
}
