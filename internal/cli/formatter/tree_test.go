package formatter

import (
	"testing"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTree() entity.Store {
	root := entity.New(domain.EntityNode{ID: "r", Kind: domain.KindOrganization, Title: "Test Parish"})
	return root.
		Add("r", domain.EntityNode{ID: "c1", Kind: domain.KindCategory, Title: "C1"}).
		Add("c1", domain.EntityNode{ID: "a", Kind: domain.KindActivity, Title: "A",
			Attributes: &domain.Attributes{Schedule: "Sundays"}}).
		Add("r", domain.EntityNode{ID: "c2", Kind: domain.KindCategory, Title: "C2"}).
		Add("c2", domain.EntityNode{ID: "b", Kind: domain.KindActivity, Title: "B"})
}

func TestTreeItems_Order(t *testing.T) {
	items := TreeItems(smallTree(), "r", -1)
	require.Len(t, items, 5)

	var got []string
	for _, it := range items {
		got = append(got, it.ID)
	}
	assert.Equal(t, []string{"r", "c1", "a", "c2", "b"}, got)
	assert.Equal(t, []bool{true}, items[2].Open)
	assert.Equal(t, []bool{false}, items[4].Open)
	assert.Equal(t, "Sundays", items[2].Detail)
}

func TestTreeItems_MaxDepth(t *testing.T) {
	items := TreeItems(smallTree(), "r", 1)
	assert.Len(t, items, 3)
}

func TestRenderTree(t *testing.T) {
	out := stripANSI(RenderTree(TreeItems(smallTree(), "r", -1)))
	want := "Test Parish (r)\n" +
		"├─ C1 (c1)\n" +
		"│  └─ A (a)      [ Sundays ]\n" +
		"└─ C2 (c2)\n" +
		"   └─ B (b)\n"
	assert.Equal(t, want, out)
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
	assert.Empty(t, TreeItems(smallTree(), "missing", -1))
}
