package entity

import (
	"errors"
	"testing"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(nodes []domain.EntityNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestSampleParish_IsValidTree(t *testing.T) {
	s := SampleParish()
	require.NoError(t, s.Validate())

	root, ok := s.Root()
	require.True(t, ok)
	assert.Equal(t, RootID, root.ID)
	assert.Empty(t, s.Orphans())
	assert.Len(t, s.Reachable(), s.Len())
}

func TestPathToRoot_AltarServers(t *testing.T) {
	s := SampleParish()
	path, err := s.PathToRoot("altar-servers")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "ministries", "liturgy", "altar-servers"}, ids(path))
}

func TestPathToRoot_RootAndUnknown(t *testing.T) {
	s := SampleParish()

	path, err := s.PathToRoot(RootID)
	require.NoError(t, err)
	assert.Equal(t, []string{RootID}, ids(path))

	path, err = s.PathToRoot("nope")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPathToRoot_CycleIsReported(t *testing.T) {
	a, b := "a", "b"
	s := New(
		domain.EntityNode{ID: "a", Kind: domain.KindGroup, ParentID: &b, ChildIDs: []string{"b"}},
		domain.EntityNode{ID: "b", Kind: domain.KindGroup, ParentID: &a, ChildIDs: []string{"a"}},
	)
	_, err := s.PathToRoot("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptTree))
	assert.Contains(t, err.Error(), "cycle")
}

func TestPathToRoot_MissingParent(t *testing.T) {
	ghost := "ghost"
	s := New(domain.EntityNode{ID: "x", Kind: domain.KindGroup, ParentID: &ghost})
	_, err := s.PathToRoot("x")
	require.ErrorIs(t, err, ErrCorruptTree)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := SampleParish()
	n, ok := s.Get("liturgy")
	require.True(t, ok)
	n.ChildIDs[0] = "mutated"
	n.Title = "mutated"

	again, _ := s.Get("liturgy")
	assert.Equal(t, "altar-servers", again.ChildIDs[0])
	assert.Equal(t, "Liturgical Ministries", again.Title)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestChildren_PreservesOrderAndSkipsDangling(t *testing.T) {
	root := domain.EntityNode{ID: "r", Kind: domain.KindOrganization, ChildIDs: []string{"c2", "ghost", "c1"}}
	r := "r"
	s := New(
		root,
		domain.EntityNode{ID: "c1", Kind: domain.KindGroup, ParentID: &r},
		domain.EntityNode{ID: "c2", Kind: domain.KindGroup, ParentID: &r},
	)
	assert.Equal(t, []string{"c2", "c1"}, ids(s.Children("r")))
	assert.Empty(t, s.Children("missing"))
}

func TestParent(t *testing.T) {
	s := SampleParish()

	p, ok := s.Parent("lectors")
	require.True(t, ok)
	assert.Equal(t, "liturgy", p.ID)

	_, ok = s.Parent(RootID)
	assert.False(t, ok, "root has no parent")

	_, ok = s.Parent("missing")
	assert.False(t, ok)
}

func TestByKind(t *testing.T) {
	s := SampleParish()
	cats := ids(s.ByKind(domain.KindCategory))
	assert.ElementsMatch(t, []string{"ministries", "sacraments", "community"}, cats)
	assert.Len(t, s.ByKind(domain.KindOrganization), 1)
}

func TestWalk_DepthAndPrune(t *testing.T) {
	s := SampleParish()
	depths := map[string]int{}
	s.Walk("ministries", func(n domain.EntityNode, depth int) bool {
		depths[n.ID] = depth
		return n.ID != "music"
	})
	assert.Equal(t, 0, depths["ministries"])
	assert.Equal(t, 1, depths["liturgy"])
	assert.Equal(t, 2, depths["altar-servers"])
	assert.Contains(t, depths, "music")
	assert.NotContains(t, depths, "choir", "children of a pruned node are skipped")
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	r, missing := "r", "missing"
	s := New(
		domain.EntityNode{ID: "r", Kind: domain.KindOrganization, ChildIDs: []string{"a", "a", "ghost"}},
		domain.EntityNode{ID: "a", Kind: "parish", ParentID: &r},
		domain.EntityNode{ID: "b", Kind: domain.KindGroup, ParentID: &missing},
		domain.EntityNode{ID: "c", Kind: domain.KindGroup},
	)
	err := s.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `invalid kind "parish"`)
	assert.Contains(t, msg, `duplicate child "a"`)
	assert.Contains(t, msg, `child "ghost" does not exist`)
	assert.Contains(t, msg, `parent "missing" does not exist`)
	assert.Contains(t, msg, "2 root entities")
}

func TestValidate_EmptyStore(t *testing.T) {
	assert.NoError(t, New().Validate())
}
