package importer

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_YAML(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("testdata", "parish.yaml"))
	require.NoError(t, err)
	require.Empty(t, ValidateSeed(seed))

	res, err := Convert(seed)
	require.NoError(t, err)

	dir := res.Directory
	assert.Equal(t, 5, dir.Len())
	root, ok := dir.Root()
	require.True(t, ok)
	assert.Equal(t, "st-anne", root.ID)
	assert.Equal(t, domain.KindOrganization, root.Kind)
	require.NotNil(t, root.Attributes)
	assert.Equal(t, "(555) 010-2000", root.Attributes.Phone)

	ministries, _ := dir.Get("ministries")
	assert.Equal(t, []string{"music", "lectors"}, ministries.ChildIDs)

	path, err := dir.PathToRoot("choir")
	require.NoError(t, err)
	ids := make([]string, 0, len(path))
	for _, n := range path {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"st-anne", "ministries", "music", "choir"}, ids)

	require.Len(t, res.Template, 2)
	assert.Equal(t, domain.Slot{Day: domain.Saturday, Hour: 17, Label: "Vigil Mass"}, res.Template[0])
}

func TestLoadSeed_JSONWithoutMassTimes(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("testdata", "parish.json"))
	require.NoError(t, err)
	require.Empty(t, ValidateSeed(seed))

	res, err := Convert(seed)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Directory.Len())
	assert.Nil(t, res.Template)
}

func TestLoadSeed_UnsupportedExtension(t *testing.T) {
	_, err := LoadSeed("parish.toml")
	assert.ErrorContains(t, err, "unsupported seed file extension")
}

func TestParseSeed_Malformed(t *testing.T) {
	_, err := ParseSeed([]byte("{"), FormatJSON)
	assert.ErrorContains(t, err, "parsing seed JSON")

	_, err = ParseSeed([]byte("parish: [unclosed"), FormatYAML)
	assert.ErrorContains(t, err, "parsing seed YAML")
}

func TestConvert_RejectsUnvalidatedCycle(t *testing.T) {
	seed := validMinimalSeed()
	seed.Entities = append(seed.Entities,
		EntityImport{ID: "x", Kind: "group", Title: "X", ParentID: "y"},
		EntityImport{ID: "y", Kind: "group", Title: "Y", ParentID: "x"},
	)
	_, err := Convert(seed)
	assert.Error(t, err)
}

func TestFromStore_RoundTripsSample(t *testing.T) {
	sample := entity.SampleParish()
	seed, err := FromStore(sample, schedule.DefaultMassTimes())
	require.NoError(t, err)
	require.Empty(t, ValidateSeed(seed))

	res, err := Convert(seed)
	require.NoError(t, err)
	assert.Equal(t, sample.IDs(), res.Directory.IDs())
	for _, id := range sample.IDs() {
		want, _ := sample.Get(id)
		got, _ := res.Directory.Get(id)
		assert.Equal(t, want.ChildIDs, got.ChildIDs, id)
	}
	assert.Equal(t, schedule.DefaultMassTimes(), res.Template)
}

func TestFromStore_NoRoot(t *testing.T) {
	_, err := FromStore(entity.New(), nil)
	assert.Error(t, err)
}
