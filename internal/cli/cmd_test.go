package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/alexanderramin/parish/internal/service"
	"github.com/alexanderramin/parish/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// sundayMorning is 09:30 on a Sunday: Family Mass (09:00) is live and
// Solemn Mass (11:00) is next.
var sundayMorning = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := schedule.FixedClock(sundayMorning)

	return &App{
		Directory:   service.NewDirectoryService(uow, repository.NewSQLiteRepos),
		Schedule:    service.NewScheduleService(uow, repository.NewSQLiteRepos, clock, 0),
		Preferences: service.NewPreferencesService(uow, repository.NewSQLiteRepos),
		Import:      service.NewImportService(uow, repository.NewSQLiteRepos),
		Translator:  locale.MustNew("en"),
		Clock:       clock,
	}
}

// seededApp returns a test app holding the sample parish.
func seededApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := executeCmd(t, app, "seed")
	require.NoError(t, err)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr without colour codes.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// --- seed / import / export ---

func TestSeedCmd_LoadsSampleParish(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 22 entities under 0 and 12 Mass times")

	out, err = executeCmd(t, app, "entity", "tree", "--depth", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "St. Mary's Parish (0)")
	assert.Contains(t, out, "Ministries (ministries)")
	assert.NotContains(t, out, "Parish Choir")
}

func TestSeedCmd_RefusesToOverwriteWithoutForce(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = executeCmd(t, app, "seed", "--force")
	require.NoError(t, err)
}

func TestImportCmd_YAMLFile(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "import", filepath.Join("..", "importer", "testdata", "parish.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 5 entities under st-anne and 2 Mass times")

	out, err = executeCmd(t, app, "entity", "path", "choir")
	require.NoError(t, err)
	assert.Contains(t, out, "St. Anne's Parish › Ministries › Music Ministry › Parish Choir")

	out, err = executeCmd(t, app, "mass", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "Parish Mass")
	assert.NotContains(t, out, "Solemn Mass")
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestExportCmd_RoundTrip(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "parish.json")

	out, err := executeCmd(t, app, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "St. Mary's Parish"`)

	fresh := testApp(t)
	out, err = executeCmd(t, fresh, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 22 entities under 0")
}

// --- entity reads ---

func TestEntityGetCmd_ShowsChildren(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "get", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Music Ministry")
	assert.Contains(t, out, "Children")
	assert.Contains(t, out, "Parish Choir")
	assert.Contains(t, out, "Cantors")
}

func TestEntityGetCmd_EmptyDirectoryHint(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "entity", "get", "music")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "parish seed")
}

func TestEntityKindCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "kind", "group")
	require.NoError(t, err)
	assert.Contains(t, out, "Knights of Columbus")
	assert.NotContains(t, out, "Parish Choir")

	_, err = executeCmd(t, app, "entity", "kind", "parish")
	require.Error(t, err)
}

func TestEntityOrphansAndCheckCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "orphans")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")

	out, err = executeCmd(t, app, "entity", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "directory is valid (22 entities)")
}

func TestEntityParentCmd_RootHasNoParent(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "parent", "choir")
	require.NoError(t, err)
	assert.Contains(t, out, "Music Ministry")

	_, err = executeCmd(t, app, "entity", "parent", "0")
	require.Error(t, err)
}

// --- entity writes ---

func TestEntityAddCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "add",
		"--parent", "music", "--kind", "activity", "--title", "  Handbells  ", "--id", "handbells")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Handbells (handbells) under music")

	out, err = executeCmd(t, app, "entity", "children", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Handbells")
}

func TestEntityAddCmd_MissingFlagsWhenNotInteractive(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "entity", "add", "--parent", "music")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
	assert.Contains(t, err.Error(), "title")
}

func TestEntityAddCmd_DuplicateID(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "entity", "add",
		"--parent", "music", "--kind", "activity", "--title", "Choir again", "--id", "choir")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrDuplicateID)
}

func TestEntityUpdateCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "update", "choir",
		"--title", "Adult Choir", "--schedule", "Thursdays 7pm")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Adult Choir (choir)")

	n, err := app.Directory.Get(t.Context(), "choir")
	require.NoError(t, err)
	assert.Equal(t, "Adult Choir", n.Title)
	require.NotNil(t, n.Attributes)
	assert.Equal(t, "Thursdays 7pm", n.Attributes.Schedule)

	_, err = executeCmd(t, app, "entity", "update", "choir", "--email", "choir@example.org")
	require.NoError(t, err)
	n, err = app.Directory.Get(t.Context(), "choir")
	require.NoError(t, err)
	assert.Equal(t, "Thursdays 7pm", n.Attributes.Schedule, "other attributes are kept")
	assert.Equal(t, "choir@example.org", n.Attributes.Email)
}

func TestEntityUpdateCmd_NothingToUpdate(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "entity", "update", "choir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestEntityRemoveCmd(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "entity", "remove", "music")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrHasChildren)

	out, err := executeCmd(t, app, "entity", "remove", "music", "--cascade")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed music (3 entities)")

	_, err = executeCmd(t, app, "entity", "get", "choir")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntityMoveCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "entity", "move", "choir", "--to", "youth")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved choir under youth")

	out, err = executeCmd(t, app, "entity", "path", "choir")
	require.NoError(t, err)
	assert.Contains(t, out, "Youth Ministry › Parish Choir")

	_, err = executeCmd(t, app, "entity", "move", "ministries", "--to", "choir")
	assert.ErrorIs(t, err, service.ErrInvalidMove)
}

// --- mass ---

func TestMassNextCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "next")
	require.NoError(t, err)
	assert.Contains(t, out, "Next Mass")
	assert.Contains(t, out, "Solemn Mass")
	assert.Contains(t, out, "Starts in 01h 30m 00s")
}

// tickingClock advances a second every time it is read.
type tickingClock struct {
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

func TestMassNextCmd_SingleClockReading(t *testing.T) {
	app := testApp(t)
	clock := &tickingClock{now: sundayMorning}
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	app.Schedule = service.NewScheduleService(uow, repository.NewSQLiteRepos, clock, 0)
	app.Clock = clock

	out, err := executeCmd(t, app, "mass", "next")
	require.NoError(t, err)
	assert.Contains(t, out, "Starts in 01h 30m 00s")

	clock.now = sundayMorning
	out, err = executeCmd(t, app, "mass", "countdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Today")
	assert.Regexp(t, `00\s+01\s+30\s+00`, out)
}

func TestMassLiveCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "live")
	require.NoError(t, err)
	assert.Contains(t, out, "Mass in progress")
	assert.Contains(t, out, "Family Mass")
}

func TestMassCountdownCmd_Spanish(t *testing.T) {
	app := testApp(t)
	app.Translator = locale.MustNew("es")

	out, err := executeCmd(t, app, "mass", "countdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Domingo")
	assert.Contains(t, out, "minutos")
}

func TestMassUpcomingCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "upcoming", "-n", "3")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. Sunday 11:00  Solemn Mass  (Today)")
	assert.Contains(t, out, " 2. Sunday 17:30  Youth Mass  (Today)")
	assert.Contains(t, out, " 3. Monday 08:00  Daily Mass  (Tomorrow)")

	_, err = executeCmd(t, app, "mass", "upcoming", "-n", "0")
	require.Error(t, err)
}

func TestMassICSCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "ics", "--name", "St. Mary's")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "Solemn Mass")
	assert.Contains(t, out, "St. Mary's")

	path := filepath.Join(t.TempDir(), "mass.ics")
	out, err = executeCmd(t, app, "mass", "ics", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "END:VCALENDAR")
}

func TestMassResetCmd_RestoresDefaults(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", filepath.Join("..", "importer", "testdata", "parish.yaml"))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "mass", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule reset to 12 default Mass times")

	out, err = executeCmd(t, app, "mass", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "Solemn Mass")
}

func TestMassWatchCmd_NonInteractiveSnapshot(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Next Mass")
	assert.Contains(t, out, "Solemn Mass")
	assert.Contains(t, out, "Family Mass has started")
	assert.Equal(t, 1, app.state().Notifications.Len())
}

func TestMassWatchCmd_DurationFlag(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mass", "watch", "--duration", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "No Mass in progress")

	_, err = executeCmd(t, app, "mass", "watch", "--duration", "0")
	require.Error(t, err)
}

// --- prefs ---

func TestPrefsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "prefs", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "system")

	out, err = executeCmd(t, app, "prefs", "set", "--theme", "dark", "--language", "es", "--reduced-motion")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "es")
	assert.Equal(t, domain.ThemeDark, app.state().Preferences.Theme)

	p, err := app.Preferences.Get(t.Context())
	require.NoError(t, err)
	assert.True(t, p.ReducedMotion)
	assert.InDelta(t, 1.0, p.FontScale, 0.001)
}

func TestPrefsSetCmd_Invalid(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "prefs", "set", "--theme", "neon")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidPreferences)

	_, err = executeCmd(t, app, "prefs", "set")
	require.Error(t, err)
}
