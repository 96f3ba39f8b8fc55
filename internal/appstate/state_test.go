package appstate

import (
	"testing"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_CacheMaxAge(t *testing.T) {
	s := New()
	s.Put("newsletter", "June issue", testNow)

	v, ok := s.Get("newsletter", testNow.Add(time.Minute), time.Hour)
	require.True(t, ok)
	assert.Equal(t, "June issue", v)

	_, ok = s.Get("newsletter", testNow.Add(time.Hour), time.Hour)
	assert.False(t, ok)

	_, ok = s.Get("newsletter", testNow.Add(24*time.Hour), 0)
	assert.True(t, ok, "zero max age accepts any age")

	s.Invalidate("newsletter")
	_, ok = s.Get("newsletter", testNow, 0)
	assert.False(t, ok)
}

func TestState_ToggleHelp(t *testing.T) {
	s := New()
	assert.True(t, s.ToggleHelp())
	assert.True(t, s.UI.HelpOpen)
	assert.False(t, s.ToggleHelp())
	assert.False(t, s.UI.HelpOpen)
}

func TestState_Notify(t *testing.T) {
	s := New()
	n := s.Notify(domain.NotifySuccess, "Mass started", "Family Mass is under way", testNow)
	assert.Equal(t, domain.NotifySuccess, n.Level)
	assert.Len(t, s.Notifications.Active(testNow), 1)
}

func TestPreferences_RoundTrip(t *testing.T) {
	s := New()
	s.Preferences = domain.Preferences{Theme: domain.ThemeDark, Language: "es", ReducedMotion: true, FontScale: 1.25}
	s.UI.HelpOpen = true

	data, err := MarshalPreferences(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "HelpOpen", "only preferences are persisted")

	p, err := UnmarshalPreferences(data)
	require.NoError(t, err)
	assert.Equal(t, s.Preferences, p)
}

func TestUnmarshalPreferences_Defaults(t *testing.T) {
	p, err := UnmarshalPreferences(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), p)

	p, err = UnmarshalPreferences([]byte(`{"theme":"neon","fontScale":0,"reducedMotion":true}`))
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeSystem, p.Theme)
	assert.Equal(t, 1.0, p.FontScale)
	assert.Equal(t, "en", p.Language)
	assert.True(t, p.ReducedMotion)

	_, err = UnmarshalPreferences([]byte(`{`))
	require.Error(t, err)
}
