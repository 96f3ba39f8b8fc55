package domain

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences is the only slice of application state that survives a restart.
type Preferences struct {
	Theme         Theme   `json:"theme"`
	Language      string  `json:"language"`
	ReducedMotion bool    `json:"reducedMotion"`
	FontScale     float64 `json:"fontScale"`
}

// DefaultPreferences returns the preferences used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:     ThemeSystem,
		Language:  "en",
		FontScale: 1.0,
	}
}

// Valid reports whether theme is a known value.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
