package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parish/internal/appstate"
	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Countdown refresh intervals. Reduced motion trades the ticking seconds
// for a once-a-minute refresh.
const (
	watchTickInterval        = time.Second
	watchReducedTickInterval = time.Minute
)

// templateCacheKey holds the loaded Mass template in the app state cache.
// Ticks reuse it until templateMaxAge passes or the user reloads.
const (
	templateCacheKey = "mass.template"
	templateMaxAge   = 5 * time.Minute
)

// tickMsg carries the wall time of a timer firing. The model always reads
// its own clock, so the payload is informational.
type tickMsg time.Time

func watchTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type watchKeyMap struct {
	Quit    key.Binding
	Dismiss key.Binding
	Reload  key.Binding
	Help    key.Binding
}

func newWatchKeyMap(tr *locale.Translator) watchKeyMap {
	return watchKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", tr.Msg(locale.MsgQuit))),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", tr.Msg(locale.MsgDismiss))),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", tr.Msg(locale.MsgReload))),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", tr.Msg(locale.MsgHelp))),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Help, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Dismiss, k.Reload}, {k.Help, k.Quit}}
}

// watchModel is a live countdown to the next Mass. Each tick re-resolves
// the template against the clock and announces a Mass once when it starts.
type watchModel struct {
	load     func() (schedule.Template, error)
	template schedule.Template
	loadErr  error
	clock    schedule.Clock
	duration time.Duration
	tr       *locale.Translator
	state    *appstate.State
	interval time.Duration

	keys watchKeyMap
	help help.Model

	now     time.Time
	next    domain.Occurrence
	hasNext bool
	live    domain.Occurrence
	isLive  bool

	// announced identifies the last occurrence a notification was pushed for.
	announced string
}

// newWatchModel builds the model and resolves the first frame. load is
// called on a cache miss; a failed load keeps the previous template.
func newWatchModel(load func() (schedule.Template, error), clock schedule.Clock, duration time.Duration, tr *locale.Translator, state *appstate.State) *watchModel {
	if duration <= 0 {
		duration = schedule.DefaultDuration
	}
	m := &watchModel{
		load:     load,
		clock:    clock,
		duration: duration,
		tr:       tr,
		state:    state,
		keys:     newWatchKeyMap(tr),
		help:     help.New(),
		interval: watchTickInterval,
	}
	if state.Preferences.ReducedMotion {
		m.interval = watchReducedTickInterval
	}
	m.help.ShowAll = state.UI.HelpOpen
	m.refresh()
	return m
}

func occurrenceKey(o domain.Occurrence) string {
	return o.At.Format(time.RFC3339) + "|" + o.Slot.Label
}

func (m *watchModel) loadTemplate() {
	if v, ok := m.state.Get(templateCacheKey, m.now, templateMaxAge); ok {
		if t, ok := v.(schedule.Template); ok {
			m.template = t
			return
		}
	}
	t, err := m.load()
	if err != nil {
		m.loadErr = err
		return
	}
	m.template, m.loadErr = t, nil
	m.state.Put(templateCacheKey, t, m.now)
}

func (m *watchModel) refresh() {
	m.now = m.clock.Now()
	m.loadTemplate()
	m.next, m.hasNext = schedule.FindNextOccurrence(m.template, m.now)
	m.live, m.isLive = schedule.CurrentOccurrence(m.template, m.now, m.duration)

	if m.isLive {
		if k := occurrenceKey(m.live); k != m.announced {
			m.announced = k
			m.state.Notify(domain.NotifySuccess,
				m.tr.Msg(locale.MsgLive),
				m.tr.Msgf(locale.MsgStarted, map[string]any{"Label": m.live.Slot.Label}),
				m.now)
		}
	}
	m.state.Notifications.Evict(m.now)
}

func (m *watchModel) Init() tea.Cmd {
	return watchTick(m.interval)
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		return m, watchTick(m.interval)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			active := m.state.Notifications.Active(m.now)
			if len(active) > 0 {
				m.state.Notifications.Dismiss(active[len(active)-1].ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.state.Invalidate(templateCacheKey)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = m.state.ToggleHelp()
			return m, nil
		}
	}
	return m, nil
}

func notificationStyle(level domain.NotificationLevel) lipgloss.Style {
	switch level {
	case domain.NotifySuccess:
		return formatter.StyleGreen
	case domain.NotifyWarning:
		return formatter.StyleYellowBold
	case domain.NotifyError:
		return lipgloss.NewStyle().Foreground(formatter.ColorRed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(formatter.ColorBlue)
	}
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header(m.tr.Msg(locale.MsgNextMass)) + "\n\n")
	if !m.hasNext {
		b.WriteString(formatter.Dim(m.tr.Msg(locale.MsgNoMass)) + "\n")
	} else {
		b.WriteString(formatter.FormatOccurrence(m.next, m.now, m.tr) + "\n\n")
		b.WriteString(formatter.FormatCountdownLabels(schedule.TimeRemaining(m.next.At, m.now), m.tr) + "\n")
	}
	b.WriteString("\n" + formatter.FormatLive(m.live, m.isLive, m.tr))
	if m.loadErr != nil {
		b.WriteString("\n" + formatter.StyleRed.Render(m.loadErr.Error()) + "\n")
	}

	if active := m.state.Notifications.Active(m.now); len(active) > 0 {
		b.WriteString("\n")
		for _, n := range active {
			b.WriteString(fmt.Sprintf("%s %s\n", notificationStyle(n.Level).Render("▌ "+n.Title), n.Message))
		}
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}
