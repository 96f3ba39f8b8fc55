// Package appstate holds the interactive application state: UI flags, a
// content cache, the persisted preferences slice and the notification
// queue. A State is created once and passed explicitly to whatever needs
// it. It is not safe for concurrent use.
package appstate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
)

// DefaultQueueCapacity bounds the notification queue.
const DefaultQueueCapacity = 8

// UIFlags are transient view toggles.
type UIFlags struct {
	HelpOpen bool
}

// CacheEntry is a cached content payload and when it was fetched.
type CacheEntry struct {
	Value     any
	FetchedAt time.Time
}

// State is the application state passed to views and commands.
type State struct {
	UI            UIFlags
	Preferences   domain.Preferences
	Notifications *NotificationQueue

	cache map[string]CacheEntry
}

// New returns a state with default preferences and an empty queue.
func New() *State {
	return &State{
		Preferences:   domain.DefaultPreferences(),
		Notifications: NewNotificationQueue(DefaultQueueCapacity, DefaultNotificationTTL),
		cache:         make(map[string]CacheEntry),
	}
}

// Put stores value under key as fetched at now.
func (s *State) Put(key string, value any, now time.Time) {
	s.cache[key] = CacheEntry{Value: value, FetchedAt: now}
}

// Get returns the cached value for key when it is younger than maxAge.
// A non-positive maxAge accepts any age.
func (s *State) Get(key string, now time.Time, maxAge time.Duration) (any, bool) {
	e, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if maxAge > 0 && now.Sub(e.FetchedAt) >= maxAge {
		return nil, false
	}
	return e.Value, true
}

// Invalidate drops key from the cache.
func (s *State) Invalidate(key string) {
	delete(s.cache, key)
}

// Notify pushes a notification and returns the stored copy.
func (s *State) Notify(level domain.NotificationLevel, title, message string, now time.Time) domain.Notification {
	return s.Notifications.Push(domain.Notification{Level: level, Title: title, Message: message}, now)
}

// ToggleHelp flips the full-help flag and returns the new value.
func (s *State) ToggleHelp() bool {
	s.UI.HelpOpen = !s.UI.HelpOpen
	return s.UI.HelpOpen
}

// MarshalPreferences serialises the persisted slice of s.
func MarshalPreferences(s *State) ([]byte, error) {
	data, err := json.Marshal(s.Preferences)
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	return data, nil
}

// UnmarshalPreferences decodes a persisted slice. Missing fields keep
// their defaults; unknown themes and non-positive font scales are reset.
func UnmarshalPreferences(data []byte) (domain.Preferences, error) {
	p := domain.DefaultPreferences()
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("decoding preferences: %w", err)
	}
	def := domain.DefaultPreferences()
	if !p.Theme.Valid() {
		p.Theme = def.Theme
	}
	if p.FontScale <= 0 {
		p.FontScale = def.FontScale
	}
	if p.Language == "" {
		p.Language = def.Language
	}
	return p, nil
}
