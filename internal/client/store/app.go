package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unioncup/contestdesk/internal/client/prefs"
	"github.com/unioncup/contestdesk/internal/logging"
)

// maxNotifications bounds the retained notification list; the oldest entries
// fall off the end.
const maxNotifications = 50

// Notification is one user-facing message. Read is flipped by the user, not
// by display.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// AppStore holds cross-cutting UI state: notifications, theme, language, the
// server-provided app config blob, the real-time refresh toggle and the
// last-update timestamp. It implements Notifier for the domain stores.
// Durable bits round-trip through the prefs repository.
type AppStore struct {
	mu    sync.Mutex
	prefs prefs.Repository
	log   logging.Logger

	notifications   []Notification
	theme           string
	language        string
	appConfig       string
	realTimeEnabled bool
	lastUpdateTime  time.Time

	now   func() time.Time
	newID func() string
}

func NewAppStore(repo prefs.Repository, log logging.Logger) *AppStore {
	return &AppStore{
		prefs:           repo,
		log:             log,
		theme:           "light",
		language:        "en",
		realTimeEnabled: true,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// Load restores the persisted preferences. Missing keys keep their defaults;
// a broken prefs store is logged and ignored.
func (s *AppStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, err := s.prefs.Get(ctx, prefs.KeyTheme); err == nil {
		s.theme = v
	} else if !errors.Is(err, prefs.ErrNotFound) {
		s.log.Warn(ctx, "load theme preference", "error", err)
	}
	if v, err := s.prefs.Get(ctx, prefs.KeyLanguage); err == nil {
		s.language = v
	}
	if v, err := s.prefs.Get(ctx, prefs.KeyAppConfig); err == nil {
		s.appConfig = v
	}
	if v, err := s.prefs.Get(ctx, prefs.KeyRealTimeEnabled); err == nil {
		if b, err := strconv.ParseBool(v); err == nil {
			s.realTimeEnabled = b
		}
	}
}

// AddNotification appends a notification at the head of the list, evicting
// the oldest entry past the cap.
func (s *AppStore) AddNotification(kind NotificationKind, title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        s.newID(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Timestamp: s.now(),
	}
	s.notifications = append([]Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
}

// Notifications returns a snapshot, newest first.
func (s *AppStore) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *AppStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *AppStore) UnreadNotifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Notification
	for _, n := range s.notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

func (s *AppStore) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

func (s *AppStore) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

func (s *AppStore) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

func (s *AppStore) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

func (s *AppStore) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *AppStore) SetTheme(ctx context.Context, theme string) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	if err := s.prefs.Set(ctx, prefs.KeyTheme, theme); err != nil {
		s.log.Warn(ctx, "persist theme", "error", err)
	}
}

func (s *AppStore) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *AppStore) SetLanguage(ctx context.Context, lang string) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	if err := s.prefs.Set(ctx, prefs.KeyLanguage, lang); err != nil {
		s.log.Warn(ctx, "persist language", "error", err)
	}
}

// AppConfig returns the cached server config blob as raw JSON text.
func (s *AppStore) AppConfig() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appConfig
}

func (s *AppStore) SetAppConfig(ctx context.Context, raw string) {
	s.mu.Lock()
	s.appConfig = raw
	s.mu.Unlock()
	if err := s.prefs.Set(ctx, prefs.KeyAppConfig, raw); err != nil {
		s.log.Warn(ctx, "persist app config", "error", err)
	}
}

func (s *AppStore) RealTimeEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realTimeEnabled
}

func (s *AppStore) SetRealTimeEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	s.realTimeEnabled = enabled
	s.mu.Unlock()
	if err := s.prefs.Set(ctx, prefs.KeyRealTimeEnabled, strconv.FormatBool(enabled)); err != nil {
		s.log.Warn(ctx, "persist real-time toggle", "error", err)
	}
}

// UpdateLastUpdateTime stamps the moment any store last changed server data.
func (s *AppStore) UpdateLastUpdateTime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdateTime = s.now()
}

func (s *AppStore) LastUpdateTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdateTime
}
