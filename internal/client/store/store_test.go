package store

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/unioncup/contestdesk/internal/client/prefs"
	"github.com/unioncup/contestdesk/internal/logging"
)

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeNotifier records everything posted through the Notifier interface.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []Notification
	updates       int
}

func (f *fakeNotifier) AddNotification(kind NotificationKind, title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, Notification{Kind: kind, Title: title, Message: message})
}

func (f *fakeNotifier) UpdateLastUpdateTime() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
}

func (f *fakeNotifier) kinds() []NotificationKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]NotificationKind, len(f.notifications))
	for i, n := range f.notifications {
		out[i] = n.Kind
	}
	return out
}

// memPrefs is an in-memory prefs.Repository for store tests.
type memPrefs struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{data: map[string]string{}}
}

func (m *memPrefs) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", prefs.ErrNotFound
	}
	return v, nil
}

func (m *memPrefs) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memPrefs) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *memPrefs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func (m *memPrefs) DeleteMany(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memPrefs) List(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memPrefs) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	return nil
}
