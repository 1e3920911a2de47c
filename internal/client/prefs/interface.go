// Package prefs persists the client's small set of primitive preferences
// (theme, session token, saved user, ...) in a local SQLite database,
// keyed by fixed strings.
package prefs

import "context"

// Repository is a string key-value store. Get returns ErrNotFound for a
// missing key. SetMany and DeleteMany apply their whole batch atomically;
// related keys (the saved session) are never left half-written.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// Well-known preference keys. The names match the browser client this
// replaces, so an exported preference dump stays recognizable.
const (
	KeyTheme           = "theme"
	KeyLanguage        = "language"
	KeyAppConfig       = "appConfig"
	KeyRealTimeEnabled = "realTimeEnabled"
	KeyToken           = "token"
	KeyCurrentUser     = "currentUser"
	KeyLoginTime       = "loginTime"
)
