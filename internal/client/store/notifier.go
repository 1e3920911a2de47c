// Package store holds the client's in-memory state: one store per domain
// resource plus the app-wide and auth stores. Stores own a cache of server
// data, replace it wholesale on fetch, and patch it in place only after the
// server confirms a mutation. All stores are safe for concurrent use; the
// REPL and the refresh ticker touch them from different goroutines.
package store

// NotificationKind classifies a user-facing notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notifier is the one channel a domain store has back to the app store:
// posting notifications and bumping the freshness timestamp. Domain data
// never travels through it.
type Notifier interface {
	AddNotification(kind NotificationKind, title, message string)
	UpdateLastUpdateTime()
}
