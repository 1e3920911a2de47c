// Package utils holds the pure helper functions shared by the stores and
// the CLI: formatting, validation, debounce/throttle, deep copy and image
// downscaling. Nothing here keeps state.
package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDateTime renders t as "2006-01-02 15:04:05", or "-" for a zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("15:04:05")
}

// FormatRelativeTime renders the distance between now and t ("just now",
// "5 minutes ago", ...).
func FormatRelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	minutes := int(now.Sub(t).Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%d hours ago", minutes/60)
	case minutes < 30*24*60:
		return fmt.Sprintf("%d days ago", minutes/(24*60))
	case minutes < 12*30*24*60:
		return fmt.Sprintf("%d months ago", minutes/(30*24*60))
	default:
		return fmt.Sprintf("%d years ago", minutes/(12*30*24*60))
	}
}

// FormatFileSize renders a byte count in IEC units ("2.5 MiB").
func FormatFileSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// FormatNumber renders an integer with thousands separators.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercentage renders value with the given number of decimals and a
// trailing percent sign.
func FormatPercentage(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// FormatScore renders a score with one decimal, the contest's display
// precision.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
