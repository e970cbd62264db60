// Package history persists past turns as a JSON Lines log and selects the
// ones recent enough to send back as context.
package history

import (
	"time"

	"github.com/longkey1/askgpt/internal/askgpt"
)

const (
	// DefaultWindow is how far back entries are sent as context.
	DefaultWindow = 15 * time.Minute
	// DefaultLimit is the number of entries kept in the log.
	DefaultLimit = 100
)

// Recent returns the entries at most window old at now, in their original
// order. The boundary is inclusive.
func Recent(entries []askgpt.HistoricMessage, now time.Time, window time.Duration) []askgpt.HistoricMessage {
	var recent []askgpt.HistoricMessage
	for _, e := range entries {
		if now.Sub(e.Timestamp) <= window {
			recent = append(recent, e)
		}
	}
	return recent
}

// Append adds the new entries after the existing ones and keeps only the
// last limit entries, dropping the oldest first. The input slice is not
// modified.
func Append(entries []askgpt.HistoricMessage, limit int, added ...askgpt.HistoricMessage) []askgpt.HistoricMessage {
	all := make([]askgpt.HistoricMessage, 0, len(entries)+len(added))
	all = append(all, entries...)
	all = append(all, added...)

	if limit >= 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all
}
