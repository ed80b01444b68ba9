package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultJournalSize is how many entries a journal keeps
const DefaultJournalSize = 500

// JournalEntry is one recorded event
type JournalEntry struct {
	At    time.Time
	Event DomainEvent
}

// String renders the entry as a single journal line
func (e JournalEntry) String() string {
	return e.At.Format("15:04:05.000") + "  " + Describe(e.Event)
}

// Journal keeps the most recent events in arrival order
type Journal struct {
	entries []JournalEntry
	size    int
	now     func() time.Time
}

// NewJournal creates a journal holding at most size entries
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{size: size, now: time.Now}
}

// Record appends an event, dropping the oldest entry when full
func (j *Journal) Record(e DomainEvent) {
	j.entries = append(j.entries, JournalEntry{At: j.now(), Event: e})
	if over := len(j.entries) - j.size; over > 0 {
		j.entries = append(j.entries[:0], j.entries[over:]...)
	}
}

// Entries returns a copy of the recorded entries, oldest first
func (j *Journal) Entries() []JournalEntry {
	return append([]JournalEntry(nil), j.entries...)
}

// Len returns the number of entries
func (j *Journal) Len() int { return len(j.entries) }

// Last returns the most recent entry
func (j *Journal) Last() (JournalEntry, bool) {
	if len(j.entries) == 0 {
		return JournalEntry{}, false
	}
	return j.entries[len(j.entries)-1], true
}

// Text renders the whole journal, one entry per line
func (j *Journal) Text() string {
	var b strings.Builder
	for _, e := range j.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Describe renders an event for humans
func Describe(e DomainEvent) string {
	switch ev := e.(type) {
	case SheetPresentedEvent:
		return fmt.Sprintf("presented at %s", ev.Detent)
	case DetentChangedEvent:
		return fmt.Sprintf("detent changed to %s", ev.Detent)
	case DismissAttemptedEvent:
		return "dismissal refused"
	case SheetWillDismissEvent:
		return "dismissing"
	case SheetDismissedEvent:
		return "dismissed"
	case DiagnosticEvent:
		return fmt.Sprintf("ignored %s while %s: %v", ev.Op, ev.State, ev.Err)
	case ErrorEvent:
		if ev.Err != nil {
			return fmt.Sprintf("error: %s: %v", ev.Message, ev.Err)
		}
		return "error: " + ev.Message
	case ConfigLoadedEvent:
		if ev.Default {
			return "using default config"
		}
		return "loaded config " + ev.Path
	case ConfigSavedEvent:
		return "saved config " + ev.Path
	case nil:
		return "<nil>"
	default:
		return string(e.Type())
	}
}
