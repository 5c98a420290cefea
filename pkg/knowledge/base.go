package knowledge

import "strings"

// Entry pairs a trigger phrase with the remedy text returned when the phrase
// occurs in a user's message.
type Entry struct {
	Trigger string
	Remedy  string
}

// Base is an ordered list of entries. Order is significant: when several
// triggers occur in the same message, the entry that comes first wins.
type Base struct {
	entries []Entry
}

// NewBase copies entries so later changes to the caller's slice can't
// reorder or mutate the base.
func NewBase(entries []Entry) *Base {
	copied := make([]Entry, 0, len(entries))
	for _, e := range entries {
		copied = append(copied, Entry{
			Trigger: strings.ToLower(e.Trigger),
			Remedy:  e.Remedy,
		})
	}
	return &Base{entries: copied}
}

// MatchEntry returns the first entry whose trigger occurs anywhere in message,
// compared case-insensitively.
func (b *Base) MatchEntry(message string) (Entry, bool) {
	lowered := strings.ToLower(message)
	for _, e := range b.entries {
		if e.Trigger == "" {
			continue
		}
		if strings.Contains(lowered, e.Trigger) {
			return e, true
		}
	}
	return Entry{}, false
}

// Match returns the remedy of the first matching entry.
func (b *Base) Match(message string) (string, bool) {
	e, ok := b.MatchEntry(message)
	if !ok {
		return "", false
	}
	return e.Remedy, true
}

// Entries returns a copy of the entries in match order.
func (b *Base) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Base) Len() int {
	return len(b.entries)
}
