// Package daybook implements an in-memory store of dated entries with
// store-assigned identifiers, and the build contract that lets external
// producers fill a store without knowing its representation.
package daybook

import (
	"sort"
	"time"
)

// Store is an immutable collection of entries keyed by identifier.
//
// Every mutating operation returns a new Store and leaves the receiver
// untouched, so older values remain valid snapshots. Identifiers start
// at 1 and strictly increase for the lifetime of a store's lineage;
// deleting an entry never frees its identifier for reuse.
//
// The zero value is an empty store, ready for use.
type Store struct {
	nextID  int
	entries map[int]Entry
}

// New returns a store holding the given raw entries with identifiers
// 1..len(raw) assigned in argument order. With no arguments it returns
// an empty store whose first assigned identifier is 1.
func New(raw ...RawEntry) Store {
	s := Store{nextID: 1}
	for _, r := range raw {
		s = s.Add(r)
	}
	return s
}

// NextID reports the identifier the next Add will assign. It is at
// least 1 and never decreases, not even across deletions.
func (s Store) NextID() int {
	if s.nextID < 1 {
		return 1
	}
	return s.nextID
}

// Len reports the number of entries held.
func (s Store) Len() int {
	return len(s.entries)
}

// Get returns the entry with the given identifier, if present.
func (s Store) Get(id int) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Add assigns the next identifier to raw and returns a store holding
// the new entry alongside everything the receiver holds. The date is
// stored in calendar form, midnight UTC. Raw input is otherwise trusted
// here; malformed data must be rejected before it reaches the store.
func (s Store) Add(raw RawEntry) Store {
	id := s.NextID()

	entries := make(map[int]Entry, len(s.entries)+1)
	for k, v := range s.entries {
		entries[k] = v
	}
	entries[id] = Entry{ID: id, Date: midnightUTC(raw.Date), Title: raw.Title}

	return Store{nextID: id + 1, entries: entries}
}

// ListByDate returns every entry whose date falls on the same UTC
// calendar day as date, in ascending identifier order. Exact day match
// only; a day with no entries yields an empty result, never an error.
func (s Store) ListByDate(date time.Time) []Entry {
	key := dayKey(date)

	var matches []Entry
	for _, e := range s.entries {
		if dayKey(e.Date) == key {
			matches = append(matches, e)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID < matches[j].ID
	})

	return matches
}

// All returns every entry in ascending identifier order.
func (s Store) All() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}

// Update applies fn to the entry with the given identifier and returns
// a store holding the result. An absent id is a no-op, not an error.
// The stored entry keeps id regardless of what fn returns: an
// identifier written by fn is ignored and forced back. The date fn
// returns is stored in calendar form, midnight UTC.
func (s Store) Update(id int, fn func(Entry) Entry) Store {
	current, ok := s.entries[id]
	if !ok {
		return s
	}

	updated := fn(current)
	updated.ID = id
	updated.Date = midnightUTC(updated.Date)

	entries := make(map[int]Entry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	entries[id] = updated

	return Store{nextID: s.NextID(), entries: entries}
}

// Put replaces the entry whose identifier matches e.ID and returns the
// resulting store. Like Update, an unknown identifier is a no-op.
func (s Store) Put(e Entry) Store {
	return s.Update(e.ID, func(Entry) Entry { return e })
}

// Delete removes the entry with the given identifier and returns the
// resulting store. Absent ids are a no-op. The identifier is not freed:
// it will never be assigned again within this store's lineage.
func (s Store) Delete(id int) Store {
	if _, ok := s.entries[id]; !ok {
		return s
	}

	entries := make(map[int]Entry, len(s.entries)-1)
	for k, v := range s.entries {
		if k != id {
			entries[k] = v
		}
	}

	return Store{nextID: s.NextID(), entries: entries}
}
