package daybook

import (
	"errors"
	"io"
)

// Builder is implemented by collections that producers can fill with raw
// entries one at a time, without depending on their representation.
type Builder interface {
	// Begin opens a build seeded with the current contents. The builder
	// itself is never modified by the build.
	Begin() Accumulator
}

// Accumulator is the working state of one in-progress build. It is
// private to that build: abandoning it mid-sequence has no effect on the
// builder it came from. An accumulator is spent once Finish is called.
type Accumulator interface {
	// Accept records one raw entry. Identifiers are assigned in the order
	// entries are accepted, exactly as successive Add calls would.
	Accept(raw RawEntry) Accumulator

	// Finish returns the store holding the seed contents plus every
	// accepted entry.
	Finish() Store
}

// Source yields raw entries in order. Next returns io.EOF once the
// sequence is exhausted; any other error aborts the consumer.
type Source interface {
	Next() (RawEntry, error)
}

// Begin opens a build that appends onto the receiver's contents,
// continuing from its next identifier. The receiver is unchanged no
// matter what happens to the build.
func (s Store) Begin() Accumulator {
	entries := make(map[int]Entry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return &batch{nextID: s.NextID(), entries: entries}
}

// batch accumulates into a private map copied from the seed store;
// existing snapshots never observe a build in progress.
type batch struct {
	nextID  int
	entries map[int]Entry
}

func (b *batch) Accept(raw RawEntry) Accumulator {
	b.entries[b.nextID] = Entry{ID: b.nextID, Date: midnightUTC(raw.Date), Title: raw.Title}
	b.nextID++
	return b
}

func (b *batch) Finish() Store {
	return Store{nextID: b.nextID, entries: b.entries}
}

// Collect drains src into a build begun on b and returns the finished
// store. If the source fails, the build is abandoned: the zero Store and
// the error come back, and the builder's own contents are untouched.
func Collect(b Builder, src Source) (Store, error) {
	acc := b.Begin()
	for {
		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			return acc.Finish(), nil
		}
		if err != nil {
			return Store{}, err
		}
		acc = acc.Accept(raw)
	}
}

// SliceSource yields raw entries from an in-memory collection, in slice
// order.
type SliceSource struct {
	raw []RawEntry
	pos int
}

func NewSliceSource(raw ...RawEntry) *SliceSource {
	return &SliceSource{raw: raw}
}

func (s *SliceSource) Next() (RawEntry, error) {
	if s.pos >= len(s.raw) {
		return RawEntry{}, io.EOF
	}

	r := s.raw[s.pos]
	s.pos++
	return r, nil
}
