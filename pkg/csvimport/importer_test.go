package csvimport_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-daybook/pkg/csvimport"
	"github.com/comitanigiacomo/kanso-daybook/pkg/daybook"
)

func quietImporter() *csvimport.Importer {
	return csvimport.New(csvimport.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestImporter_ImportFile(t *testing.T) {
	t.Run("Success: Should import entries in file order", func(t *testing.T) {
		store, err := quietImporter().ImportFile(filepath.Join("testdata", "entries.csv"))

		require.NoError(t, err)
		require.Equal(t, 3, store.Len())
		assert.Equal(t, 4, store.NextID())

		want := []struct {
			id    int
			date  time.Time
			title string
		}{
			{1, daybook.Date(2023, time.December, 19), "Dentist"},
			{2, daybook.Date(2023, time.December, 20), "Shopping"},
			{3, daybook.Date(2023, time.December, 19), "Movies"},
		}
		for _, w := range want {
			e, ok := store.Get(w.id)
			require.True(t, ok)
			assert.Equal(t, w.id, e.ID)
			assert.True(t, e.Date.Equal(w.date))
			assert.Equal(t, w.title, e.Title)
		}

		onDec19 := store.ListByDate(daybook.Date(2023, time.December, 19))
		require.Len(t, onDec19, 2)
		assert.Equal(t, "Dentist", onDec19[0].Title)
		assert.Equal(t, "Movies", onDec19[1].Title)
	})

	t.Run("Fail: Should surface a missing resource", func(t *testing.T) {
		store, err := quietImporter().ImportFile(filepath.Join("testdata", "no_such.csv"))

		assert.Error(t, err)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Success: Should render the imported store stably", func(t *testing.T) {
		store, err := quietImporter().ImportFile(filepath.Join("testdata", "entries.csv"))
		require.NoError(t, err)

		rendered, err := json.MarshalIndent(store.All(), "", "  ")
		require.NoError(t, err)

		g := goldie.New(t,
			goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, "import_entries", rendered)
	})
}

func TestImporter_Import(t *testing.T) {
	t.Run("Success: Should build a store from any reader", func(t *testing.T) {
		input := "2024-01-02,Planning\n2024-01-03,Review"

		store, err := quietImporter().Import(strings.NewReader(input))

		require.NoError(t, err)
		require.Equal(t, 2, store.Len())

		e, ok := store.Get(2)
		require.True(t, ok)
		assert.Equal(t, "Review", e.Title)
		assert.True(t, e.Date.Equal(daybook.Date(2024, time.January, 3)))
	})

	t.Run("Success: Should return an empty store for empty input", func(t *testing.T) {
		store, err := quietImporter().Import(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, 1, store.NextID())
	})

	t.Run("Success: Should import lines of any length", func(t *testing.T) {
		title := strings.Repeat("k", 128*1024)
		input := "2023-12-19," + title + "\n2023-12-20,short"

		store, err := quietImporter().Import(strings.NewReader(input))

		require.NoError(t, err)
		require.Equal(t, 2, store.Len())

		e, ok := store.Get(1)
		require.True(t, ok)
		assert.Equal(t, title, e.Title)
	})

	t.Run("Fail: Should abort the whole import on a malformed line", func(t *testing.T) {
		input := "2023-12-19,Dentist\nno delimiter here\n2023-12-20,Shopping"

		store, err := quietImporter().Import(strings.NewReader(input))

		assert.ErrorIs(t, err, csvimport.ErrMalformedLine)
		assert.ErrorContains(t, err, "line 2")
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Fail: Should abort on a malformed date and name the line", func(t *testing.T) {
		input := "2023-12-19,Dentist\n2023-12-19,Fine\n2023-99-99,Broken"

		store, err := quietImporter().Import(strings.NewReader(input))

		assert.ErrorIs(t, err, csvimport.ErrMalformedDate)
		assert.ErrorContains(t, err, "line 3")
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Fail: Should propagate reader failures", func(t *testing.T) {
		readErr := errors.New("disk on fire")

		store, err := quietImporter().Import(iotest.ErrReader(readErr))

		assert.ErrorIs(t, err, readErr)
		assert.Equal(t, 0, store.Len())
	})
}
