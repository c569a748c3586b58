package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arlington-rosters/internal/roster"
)

func writeRaw(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0644)
}

func sampleRecords(fetchedAt time.Time) []roster.Record {
	return roster.Build(19120, "23/24 Season", "Lightning",
		[]string{"Alice Smith", "Bob Jones", "Alice Smith"}, fetchedAt)
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fetchedAt := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	records := sampleRecords(fetchedAt)

	path := filepath.Join(dir, "roster.csv")
	require.NoError(t, WriteFile(path, records))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadFileRejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, writeRaw(t, path, "a,b,c\n1,2,3\n"))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestWriteBatch(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := store.WriteBatch(19120, 19121, sampleRecords(time.Now().UTC().Truncate(time.Second)))
	require.NoError(t, err)
	assert.Equal(t, "ArlingtonIce-19120-19121.csv", filepath.Base(path))
}

func TestReadAll(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	fetchedAt := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	batch1 := roster.Build(19120, "23/24 Season", "Lightning", []string{"Alice Smith"}, fetchedAt)
	batch2 := roster.Build(114938, "2023-2024", "Thunder", []string{"Carol Nguyen"}, fetchedAt)

	_, err = store.WriteBatch(19120, 19120, batch1)
	require.NoError(t, err)
	_, err = store.WriteBatch(114938, 114938, batch2)
	require.NoError(t, err)
	// Overlapping crawl repeats batch1 rows exactly; they must collapse.
	_, err = store.WriteBatch(19120, 19121, batch1)
	require.NoError(t, err)

	combined, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, combined, 2)

	// Seasons normalized on the way in
	assert.Equal(t, "2023/2024", combined[0].Season)
	assert.Equal(t, "2023/2024", combined[1].Season)
}

func TestReadAllNoFiles(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadAll()
	assert.Error(t, err)
}

func TestBatchFilename(t *testing.T) {
	assert.Equal(t, "ArlingtonIce-19120-19169.csv", BatchFilename(19120, 19169))
}

func TestNormalizeSeason(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"short years with slash", "23/24 Season", "2023/2024"},
		{"full years", "2025/2026 SEASON", "2025/2026"},
		{"hyphenated", "2023-2024", "2023/2024"},
		{"nineties", "98/99 Season", "1998/1999"},
		{"no year pair", "Spring League", "Spring League"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeSeason(tt.input))
		})
	}
}
