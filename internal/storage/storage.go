package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"arlington-rosters/internal/roster"
)

// FilePattern matches the crawl batch files this package writes.
const FilePattern = "ArlingtonIce-*.csv"

// BatchFilename names the CSV file for a crawl of the id range
// [startID, endID].
func BatchFilename(startID, endID int) string {
	return fmt.Sprintf("ArlingtonIce-%d-%d.csv", startID, endID)
}

// Store reads and writes roster CSV batches in a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
// A leading ~/ is expanded to the home directory.
func New(dir string) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// WriteBatch writes a crawl's records to ArlingtonIce-<start>-<end>.csv and
// returns the file path.
func (s *Store) WriteBatch(startID, endID int, records []roster.Record) (string, error) {
	path := filepath.Join(s.dir, BatchFilename(startID, endID))
	if err := WriteFile(path, records); err != nil {
		return "", err
	}
	return path, nil
}

// ReadAll reads every batch file in the store, normalizes season labels and
// drops rows that are exact duplicates across files. Per-file row order is
// preserved; files are read in lexical path order.
func (s *Store) ReadAll() ([]roster.Record, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, FilePattern))
	if err != nil {
		return nil, fmt.Errorf("listing batch files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", FilePattern, s.dir)
	}
	sort.Strings(paths)

	var combined []roster.Record
	seen := make(map[roster.Record]bool)

	for _, path := range paths {
		records, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			r.Season = NormalizeSeason(r.Season)
			if seen[r] {
				continue
			}
			seen[r] = true
			combined = append(combined, r)
		}
	}

	return combined, nil
}

// WriteFile writes records as CSV with the roster column header.
func WriteFile(path string, records []roster.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(roster.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	return f.Close()
}

// ReadFile reads one roster CSV file written by WriteFile.
func ReadFile(path string) ([]roster.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := rows[0]
	if len(header) != len(roster.Columns) {
		return nil, fmt.Errorf("%s: expected %d columns, got %d", path, len(roster.Columns), len(header))
	}
	for i, col := range roster.Columns {
		if header[i] != col {
			return nil, fmt.Errorf("%s: column %d is %q, want %q", path, i, header[i], col)
		}
	}

	records := make([]roster.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		teamID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad team_id %q: %w", path, i+1, row[0], err)
		}
		fetchedAt, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad fetched_at %q: %w", path, i+1, row[4], err)
		}
		records = append(records, roster.Record{
			TeamID:     teamID,
			Season:     row[1],
			TeamName:   row[2],
			PlayerName: row[3],
			FetchedAt:  fetchedAt,
		})
	}

	return records, nil
}

// seasonPattern captures two year fragments out of labels like
// "23/24 Season", "2025/2026 SEASON" or "2023-2024".
var seasonPattern = regexp.MustCompile(`(\d{2,4})[\s/\\-]+(\d{2,4})`)

// NormalizeSeason rewrites a season label to "YYYY/YYYY". Two-digit years
// below 50 expand to 20xx, the rest to 19xx. Labels with no recognizable
// year pair pass through unchanged.
func NormalizeSeason(season string) string {
	matches := seasonPattern.FindStringSubmatch(season)
	if matches == nil {
		return season
	}
	return expandYear(matches[1]) + "/" + expandYear(matches[2])
}

func expandYear(year string) string {
	if len(year) != 2 {
		return year
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	if n < 50 {
		return "20" + year
	}
	return "19" + year
}
