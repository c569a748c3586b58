package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"arlington-rosters/internal/roster"
)

func testRecords() []roster.Record {
	fetchedAt := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	return roster.Build(19120, "2023/2024", "Lightning",
		[]string{"Alice Smith", "Bob Jones"}, fetchedAt)
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, testRecords(), FormatCSV); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "team_id,season,team_name,player_name,fetched_at" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "19120,2023/2024,Lightning,Alice Smith,2024-01-15T12:30:00Z" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestWriteRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, testRecords(), FormatJSON); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}

	var result struct {
		RowCount int             `json:"row_count"`
		Records  []roster.Record `json:"records"`
	}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.RowCount != 2 {
		t.Errorf("row_count = %d, want 2", result.RowCount)
	}
	if result.Records[0].PlayerName != "Alice Smith" {
		t.Errorf("first record = %q", result.Records[0].PlayerName)
	}
}

func TestWriteRecordsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}

	// Zero rows must still be well-formed: an array, not null
	if !strings.Contains(buf.String(), `"records": []`) {
		t.Errorf("empty result should render an empty array, got %s", buf.String())
	}
}

func TestWriteRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, testRecords(), FormatTable); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TEAM_ID", "Alice Smith", "Bob Jones", "Lightning"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRecordsInvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, testRecords(), OutputFormat("xml")); err == nil {
		t.Error("expected error for invalid format")
	}
}
