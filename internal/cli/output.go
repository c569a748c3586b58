package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"arlington-rosters/internal/roster"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatCSV   OutputFormat = "csv"
	FormatJSON  OutputFormat = "json"
)

// jsonResult wraps the records for JSON output.
type jsonResult struct {
	RowCount int             `json:"row_count"`
	Records  []roster.Record `json:"records"`
}

// writeRecords renders records in the requested format. A zero-row result is
// still well-formed: the table and CSV outputs keep their header row, JSON
// reports row_count 0 with an empty records array.
func writeRecords(w io.Writer, records []roster.Record, format OutputFormat) error {
	switch format {
	case FormatTable:
		return writeTable(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	default:
		return fmt.Errorf("invalid format: %s (must be 'table', 'csv' or 'json')", format)
	}
}

func writeTable(w io.Writer, records []roster.Record) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{}
	for _, col := range roster.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := table.Row{}
		for _, cell := range r.Row() {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

func writeCSV(w io.Writer, records []roster.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(roster.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records []roster.Record) error {
	result := jsonResult{
		RowCount: len(records),
		Records:  records,
	}
	if result.Records == nil {
		result.Records = []roster.Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
