package roster

import (
	"strconv"
	"time"
)

// Record is one row of roster output: a single player on a single team
// as captured by one fetch. All records built from the same fetch share
// TeamID, Season, TeamName and FetchedAt.
type Record struct {
	TeamID     int       `json:"team_id"`
	Season     string    `json:"season"`
	TeamName   string    `json:"team_name"`
	PlayerName string    `json:"player_name"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Columns is the output column order used by every renderer (table, CSV, site).
var Columns = []string{"team_id", "season", "team_name", "player_name", "fetched_at"}

// Row renders the record as CSV/table cells in Columns order.
// FetchedAt is rendered as RFC 3339 UTC.
func (r Record) Row() []string {
	return []string{
		strconv.Itoa(r.TeamID),
		r.Season,
		r.TeamName,
		r.PlayerName,
		r.FetchedAt.UTC().Format(time.RFC3339),
	}
}

// Build constructs one Record per player name, in the given order, all
// sharing the same team id, season, team name and capture timestamp. The
// timestamp is taken once by the caller so that every row of a fetch
// carries the identical value.
func Build(teamID int, season, teamName string, players []string, fetchedAt time.Time) []Record {
	records := make([]Record, 0, len(players))
	for _, name := range players {
		records = append(records, Record{
			TeamID:     teamID,
			Season:     season,
			TeamName:   teamName,
			PlayerName: name,
			FetchedAt:  fetchedAt,
		})
	}
	return records
}
