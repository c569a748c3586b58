// Package roster defines the player record model shared by the scraper,
// the crawler, CSV storage and the website generator.
//
// A roster is represented as an ordered slice of Record values with a fixed
// column schema (team_id, season, team_name, player_name, fetched_at). Records
// are plain values: they are built once per fetch and never mutated.
package roster
