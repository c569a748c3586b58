// Package crawler iterates over team ids and concatenates their rosters.
//
// It is the batch driver around scraper.FetchTeamRoster: sequential fetches
// with a polite random delay in between, per-team failures skipped and
// reported rather than aborting the batch.
package crawler
