// Package scraper provides HTTP fetching and HTML parsing for Arlington
// Hockey Club team roster pages.
//
// The scraper package downloads a team's public roster page and extracts the
// season, team name and ordered player list from its markup. FetchTeamRoster
// combines both steps and yields one roster.Record per player, all rows of a
// fetch sharing a single UTC capture timestamp. Failures are typed: FetchError
// for transport/HTTP problems, ParseError when the expected page structure is
// absent.
package scraper
