package scraper

import "fmt"

// FetchError reports a failed roster page download: either a transport-level
// failure (Err set, StatusCode zero) or a non-200 HTTP response (StatusCode
// set). Fetches are never retried automatically.
type FetchError struct {
	TeamID     int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching team %d: %v", e.TeamID, e.Err)
	}
	return fmt.Sprintf("fetching team %d: unexpected status code: %d", e.TeamID, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that the fetched HTML did not contain the expected
// roster structure. Missing structure fails loudly rather than yielding an
// empty result, so site layout drift and bad team ids surface early.
// TeamID is zero when the error comes straight out of Extract; FetchTeamRoster
// fills it in.
type ParseError struct {
	TeamID int
	Detail string
}

func (e *ParseError) Error() string {
	if e.TeamID != 0 {
		return fmt.Sprintf("parsing roster for team %d: %s", e.TeamID, e.Detail)
	}
	return "parsing roster: " + e.Detail
}
