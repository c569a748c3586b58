// Package cli implements the command-line interface for the roster tools.
//
// The cli package provides the Cobra-based CLI: fetching a single team,
// crawling an id range into CSV batches, listing or fuzzy-searching players
// across saved batches, and generating the static directory website. Output
// is rendered as a text table, CSV or JSON.
package cli
