// Package site generates the static player and team directory website from
// combined roster records: an index page, one page per player listing their
// teams and teammates, and one page per team-season listing its roster.
package site
