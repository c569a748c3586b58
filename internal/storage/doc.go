// Package storage provides CSV persistence for roster record batches.
//
// Crawl results are written as ArlingtonIce-<start>-<end>.csv files with the
// fixed roster column schema. Reading back combines every matching file in a
// directory, normalizes season labels to a YYYY/YYYY form and drops rows that
// are exact duplicates across files.
package storage
