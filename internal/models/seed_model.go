package models

import "fmt"

// SeedStrategy decides how fixture data is written into a collection at startup.
type SeedStrategy string

const (
	// SeedReplace deletes every document and then inserts the fixture array.
	// A crash between the two steps leaves the collection empty.
	SeedReplace SeedStrategy = "replace"
	// SeedUpsert replaces or inserts each fixture record keyed on its id and
	// leaves other documents alone.
	SeedUpsert SeedStrategy = "upsert"
)

func ParseSeedStrategy(s string) (SeedStrategy, error) {
	switch SeedStrategy(s) {
	case SeedReplace, SeedUpsert:
		return SeedStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown seed strategy %q (want %q or %q)", s, SeedReplace, SeedUpsert)
	}
}

// SeedResult counts what a seed run did to one collection.
type SeedResult struct {
	// Written is the number of fixture records stored by the run.
	Written  int64
	Deleted  int64
	Modified int64
	Upserted int64
}
