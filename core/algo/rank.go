package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/githours/schema"
)

// RankAuthors sorts works by estimated hours in descending order, breaking
// ties by commit count (descending) and then email, and returns the top
// 'limit' authors. A limit of zero or less returns every author.
func RankAuthors(works []schema.AuthorWork, limit int) []schema.AuthorWork {
	slices.SortFunc(works, func(a, b schema.AuthorWork) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Commits, a.Commits); c != 0 {
			return c
		}
		return cmp.Compare(a.Email, b.Email)
	})
	if limit > 0 && len(works) > limit {
		return works[:limit]
	}
	return works
}
