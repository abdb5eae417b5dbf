package corpus

import "sort"

// DefaultTopN is the number of ranked entities kept per subset.
const DefaultTopN = 20

// RankEntities flattens the per-record entity lists, counts exact matches
// and returns at most limit entries ordered by count descending. Entities
// with equal counts keep the order in which they were first seen. A limit
// of zero or less means DefaultTopN.
func RankEntities(lists [][]string, limit int) []RankedEntity {
	if limit <= 0 {
		limit = DefaultTopN
	}
	index := make(map[string]int)
	ranked := []RankedEntity{}
	for _, list := range lists {
		for _, name := range list {
			if i, ok := index[name]; ok {
				ranked[i].Count++
				continue
			}
			index[name] = len(ranked)
			ranked = append(ranked, RankedEntity{Name: name, Count: 1})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
