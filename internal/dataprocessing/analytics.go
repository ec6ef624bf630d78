package dataprocessing

import (
	"math"
	"sort"
)

// Group is the summed measure of one dimension value
type Group struct {
	Key   string
	Sum   float64
	Count int
}

// GroupSum sums measure per distinct value of dimension. Groups are sorted by
// key and every row lands in exactly one group; empty measure cells count as 0.
func GroupSum(t *Table, dimension, measure string) ([]Group, error) {
	keys, err := t.Text(dimension)
	if err != nil {
		return nil, err
	}
	values, err := t.Numeric(measure)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups []Group
	for i, key := range keys {
		g, ok := index[key]
		if !ok {
			g = len(groups)
			index[key] = g
			groups = append(groups, Group{Key: key})
		}
		groups[g].Count++
		if !math.IsNaN(values[i]) {
			groups[g].Sum += values[i]
		}
	}

	sort.Slice(groups, func(a, b int) bool {
		return groups[a].Key < groups[b].Key
	})
	return groups, nil
}

// Share returns each group's fraction of the combined sum
func Share(groups []Group) []float64 {
	var total float64
	for _, g := range groups {
		total += g.Sum
	}
	shares := make([]float64, len(groups))
	if total == 0 {
		return shares
	}
	for i, g := range groups {
		shares[i] = g.Sum / total
	}
	return shares
}
