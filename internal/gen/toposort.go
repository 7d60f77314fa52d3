package gen

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCycle is returned by topoSort when the dependencies form a cycle.
var ErrCycle = errors.New("cycle detected")

// topoSort returns indices in dependency order.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index, so unrelated nodes keep declaration order.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, ErrCycle
	}

	return order, nil
}

// orderTypes puts every type after its parent when both are generated in
// this run. On a parent cycle the declaration order is kept and the error
// is returned for the caller to report.
func orderTypes(types []TypeBuilder) ([]TypeBuilder, error) {
	index := make(map[string]int, len(types))
	for i, t := range types {
		index[t.Info().FullName()] = i
	}

	order, err := topoSort(len(types), func(i int) []int {
		info := types[i].Info()
		if info.Parent == "" {
			return nil
		}

		if j, ok := index[qualify(info.Namespace, info.Parent)]; ok && j != i {
			return []int{j}
		}

		return nil
	})
	if err != nil {
		return types, err
	}

	sorted := make([]TypeBuilder, len(order))
	for k, i := range order {
		sorted[k] = types[i]
	}

	return sorted, nil
}
