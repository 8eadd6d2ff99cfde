package engine

// buildInitialJobs assigns pre-implementation (month 0) job levels per
// §4.3: per employee group, a stovepipe fill in Order-ascending order,
// honoring any pre-existing subgroup (SG) rights applicable at month 0.
// Employees already marked Fur0 never receive a level.
func buildInitialJobs(employees []Employee, input ScenarioInput) (orig []int, fur []bool) {
	n := len(employees)
	orig = make([]int, n)
	fur = make([]bool, n)
	K := input.NumLevels
	FUR := K + 1

	groups := map[int][]int{}
	for i, e := range employees {
		if e.Fur0 == 1 {
			fur[i] = true
			orig[i] = FUR
			continue
		}
		groups[e.EG] = append(groups[e.EG], i)
	}

	rightsByGroupLevel := map[[2]int]PreExRight{}
	for _, r := range input.PreExRights {
		if r.StartMonth <= 0 && 0 < r.EndMonth {
			rightsByGroupLevel[[2]int{r.EG, r.Level}] = r
		}
	}

	for g, idxs := range groups {
		counts := input.InitialGroupJobCounts[g]
		remaining := append([]int{}, idxs...)

		for k := 1; k <= K; k++ {
			levelCount := 0
			if counts != nil && k-1 < len(counts) {
				levelCount = counts[k-1]
			}
			reserved := 0
			if r, ok := rightsByGroupLevel[[2]int{g, k}]; ok {
				reserved = r.Count
				if reserved > levelCount {
					reserved = levelCount
				}
			}

			consumed := make(map[int]bool, len(remaining))
			filled := 0
			if reserved > 0 {
				for _, e := range remaining {
					if filled >= reserved {
						break
					}
					if employees[e].SG == 1 {
						orig[e] = k
						consumed[e] = true
						filled++
					}
				}
			}
			for _, e := range remaining {
				if filled >= levelCount {
					break
				}
				if consumed[e] {
					continue
				}
				orig[e] = k
				consumed[e] = true
				filled++
			}

			next := remaining[:0]
			for _, e := range remaining {
				if !consumed[e] {
					next = append(next, e)
				}
			}
			remaining = next
		}

		for _, e := range remaining {
			fur[e] = true
			orig[e] = FUR
		}
	}

	return orig, fur
}
