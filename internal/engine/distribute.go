package engine

import "math"

// distribute sequentially allocates total across weights using a
// largest-remainder-style scheme: each bin takes round(p * remaining),
// then both the weight pool and the remaining total shrink by that bin's
// share before the next bin is computed. Returns non-negative integers
// summing to total. This is Algorithm D.
func distribute(total int, weights []float64) []int {
	bins := make([]int, len(weights))
	remainingWeight := 0.0
	for _, w := range weights {
		remainingWeight += w
	}
	remaining := total
	for i, w := range weights {
		if remainingWeight <= 0 {
			bins[i] = 0
			continue
		}
		p := w / remainingWeight
		thisBin := int(math.Round(p * float64(remaining)))
		bins[i] = thisBin
		remainingWeight -= w
		remaining -= thisBin
	}
	return bins
}

// distributeVacanciesByWeights determines how many additional slots of a
// level each affected group should receive, given the jobs already held
// by each group (counts), the level's total weighted pool (available),
// and the groups' relative weights. This is Algorithm V.
//
// If available - sum(counts) <= 0 there are no vacancies and all
// additives are zero. Otherwise each group's target share is
// round(weight_share * available); additives are max(target-counts, 0).
// If a group's target fell below its current count (it is already over
// quota), that group's additive is zeroed and the vacancies assigned to
// positive-additive groups are redistributed via distribute() restricted
// to the still-positive groups' weights.
func distributeVacanciesByWeights(available int, counts []int, weights []float64) []int {
	n := len(counts)
	additives := make([]int, n)

	sumCounts := 0
	for _, c := range counts {
		sumCounts += c
	}
	vacancies := available - sumCounts
	if vacancies <= 0 {
		return additives
	}

	bins := distribute(available, weights)

	negative := false
	for i := range bins {
		d := bins[i] - counts[i]
		if d < 0 {
			negative = true
			additives[i] = 0
		} else {
			additives[i] = d
		}
	}
	if !negative {
		return additives
	}

	// redistribute vacancies only across the still-positive slots
	positiveIdx := make([]int, 0, n)
	positiveWeights := make([]float64, 0, n)
	for i, a := range additives {
		if a > 0 {
			positiveIdx = append(positiveIdx, i)
			positiveWeights = append(positiveWeights, weights[i])
		}
	}
	if len(positiveIdx) == 0 {
		return make([]int, n)
	}
	redistributed := distribute(vacancies, positiveWeights)
	result := make([]int, n)
	for i, pi := range positiveIdx {
		result[pi] = redistributed[i]
	}
	return result
}
