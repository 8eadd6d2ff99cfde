package engine

import "math"

// linspaceAdd returns the n cumulative ramp increments for a schedule
// spanning n months and reaching totalDelta by the end of the ramp: the
// truncated-to-integer tail of linspace(0, totalDelta, n+1), i.e.
// add[i] = round(totalDelta * i / n) for i in 1..n. add[n] == totalDelta.
func linspaceAdd(totalDelta, n int) []int {
	add := make([]int, n)
	for i := 1; i <= n; i++ {
		add[i-1] = int(math.Round(float64(totalDelta) * float64(i) / float64(n)))
	}
	return add
}

// buildJobCounts builds J[m][k-1] (count of level k available in month
// m) from per-level initial counts and a set of linear-ramp schedules,
// plus the row totals T[m]. Each schedule accumulates independently of
// the others, per §4.2.
func buildJobCounts(initial []int, schedules []JobSchedule, numMonths, numLevels int) ([][]int, []int, error) {
	if len(initial) != numLevels {
		return nil, nil, newErr(InvalidJobSchedule, -1, -1, "initial job counts length %d does not match NumLevels %d", len(initial), numLevels)
	}

	J := make([][]int, numMonths)
	for m := range J {
		J[m] = make([]int, numLevels)
		copy(J[m], initial)
	}

	for si, sch := range schedules {
		if sch.Level < 1 || sch.Level > numLevels {
			return nil, nil, newErr(InvalidCondition, -1, sch.Level, "job schedule %d references level %d outside 1..%d", si, sch.Level, numLevels)
		}
		if sch.StartMonth >= sch.EndMonth {
			return nil, nil, newErr(InvalidJobSchedule, sch.StartMonth, sch.Level, "schedule %d has start >= end (%d >= %d)", si, sch.StartMonth, sch.EndMonth)
		}
		n := sch.EndMonth - sch.StartMonth
		add := linspaceAdd(sch.TotalDelta, n)
		for m := 0; m < numMonths; m++ {
			switch {
			case m < sch.StartMonth:
				// not yet in effect
			case m < sch.EndMonth:
				J[m][sch.Level-1] += add[m-sch.StartMonth]
			default:
				J[m][sch.Level-1] += sch.TotalDelta
			}
		}
	}

	T := make([]int, numMonths)
	for m := 0; m < numMonths; m++ {
		for k := 0; k < numLevels; k++ {
			if J[m][k] < 0 {
				return nil, nil, newErr(InvalidJobSchedule, m, k+1, "job count went negative (%d)", J[m][k])
			}
			T[m] += J[m][k]
		}
	}

	return J, T, nil
}

// jobChangeSets returns the sorted, deduplicated set of months touched
// by any schedule (jobChangeMonths), and the subset of those restricted
// to schedules with TotalDelta < 0 (jobReductionMonths), per §4.2.
func jobChangeSets(schedules []JobSchedule) (changeMonths map[int]bool, reductionMonths map[int]bool) {
	changeMonths = map[int]bool{}
	reductionMonths = map[int]bool{}
	for _, sch := range schedules {
		for m := sch.StartMonth; m < sch.EndMonth; m++ {
			changeMonths[m] = true
			if sch.TotalDelta < 0 {
				reductionMonths[m] = true
			}
		}
	}
	return changeMonths, reductionMonths
}
