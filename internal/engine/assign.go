package engine

import (
	"fmt"
	"math"
)

// Run executes the full pipeline of §2: calendar, job-count table,
// initial jobs, the monthly assignment loop (§4.4), and derived rank
// columns (§4.5). It returns *Error for any of the four documented error
// kinds and is otherwise a pure function of input.
func Run(input ScenarioInput) (*Result, error) {
	K := input.NumLevels
	if K < 1 {
		return nil, newErr(InvalidCondition, -1, -1, "NumLevels must be >= 1")
	}
	FUR := K + 1

	cal, _, err := buildCalendar(input.StartDate, input.Employees)
	if err != nil {
		return nil, err
	}
	numMonths := len(cal.active)

	J, T, err := buildJobCounts(input.InitialJobCounts, input.JobSchedules, numMonths, K)
	if err != nil {
		return nil, err
	}
	_, reductionMonths := jobChangeSets(input.JobSchedules)

	for _, r := range input.PreExRights {
		if r.Level < 1 || r.Level > K {
			return nil, newErr(InvalidCondition, -1, r.Level, "pre-existing-rights schedule references level outside 1..%d", K)
		}
	}
	for _, rc := range input.RatioConditions {
		for _, lvl := range rc.Levels {
			if lvl < 1 || lvl > K {
				return nil, newErr(InvalidCondition, -1, lvl, "ratio condition references level outside 1..%d", K)
			}
		}
	}
	for _, cc := range input.CappedRatioConditions {
		for _, lvl := range cc.Levels {
			if lvl < 1 || lvl > K {
				return nil, newErr(InvalidCondition, -1, lvl, "capped-ratio condition references level outside 1..%d", K)
			}
		}
	}

	initOrig, initFur := buildInitialJobs(input.Employees, input)

	total := 0
	if numMonths > 0 {
		total = cal.upper[numMonths-1]
	}
	rows := make([]Row, total)

	ratioDict := map[int]float64{}
	ratioComputed := map[int]bool{}

	curr := newMonthSlice(len(cal.monthIdxs[0]))
	for i, e := range cal.monthIdxs[0] {
		curr.idx[i] = e
		curr.eg[i] = input.Employees[e].EG
		curr.sg[i] = input.Employees[e].SG
		curr.orig[i] = initOrig[e]
		curr.fur[i] = initFur[e]
	}

	for m := 0; m < numMonths; m++ {
		if curr.len() != cal.active[m] {
			return nil, newErr(InvariantViolation, m, -1, "slice length %d does not match active[%d]=%d", curr.len(), m, cal.active[m])
		}

		if m < input.StartMonth {
			curr.assign = append([]int{}, curr.orig...)
			jcount := perLevelCounts(curr)
			writeRows(rows, cal.lower[m], m, curr, input.Employees, jcount)
		} else {
			applyFurloughForReduction(curr, m, T, cal.active, reductionMonths, FUR)
			applyRecall(curr, m, input.RecallSchedules, T[m], FUR)

			curr.assign = make([]int, curr.len())

			for k := 1; k <= K; k++ {
				applyPreEx(curr, m, k, input.PreExRights, J[m])
				applyRatio(curr, m, k, input.RatioConditions, ratioDict, ratioComputed, J[m])
				applyCappedRatio(curr, m, k, input.CappedRatioConditions, J[m])
				applyBaselineNBNF(curr, k, J[m])
				applySeniorityFill(curr, k, J[m])

				count := countAssigned(curr, k)
				if count > J[m][k-1] {
					return nil, newErr(InvariantViolation, m, k, "assigned count %d exceeds J[m][k]=%d", count, J[m][k-1])
				}
			}

			closeFurloughs(curr, FUR)
			jcount := perLevelCountsFromJ(curr, J[m])
			writeRows(rows, cal.lower[m], m, curr, input.Employees, jcount)
		}

		if m+1 < numMonths {
			next, ferr := carryForward(curr, cal.monthIdxs[m+1])
			if ferr != nil {
				return nil, newErr(InvariantViolation, m, -1, "%s", ferr.Error())
			}
			curr = next
		}
	}

	deriveRanks(rows, cal, J, T, input.LspcntOnRemainingOnly)

	return &Result{Rows: rows, Active: cal.active, Lower: cal.lower, Upper: cal.upper, JobCount: J, Total: T}, nil
}

// --- Step B: furlough for reduction ---

func applyFurloughForReduction(s *monthSlice, m int, T, active []int, reductionMonths map[int]bool, FUR int) {
	if !reductionMonths[m] {
		return
	}
	if T[m] >= active[m] {
		return
	}
	curFur := 0
	for _, f := range s.fur {
		if f {
			curFur++
		}
	}
	need := (active[m] - T[m]) - curFur
	if need <= 0 {
		return
	}
	victims := takeLastN(s, need, func(i int) bool { return !s.fur[i] })
	for _, i := range victims {
		s.fur[i] = true
		s.orig[i] = FUR
	}
}

// --- Step C: recall ---

func applyRecall(s *monthSlice, m int, schedules []RecallSchedule, totalJobs int, FUR int) {
	for _, sch := range schedules {
		if m < sch.StartMonth || m >= sch.EndMonth {
			continue
		}
		notFur := 0
		for _, f := range s.fur {
			if !f {
				notFur++
			}
		}
		surplus := totalJobs - notFur
		if surplus <= 0 {
			continue
		}
		amount := sch.TotalAmount
		if amount > surplus {
			amount = surplus
		}
		if amount <= 0 {
			continue
		}

		var selected []int
		switch sch.Method {
		case RecallStride:
			n := sch.StrideN
			if n <= 0 {
				n = 1
			}
			furSeen := 0
			for i := 0; i < s.len() && len(selected) < amount; i++ {
				if !s.fur[i] {
					continue
				}
				furSeen++
				if furSeen%n == 0 {
					selected = append(selected, i)
				}
			}
		case RecallRandom:
			rng := newSeededRNG(sch.Seed)
			var candidates []int
			for i := 0; i < s.len(); i++ {
				if s.fur[i] {
					candidates = append(candidates, i)
				}
			}
			rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
			if amount > len(candidates) {
				amount = len(candidates)
			}
			selected = candidates[:amount]
		default: // RecallSenOrder
			selected = takeFirstN(s, amount, func(i int) bool { return s.fur[i] })
		}

		for _, i := range selected {
			s.fur[i] = false
			s.orig[i] = FUR
		}
	}
}

// --- D1: pre-existing rights ---

func applyPreEx(s *monthSlice, m, k int, rights []PreExRight, J []int) {
	for _, r := range rights {
		if r.Level != k {
			continue
		}
		if m < r.StartMonth || m >= r.EndMonth {
			continue
		}
		capacity := r.Count
		if J[k-1] < capacity {
			capacity = J[k-1]
		}
		remaining := capacity - countAssigned(s, k)
		if remaining <= 0 {
			continue
		}
		taken := takeFirstN(s, remaining, func(i int) bool {
			return s.unassignedNotFurloughed(i) && s.sg[i] == 1 && s.eg[i] == r.EG
		})
		for _, i := range taken {
			s.assign[i] = k
		}
	}
}

// --- D2: ratio condition ---

func applyRatio(s *monthSlice, m, k int, conditions []RatioCondition, ratioDict map[int]float64, computed map[int]bool, J []int) {
	for _, rc := range conditions {
		if !containsInt(rc.Levels, k) {
			continue
		}
		if m < rc.StartMonth || m >= rc.EndMonth {
			continue
		}

		if !computed[k] {
			origCount, refCount := 0, 0
			for i := 0; i < s.len(); i++ {
				if s.orig[i] == k {
					origCount++
					if s.eg[i] == rc.RefEG {
						refCount++
					}
				}
			}
			ratio := 0.0
			if origCount > 0 {
				ratio = math.Round(float64(refCount)/float64(origCount)*100) / 100
			}
			ratioDict[k] = ratio
			computed[k] = true
		}
		r := ratioDict[k]

		target := int(math.Round(r * float64(J[k-1])))
		already := 0
		for i := 0; i < s.len(); i++ {
			if s.assign[i] == k && s.eg[i] == rc.RefEG {
				already++
			}
		}
		if remaining := target - already; remaining > 0 {
			taken := takeFirstN(s, remaining, func(i int) bool {
				return s.unassignedNotFurloughed(i) && s.eg[i] == rc.RefEG
			})
			for _, i := range taken {
				s.assign[i] = k
			}
		}

		if avail := J[k-1] - countAssigned(s, k); avail > 0 {
			nbnf := takeFirstN(s, avail, func(i int) bool {
				return s.unassignedNotFurloughed(i) && s.eg[i] != rc.RefEG && s.orig[i] <= k
			})
			for _, i := range nbnf {
				s.assign[i] = k
			}
		}
		if avail := J[k-1] - countAssigned(s, k); avail > 0 {
			sen := takeFirstN(s, avail, func(i int) bool {
				return s.unassignedNotFurloughed(i) && s.eg[i] != rc.RefEG
			})
			for _, i := range sen {
				s.assign[i] = k
			}
		}
	}
}

// --- D3: capped ratio condition ---

func applyCappedRatio(s *monthSlice, m, k int, conditions []CappedRatioCondition, J []int) {
	for _, cc := range conditions {
		if !containsInt(cc.Levels, k) {
			continue
		}
		if m < cc.StartMonth || m >= cc.EndMonth {
			continue
		}
		q, ok := cc.Quotas[k]
		if !ok {
			continue
		}

		inAB := func(i int) bool { return containsInt(cc.GroupsA, s.eg[i]) || containsInt(cc.GroupsB, s.eg[i]) }

		excluded := takeFirstN(s, s.len(), func(i int) bool {
			return s.unassignedNotFurloughed(i) && !inAB(i) && s.orig[i] == k
		})
		for _, i := range excluded {
			s.assign[i] = k
		}
		excludeCount := len(excluded)

		if avail := J[k-1] - countAssigned(s, k); avail > 0 {
			nbnfAB := takeFirstN(s, avail, func(i int) bool {
				return s.unassignedNotFurloughed(i) && inAB(i) && s.orig[i] == k
			})
			for _, i := range nbnfAB {
				s.assign[i] = k
			}
		}

		cA, cB := 0, 0
		for i := 0; i < s.len(); i++ {
			if s.assign[i] != k {
				continue
			}
			switch {
			case containsInt(cc.GroupsA, s.eg[i]):
				cA++
			case containsInt(cc.GroupsB, s.eg[i]):
				cB++
			}
		}

		capK := int(math.Round(float64(q.Limit) * q.Pct))
		available := J[k-1]
		if capK < available {
			available = capK
		}
		available -= excludeCount
		if available < 0 {
			available = 0
		}

		additives := distributeVacanciesByWeights(available, []int{cA, cB}, []float64{q.WeightA, q.WeightB})

		if additives[0] > 0 {
			taken := takeFirstN(s, additives[0], func(i int) bool {
				return s.unassignedNotFurloughed(i) && containsInt(cc.GroupsA, s.eg[i])
			})
			for _, i := range taken {
				s.assign[i] = k
			}
		}
		if additives[1] > 0 {
			taken := takeFirstN(s, additives[1], func(i int) bool {
				return s.unassignedNotFurloughed(i) && containsInt(cc.GroupsB, s.eg[i])
			})
			for _, i := range taken {
				s.assign[i] = k
			}
		}

		if additives[0] == 0 && additives[1] == 0 {
			openJobs := J[k-1] - excludeCount - cA - cB
			if openJobs > 0 {
				target := distribute(q.Limit, []float64{q.WeightA, q.WeightB})
				shortA := target[0] - cA
				shortB := target[1] - cB

				order := []int{0, 1}
				if shortB > shortA {
					order = []int{1, 0}
				}
				remainingOpen := openJobs
				for _, gi := range order {
					var short int
					var groupSet []int
					if gi == 0 {
						short, groupSet = shortA, cc.GroupsA
					} else {
						short, groupSet = shortB, cc.GroupsB
					}
					if short <= 0 || remainingOpen <= 0 {
						continue
					}
					n := short
					if n > remainingOpen {
						n = remainingOpen
					}
					taken := takeFirstN(s, n, func(i int) bool {
						return s.unassignedNotFurloughed(i) && containsInt(groupSet, s.eg[i])
					})
					for _, i := range taken {
						s.assign[i] = k
					}
					remainingOpen -= len(taken)
				}
			}
		}
	}
}

// --- D4: baseline NBNF fill ---

func applyBaselineNBNF(s *monthSlice, k int, J []int) {
	avail := J[k-1] - countAssigned(s, k)
	if avail <= 0 {
		return
	}
	taken := takeFirstN(s, avail, func(i int) bool {
		return s.unassignedNotFurloughed(i) && s.orig[i] <= k
	})
	for _, i := range taken {
		s.assign[i] = k
	}
}

// --- D5: seniority fill ---

func applySeniorityFill(s *monthSlice, k int, J []int) {
	avail := J[k-1] - countAssigned(s, k)
	if avail <= 0 {
		return
	}
	taken := takeFirstN(s, avail, func(i int) bool { return s.unassignedNotFurloughed(i) })
	for _, i := range taken {
		s.assign[i] = k
	}
}

// --- E: end-of-month furlough closure ---

func closeFurloughs(s *monthSlice, FUR int) {
	for i := 0; i < s.len(); i++ {
		if s.assign[i] == furloughSentinel {
			s.fur[i] = true
			s.assign[i] = FUR
		} else {
			s.fur[i] = false
		}
	}
}

// --- F: carry forward ---

func carryForward(s *monthSlice, nextIdxs []int) (*monthSlice, error) {
	next := newMonthSlice(len(nextIdxs))
	si := 0
	for ni, wantIdx := range nextIdxs {
		for si < s.len() && s.idx[si] != wantIdx {
			si++
		}
		if si >= s.len() {
			return nil, fmt.Errorf("carry-forward lost employee idx %d present in next month's slice", wantIdx)
		}
		next.idx[ni] = s.idx[si]
		next.eg[ni] = s.eg[si]
		next.sg[ni] = s.sg[si]
		next.orig[ni] = s.assign[si]
		next.fur[ni] = s.fur[si]
		si++
	}
	return next, nil
}

// --- shared helpers ---

func countAssigned(s *monthSlice, k int) int {
	c := 0
	for i := 0; i < s.len(); i++ {
		if s.assign[i] == k {
			c++
		}
	}
	return c
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func perLevelCountsFromJ(s *monthSlice, J []int) []int {
	jcount := make([]int, s.len())
	furCount := 0
	for i := 0; i < s.len(); i++ {
		if s.fur[i] {
			furCount++
		}
	}
	for i := 0; i < s.len(); i++ {
		if s.fur[i] {
			jcount[i] = furCount
		} else {
			jcount[i] = J[s.assign[i]-1]
		}
	}
	return jcount
}

func perLevelCounts(s *monthSlice) []int {
	jcount := make([]int, s.len())
	furCount := 0
	counts := map[int]int{}
	for i := 0; i < s.len(); i++ {
		if s.fur[i] {
			furCount++
		} else {
			counts[s.assign[i]]++
		}
	}
	for i := 0; i < s.len(); i++ {
		if s.fur[i] {
			jcount[i] = furCount
		} else {
			jcount[i] = counts[s.assign[i]]
		}
	}
	return jcount
}

func writeRows(rows []Row, base, m int, s *monthSlice, employees []Employee, jcount []int) {
	for i := 0; i < s.len(); i++ {
		e := employees[s.idx[i]]
		rows[base+i] = Row{
			Mnum:        m,
			Idx:         s.idx[i],
			Empkey:      e.Empkey,
			OrigJob:     s.orig[i],
			AssignedJob: s.assign[i],
			Jcount:      jcount[i],
			Fur:         s.fur[i],
		}
	}
}
