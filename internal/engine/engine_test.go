package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func emp(empkey string, eg, sg, fur0, order int, retdate time.Time) Employee {
	return Employee{
		Empkey:        empkey,
		EG:            eg,
		SG:            sg,
		Fur0:          fur0,
		DOB:           time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		LongevityDate: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
		RetDate:       retdate,
		Order:         order,
	}
}

var start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func longCareer() time.Time { return start.AddDate(2, 0, 0) } // 24 months of career

// S1: two groups, stovepipe, one job level, no schedules — everyone
// holds level 1 every month until retirement, with no furloughs.
func TestScenarioS1StovepipeNoChanges(t *testing.T) {
	var employees []Employee
	orders := []int{1, 3, 5, 7, 9}
	for i, o := range orders {
		employees = append(employees, emp(nameFor("A", i), 1, 0, 0, o, longCareer()))
	}
	orders2 := []int{2, 4, 6, 8, 10}
	for i, o := range orders2 {
		employees = append(employees, emp(nameFor("B", i), 2, 0, 0, o, longCareer()))
	}
	employees = sortedByOrder(employees)

	input := ScenarioInput{
		Employees:             employees,
		StartDate:             start,
		NumLevels:             1,
		InitialJobCounts:      []int{10},
		InitialGroupJobCounts: map[int][]int{1: {5}, 2: {5}},
		StartMonth:            0,
	}

	res, err := Run(input)
	require.NoError(t, err)
	for _, r := range res.Rows {
		require.Equal(t, 1, r.AssignedJob)
		require.False(t, r.Fur)
		require.Equal(t, r.OrigJob, r.AssignedJob, "round-trip: no changes means assigned == orig")
	}
}

// S2: ten employees at one level, reduced from 10 to 5 over months
// [2,4) — by month 4 the 5 most senior hold the job, the rest are
// furloughed.
func buildS2() ScenarioInput {
	var employees []Employee
	for o := 1; o <= 10; o++ {
		employees = append(employees, emp(nameFor("E", o), 1, 0, 0, o, longCareer()))
	}
	employees = sortedByOrder(employees)

	return ScenarioInput{
		Employees:        employees,
		StartDate:        start,
		NumLevels:        1,
		InitialJobCounts: []int{10},
		InitialGroupJobCounts: map[int][]int{
			1: {10},
		},
		JobSchedules: []JobSchedule{
			{Level: 1, StartMonth: 2, EndMonth: 4, TotalDelta: -5},
		},
		StartMonth: 0,
	}
}

func TestScenarioS2Reduction(t *testing.T) {
	input := buildS2()
	res, err := Run(input)
	require.NoError(t, err)

	byMonth := rowsForMonth(res, 4)
	require.Len(t, byMonth, 10)
	for _, r := range byMonth {
		order := orderForEmpkey(input.Employees, r.Empkey)
		if order <= 5 {
			require.Equal(t, 1, r.AssignedJob, "empkey %s order %d should hold level 1", r.Empkey, order)
			require.False(t, r.Fur)
		} else {
			require.Equal(t, 2, r.AssignedJob, "empkey %s order %d should be furloughed (FUR_LEVEL=2)", r.Empkey, order)
			require.True(t, r.Fur)
		}
	}
}

// S3: recall. Starting from S2's reduced state, a job-growth schedule
// opens two slots at month 5 and a recall schedule brings back the two
// most senior furloughees.
func TestScenarioS3Recall(t *testing.T) {
	input := buildS2()
	input.JobSchedules = append(input.JobSchedules, JobSchedule{Level: 1, StartMonth: 5, EndMonth: 6, TotalDelta: 2})
	input.RecallSchedules = []RecallSchedule{
		{TotalAmount: 2, StartMonth: 5, EndMonth: 6, Method: RecallSenOrder},
	}

	res, err := Run(input)
	require.NoError(t, err)

	byMonth := rowsForMonth(res, 5)
	activeCount := 0
	for _, r := range byMonth {
		order := orderForEmpkey(input.Employees, r.Empkey)
		if order <= 7 {
			require.False(t, r.Fur, "order %d should be active after recall", order)
			activeCount++
		} else {
			require.True(t, r.Fur, "order %d should remain furloughed", order)
		}
	}
	require.Equal(t, 7, activeCount)
}

// S4: ratio freeze. 70/30 split frozen at month 0 (EG1 is ref_eg); with
// J[m][1]=10 constant, every month holds exactly 7 EG1 and 3 EG2.
func TestScenarioS4RatioFreeze(t *testing.T) {
	var employees []Employee
	order := 1
	for i := 0; i < 7; i++ {
		employees = append(employees, emp(nameFor("A", i), 1, 0, 0, order, longCareer()))
		order++
	}
	for i := 0; i < 3; i++ {
		employees = append(employees, emp(nameFor("B", i), 2, 0, 0, order, longCareer()))
		order++
	}
	employees = sortedByOrder(employees)

	input := ScenarioInput{
		Employees:             employees,
		StartDate:             start,
		NumLevels:             1,
		InitialJobCounts:      []int{10},
		InitialGroupJobCounts: map[int][]int{1: {7}, 2: {3}},
		RatioConditions: []RatioCondition{
			{Levels: []int{1}, StartMonth: 0, EndMonth: 100, RefEG: 1},
		},
		StartMonth: 0,
	}

	res, err := Run(input)
	require.NoError(t, err)

	for m := 0; m < 6; m++ {
		rows := rowsForMonth(res, m)
		eg1, eg2 := 0, 0
		for _, r := range rows {
			eg := egForEmpkey(input.Employees, r.Empkey)
			if r.AssignedJob == 1 {
				if eg == 1 {
					eg1++
				} else {
					eg2++
				}
			}
		}
		require.Equal(t, 7, eg1, "month %d", m)
		require.Equal(t, 3, eg2, "month %d", m)
	}
}

// S5: capped ratio distributes newly-opened vacancies between two
// weighted group-sets, bounded by an absolute cap, without displacing
// employees already NBNF-entitled to their held job.
func TestScenarioS5CappedRatioVacancyDistribution(t *testing.T) {
	var employees []Employee
	order := 1
	// 2 of group A and 1 of group B already hold level 1 this month.
	employees = append(employees, emp("A1", 1, 0, 0, order, longCareer()))
	order++
	employees = append(employees, emp("A2", 1, 0, 0, order, longCareer()))
	order++
	employees = append(employees, emp("B1", 2, 0, 0, order, longCareer()))
	order++
	// additional unassigned candidates of both groups, available to fill
	// new vacancies once the job level grows.
	for i := 0; i < 3; i++ {
		employees = append(employees, emp(nameFor("Ax", i), 1, 0, 0, order, longCareer()))
		order++
	}
	for i := 0; i < 3; i++ {
		employees = append(employees, emp(nameFor("Bx", i), 2, 0, 0, order, longCareer()))
		order++
	}
	employees = sortedByOrder(employees)

	input := ScenarioInput{
		Employees:        employees,
		StartDate:        start,
		NumLevels:        2,
		InitialJobCounts: []int{3, 6},
		InitialGroupJobCounts: map[int][]int{
			1: {2, 1}, // A1,A2 -> level 1; one more A -> level 2
			2: {1, 2}, // B1 -> level 1; two more B -> level 2
		},
		JobSchedules: []JobSchedule{
			{Level: 1, StartMonth: 1, EndMonth: 2, TotalDelta: 3}, // grows level 1 from 3 to 6
		},
		CappedRatioConditions: []CappedRatioCondition{
			{
				Levels:     []int{1},
				StartMonth: 0,
				EndMonth:   100,
				GroupsA:    []int{1},
				GroupsB:    []int{2},
				Quotas: map[int]CappedRatioQuota{
					1: {WeightA: 2, WeightB: 1, Limit: 6, Pct: 1.0},
				},
			},
		},
		// Only A1, A2 and Ax0 hold jobs at month 0 - Ax1 and Ax2 are
		// furloughed for lack of a level-2 slot. A 4:2 settlement needs a
		// 4th non-furloughed group A body, so recall the next one in line
		// (lowest order among furloughees is Ax1) before level 1 grows.
		RecallSchedules: []RecallSchedule{
			{TotalAmount: 1, StartMonth: 1, EndMonth: 2, Method: RecallSenOrder},
		},
		StartMonth: 0,
	}

	res, err := Run(input)
	require.NoError(t, err)

	rows := rowsForMonth(res, 1)
	egACount, egBCount := 0, 0
	for _, r := range rows {
		if r.AssignedJob == 1 {
			if egForEmpkey(input.Employees, r.Empkey) == 1 {
				egACount++
			} else {
				egBCount++
			}
		}
	}
	require.Equal(t, 4, egACount, "weight 2:1 of 6 should settle at 4 A-group holders")
	require.Equal(t, 2, egBCount, "weight 2:1 of 6 should settle at 2 B-group holders")
}

// S6: pre-existing rights. Two sg=1 employees ranked near the bottom of
// the list (order 8,9) still receive the reserved level despite their
// low seniority; the remaining slots go to the most senior employees.
func TestScenarioS6PreExRights(t *testing.T) {
	var employees []Employee
	for o := 1; o <= 10; o++ {
		sg := 0
		if o == 8 || o == 9 {
			sg = 1
		}
		employees = append(employees, emp(nameFor("E", o), 1, sg, 0, o, longCareer()))
	}
	employees = sortedByOrder(employees)

	input := ScenarioInput{
		Employees:             employees,
		StartDate:             start,
		NumLevels:             1,
		InitialJobCounts:      []int{5},
		InitialGroupJobCounts: map[int][]int{1: {5}},
		PreExRights: []PreExRight{
			{EG: 1, Level: 1, Count: 2, StartMonth: 0, EndMonth: 12},
		},
		StartMonth: 0,
	}

	res, err := Run(input)
	require.NoError(t, err)

	rows := rowsForMonth(res, 0)
	holders := map[int]bool{}
	for _, r := range rows {
		if r.AssignedJob == 1 {
			holders[orderForEmpkey(input.Employees, r.Empkey)] = true
		}
	}
	require.True(t, holders[8])
	require.True(t, holders[9])
	require.True(t, holders[1])
	require.True(t, holders[2])
	require.True(t, holders[3])
	require.Equal(t, 5, len(holders))
}

// Testable properties (§8), exercised against the S2/S3 reduction +
// recall fixture.
func TestPropertiesConservationCapacityDeterminism(t *testing.T) {
	input := buildS2()
	input.JobSchedules = append(input.JobSchedules, JobSchedule{Level: 1, StartMonth: 5, EndMonth: 6, TotalDelta: 2})
	input.RecallSchedules = []RecallSchedule{
		{TotalAmount: 2, StartMonth: 5, EndMonth: 6, Method: RecallSenOrder},
	}

	res1, err := Run(input)
	require.NoError(t, err)
	res2, err := Run(input)
	require.NoError(t, err)
	require.Equal(t, res1.Rows, res2.Rows, "determinism: identical inputs must produce bit-identical output")

	for m := range res1.Active {
		rows := rowsForMonth(res1, m)
		assigned, furloughed := 0, 0
		byLevel := map[int]int{}
		for _, r := range rows {
			if r.Fur {
				furloughed++
			} else {
				assigned++
				byLevel[r.AssignedJob]++
			}
		}
		require.Equal(t, res1.Active[m], assigned+furloughed, "conservation at month %d", m)
		for level, count := range byLevel {
			require.LessOrEqual(t, count, res1.JobCount[m][level-1], "capacity at month %d level %d", m, level)
		}
	}

	for m := 0; m+1 < len(res1.Active); m++ {
		require.LessOrEqual(t, res1.Active[m+1], res1.Active[m], "retirement monotonicity")
	}
}

// --- test helpers ---

func nameFor(prefix string, i int) string {
	return prefix + string(rune('1'+i))
}

func sortedByOrder(employees []Employee) []Employee {
	out := append([]Employee{}, employees...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Order < out[j-1].Order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func rowsForMonth(res *Result, m int) []Row {
	var out []Row
	for _, r := range res.Rows {
		if r.Mnum == m {
			out = append(out, r)
		}
	}
	return out
}

func orderForEmpkey(employees []Employee, empkey string) int {
	for _, e := range employees {
		if e.Empkey == empkey {
			return e.Order
		}
	}
	return -1
}

func egForEmpkey(employees []Employee, empkey string) int {
	for _, e := range employees {
		if e.Empkey == empkey {
			return e.EG
		}
	}
	return -1
}
