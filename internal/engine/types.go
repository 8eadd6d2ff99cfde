// Package engine implements the monthly seniority-integration assignment
// engine: a deterministic state machine that, given an employee roster,
// a proposed integrated order, a job/level structure, and a schedule of
// future job-count and condition changes, produces a long-form
// (employee, month) projection of held job, furlough status, and
// seniority rank through retirement.
//
// The package has no I/O, no wall-clock dependence, and no package-level
// mutable state: every run takes a ScenarioInput and returns a Result (or
// an *Error) computed purely from it.
package engine

import "time"

// Employee is the short-form record, one per person. The slice passed to
// Run must already be ordered ascending by Order; an employee's position
// in that slice is its idx, the stable index referenced throughout the
// long-form output.
type Employee struct {
	Empkey        string
	EG            int // employee group, >= 1
	SG            int // special/pre-existing-rights group flag, 0 or 1
	Fur0          int // initial furlough flag, 0 or 1
	DOB           time.Time
	LongevityDate time.Time
	RetDate       time.Time // may be adjusted upward by a RetirementAgeIncrease schedule before Run is called
	Order         int       // 1-based, unique across all employees
}

// JobSchedule describes a linear-ramp change to one job level's
// available headcount over [StartMonth, EndMonth), reaching TotalDelta
// by EndMonth and held there afterward. PerEGDelta is informational for
// collaborators that need a per-group breakdown of the same schedule; it
// does not affect J[m][k], which is level-wide.
type JobSchedule struct {
	Level      int
	StartMonth int
	EndMonth   int
	TotalDelta int
	PerEGDelta map[int]int
}

// PreExRight reserves Count slots of Level for SG-flagged employees of
// employee group EG, across [StartMonth, EndMonth). The same shape is
// used both for the monthly D1 quota and, restricted to month 0, for the
// initial-jobs stovepipe builder's subgroup rights.
type PreExRight struct {
	EG         int
	Level      int
	Count      int
	StartMonth int
	EndMonth   int
}

// RatioCondition freezes, at the first month it is in effect, the share
// of each level in Levels held by RefEG, and holds that share constant
// across [StartMonth, EndMonth).
type RatioCondition struct {
	Levels     []int
	StartMonth int
	EndMonth   int
	RefEG      int
}

// CappedRatioQuota is the per-level configuration of a capped-ratio
// condition: a weighted split between two group-sets bounded by an
// absolute cap, Limit*Pct.
type CappedRatioQuota struct {
	WeightA float64
	WeightB float64
	Limit   int
	Pct     float64
}

// CappedRatioCondition applies a CappedRatioQuota per level in Levels,
// across [StartMonth, EndMonth), between GroupsA and GroupsB.
type CappedRatioCondition struct {
	Levels     []int
	StartMonth int
	EndMonth   int
	GroupsA    []int
	GroupsB    []int
	Quotas     map[int]CappedRatioQuota // keyed by level
}

// RecallMethod selects how furloughees are chosen for recall.
type RecallMethod int

const (
	RecallSenOrder RecallMethod = iota // lowest Order first
	RecallStride                       // every Nth furloughee, by Order
	RecallRandom                       // PRNG-driven, requires Seed
)

// RecallSchedule reactivates furloughed employees within [StartMonth,
// EndMonth) up to TotalAmount (capped by available surplus jobs).
type RecallSchedule struct {
	TotalAmount int
	PerEGAmount map[int]int
	StartMonth  int
	EndMonth    int
	Method      RecallMethod
	StrideN     int
	Seed        int64
}

// ScenarioInput is the complete, validated input to Run. All schedules
// are plain data — there is no process-global configuration read by the
// engine.
type ScenarioInput struct {
	Employees []Employee // must be ordered ascending by Order; idx = position
	StartDate time.Time

	NumLevels int // K; FUR_LEVEL = NumLevels+1

	// InitialJobCounts[k-1] is the total count of level k available at
	// month 0, summed across all employee groups.
	InitialJobCounts []int

	// InitialGroupJobCounts[eg][k-1] is the stovepipe headcount of level
	// k reserved for group eg at month 0, used only by the initial-jobs
	// builder (§4.3); the levels for a given group must sum to no more
	// than that group's headcount, with any remainder furloughed.
	InitialGroupJobCounts map[int][]int

	JobSchedules           []JobSchedule
	PreExRights            []PreExRight
	RatioConditions        []RatioCondition
	CappedRatioConditions  []CappedRatioCondition
	RecallSchedules        []RecallSchedule

	StartMonth int // implementation month, >= 0

	// LspcntOnRemainingOnly selects denom[m] = active[m] (true) instead
	// of max(active[m], T[m]) (false) for the lspcnt derived column.
	LspcntOnRemainingOnly bool
}

// Row is one long-form output record: one (employee, month) pair for
// which the employee is active.
type Row struct {
	Mnum        int
	Idx         int
	Empkey      string
	OrigJob     int
	AssignedJob int
	Jcount      int
	Fur         bool
	Snum        int     // 0 means "null" (furloughed row)
	Spcnt       float64 // 0 when Snum is null
	Lnum        int
	Lspcnt      float64
}

// Result is the engine's full output: the long-form rows plus the
// per-month bookkeeping collaborators need (job-count table, active
// headcount) without recomputing them.
type Result struct {
	Rows     []Row
	Active   []int   // active[m]
	Lower    []int   // lower[m]
	Upper    []int   // upper[m]
	JobCount [][]int // J[m][k-1]
	Total    []int   // T[m]
}

const furloughSentinel = 0 // "unassigned" marker used internally during D1-D5
