package engine

import "time"

// RetirementAgeIncrease raises, in whole months, the retirement date of
// any employee not yet retired as of EffectiveDate. It is applied before
// the calendar is built (§6, "Retirement-age-increase schedule applied
// before calendar build"); the original source keyed this by either an
// absolute new retirement age or a monthly addition — we model the
// common case, a flat monthly addition, since that is what
// build_program_files.py actually computes from a new retirement age.
type RetirementAgeIncrease struct {
	EffectiveDate time.Time
	AddMonths     int
}

// ApplyRetirementAgeIncreases returns a copy of employees with RetDate
// shifted forward by the total AddMonths of every schedule whose
// EffectiveDate is on or before the employee's original RetDate. Order
// of schedules does not matter: all applicable increases accumulate.
func ApplyRetirementAgeIncreases(employees []Employee, schedules []RetirementAgeIncrease) []Employee {
	out := make([]Employee, len(employees))
	copy(out, employees)
	for i := range out {
		for _, sch := range schedules {
			if !sch.EffectiveDate.After(out[i].RetDate) {
				out[i].RetDate = out[i].RetDate.AddDate(0, sch.AddMonths, 0)
			}
		}
	}
	return out
}
