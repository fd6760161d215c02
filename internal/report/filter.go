// Package report filters job collections and builds the summary, detailed
// and share-ready views over them.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/agrojobs/internal/model"
)

// Filter selects jobs by client and by date-range overlap. Nil fields are
// not applied.
type Filter struct {
	ClientID *uuid.UUID
	Start    *time.Time
	End      *time.Time
}

// IsEmpty reports whether no criteria are set.
func (f Filter) IsEmpty() bool {
	return f.ClientID == nil && f.Start == nil && f.End == nil
}

// FilterJobs keeps the jobs matching f in their input order. A job matches
// the date range when [StartDate, EndDate] intersects [Start, End]; touching
// boundaries count as an intersection.
func FilterJobs(jobs []model.Job, f Filter) []model.Job {
	result := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if f.matches(job) {
			result = append(result, job)
		}
	}
	return result
}

func (f Filter) matches(job model.Job) bool {
	if f.ClientID != nil && job.ClientID != *f.ClientID {
		return false
	}
	if f.Start != nil && model.DateOnly(job.EndDate).Before(model.DateOnly(*f.Start)) {
		return false
	}
	if f.End != nil && model.DateOnly(job.StartDate).After(model.DateOnly(*f.End)) {
		return false
	}
	return true
}
