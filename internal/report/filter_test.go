package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/agrojobs/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

func jobBetween(clientID uuid.UUID, start, end string) model.Job {
	return model.Job{
		ID:        uuid.New(),
		ClientID:  clientID,
		StartDate: day(start),
		EndDate:   day(end),
	}
}

func ids(jobs []model.Job) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.ID)
	}
	return out
}

func TestFilterJobs_NoFilterReturnsInput(t *testing.T) {
	client := uuid.New()
	jobs := []model.Job{
		jobBetween(client, "2024-03-01", "2024-03-02"),
		jobBetween(uuid.New(), "2023-01-01", "2023-12-31"),
		jobBetween(client, "2025-07-01", "2025-07-01"),
	}

	got := FilterJobs(jobs, Filter{})

	assert.Equal(t, ids(jobs), ids(got))
	assert.True(t, Filter{}.IsEmpty())
}

func TestFilterJobs_OverlapBoundary(t *testing.T) {
	job := jobBetween(uuid.New(), "2024-06-01", "2024-06-10")

	tests := []struct {
		name  string
		start string
		end   string
		keep  bool
	}{
		{name: "touching start boundary", start: "2024-06-10", end: "2024-06-30", keep: true},
		{name: "after job", start: "2024-06-11", end: "2024-06-30", keep: false},
		{name: "touching end boundary", start: "2024-05-01", end: "2024-06-01", keep: true},
		{name: "before job", start: "2024-05-01", end: "2024-05-31", keep: false},
		{name: "contained in job", start: "2024-06-03", end: "2024-06-04", keep: true},
		{name: "containing job", start: "2024-01-01", end: "2024-12-31", keep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterJobs([]model.Job{job}, Filter{Start: ptr(day(tt.start)), End: ptr(day(tt.end))})
			assert.Equal(t, tt.keep, len(got) == 1)
		})
	}
}

func TestFilterJobs_OpenBounds(t *testing.T) {
	early := jobBetween(uuid.New(), "2024-01-01", "2024-01-31")
	late := jobBetween(uuid.New(), "2024-09-01", "2024-09-30")
	jobs := []model.Job{early, late}

	fromJune := FilterJobs(jobs, Filter{Start: ptr(day("2024-06-01"))})
	assert.Equal(t, []uuid.UUID{late.ID}, ids(fromJune))

	untilJune := FilterJobs(jobs, Filter{End: ptr(day("2024-06-01"))})
	assert.Equal(t, []uuid.UUID{early.ID}, ids(untilJune))
}

func TestFilterJobs_IgnoresTimeOfDay(t *testing.T) {
	job := jobBetween(uuid.New(), "2024-06-01", "2024-06-10")
	start := time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)

	got := FilterJobs([]model.Job{job}, Filter{Start: &start})

	assert.Len(t, got, 1)
}

func TestFilterJobs_ClientAndStableOrder(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	jobs := []model.Job{
		jobBetween(a, "2024-03-01", "2024-03-05"),
		jobBetween(b, "2024-03-01", "2024-03-05"),
		jobBetween(a, "2024-01-01", "2024-01-05"),
		jobBetween(a, "2024-02-01", "2024-02-05"),
	}

	got := FilterJobs(jobs, Filter{ClientID: &a})
	assert.Equal(t, []uuid.UUID{jobs[0].ID, jobs[2].ID, jobs[3].ID}, ids(got))

	got = FilterJobs(jobs, Filter{ClientID: &a, Start: ptr(day("2024-02-03"))})
	assert.Equal(t, []uuid.UUID{jobs[0].ID, jobs[3].ID}, ids(got))
}

func TestFilterJobs_EmptyInput(t *testing.T) {
	got := FilterJobs(nil, Filter{ClientID: ptr(uuid.New())})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
