package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

type ScheduleJobs struct {
	assignmentRepo shift.AssignmentRepository
}

func NewScheduleJobs(assignmentRepo shift.AssignmentRepository) *ScheduleJobs {
	return &ScheduleJobs{
		assignmentRepo: assignmentRepo,
	}
}

func (j *ScheduleJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expire_ended_assignments", 1*time.Hour, j.ExpireEndedAssignments)
}

// ExpireEndedAssignments flips assignments whose end date has passed to
// expired so the resolver stops matching them.
func (j *ScheduleJobs) ExpireEndedAssignments(ctx context.Context) error {
	count, err := j.assignmentRepo.ExpireEnded(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to expire ended assignments: %w", err)
	}

	if count > 0 {
		slog.Info("Cron: Expired ended shift assignments", "count", count)
	}
	return nil
}
