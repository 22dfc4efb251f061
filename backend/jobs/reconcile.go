package jobs

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type CourseLister interface {
	ListIDs(ctx context.Context) ([]uint, error)
}

type SnapshotSyncer interface {
	ResyncCourse(ctx context.Context, courseID uint) (bool, error)
}

// Reconciler rewrites course section snapshots that have drifted from the
// section rows.
type Reconciler struct {
	courses  CourseLister
	sections SnapshotSyncer
	log      *zap.SugaredLogger
	timeout  time.Duration
}

func NewReconciler(courses CourseLister, sections SnapshotSyncer, log *zap.SugaredLogger) *Reconciler {
	return &Reconciler{
		courses:  courses,
		sections: sections,
		log:      log.With("job", "reconcile"),
		timeout:  5 * time.Minute,
	}
}

// Run walks every course once and returns how many were rewritten. A course
// that fails is logged and skipped.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	ids, err := r.courses.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return fixed, err
		}
		changed, err := r.sections.ResyncCourse(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			// deleted since ListIDs
			continue
		}
		if err != nil {
			r.log.Warnw("resync failed", "course_id", id, "error", err)
			continue
		}
		if changed {
			fixed++
		}
	}

	r.log.Infow("reconcile finished", "courses", len(ids), "fixed", fixed)
	return fixed, nil
}

// Start schedules Run on schedule. An empty schedule disables the job and returns a
// nil scheduler.
func (r *Reconciler) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		r.log.Info("reconcile job disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			r.log.Errorw("reconcile run failed", "error", err)
		}
	}); err != nil {
		return nil, err
	}
	c.Start()

	r.log.Infow("reconcile job scheduled", "schedule", schedule)
	return c, nil
}
