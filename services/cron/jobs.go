package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/online-lms/model"
)

type poolStatter interface {
	PoolStats() (open, inUse, idle int, err error)
}

// CheckDatabaseHealth pings the database and logs pool usage
func (m *CronManager) CheckDatabaseHealth() error {
	jobName := "check_database_health"

	if err := m.store.HealthCheck(); err != nil {
		m.logJobError(jobName, err)
		return err
	}

	if ps, ok := m.store.(poolStatter); ok {
		open, inUse, idle, err := ps.PoolStats()
		if err == nil {
			m.logJobComplete(jobName, "open", open, "in_use", inUse, "idle", idle)
			return nil
		}
	}

	m.logJobComplete(jobName)
	return nil
}

// ActivitySummary counts what happened within a time window
type ActivitySummary struct {
	Since       time.Time
	Until       time.Time
	Users       int64
	Courses     int64
	Enrollments int64
	Materials   int64
	Submissions int64
}

// DailyActivitySummary logs counts for the last 24 hours
func (m *CronManager) DailyActivitySummary() (*ActivitySummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	jobName := "daily_activity_summary"

	until := m.now().UTC()
	s, err := m.summarize(ctx, until.Add(-24*time.Hour), until)
	if err != nil {
		m.logJobError(jobName, err)
		return nil, err
	}

	m.logJobComplete(jobName,
		"since", s.Since.Format(time.RFC3339),
		"users", s.Users,
		"courses", s.Courses,
		"enrollments", s.Enrollments,
		"materials", s.Materials,
		"submissions", s.Submissions,
	)
	return s, nil
}

func (m *CronManager) summarize(ctx context.Context, since, until time.Time) (*ActivitySummary, error) {
	db := m.store.GetDB().WithContext(ctx)
	s := &ActivitySummary{Since: since, Until: until}

	counts := []struct {
		name  string
		model interface{}
		col   string
		dst   *int64
	}{
		{"users", &model.User{}, "created_at", &s.Users},
		{"courses", &model.Course{}, "created_at", &s.Courses},
		{"enrollments", &model.Enrollment{}, "enrolled_at", &s.Enrollments},
		{"materials", &model.LectureMaterial{}, "created_at", &s.Materials},
		{"submissions", &model.AssignmentSubmission{}, "submitted_at", &s.Submissions},
	}

	for _, c := range counts {
		err := db.Model(c.model).
			Where(c.col+" >= ? AND "+c.col+" < ?", since, until).
			Count(c.dst).Error
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return s, nil
}
