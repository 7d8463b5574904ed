package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"officetime/internal/domain/balance"
	"officetime/internal/domain/employee"
	"officetime/internal/domain/notifications"
	"officetime/internal/domain/settings"
	"officetime/internal/platform/config"
	"officetime/internal/platform/metrics"
	"officetime/internal/platform/querier"
)

const JobCarryOverSweep = "carry_over_sweep"

// Service runs background work on a single in-process worker backed by a
// bounded queue. Every run is recorded in job_runs for operators.
type Service struct {
	DB        querier.Querier
	Cfg       config.Config
	Settings  *settings.Service
	Balances  *balance.Service
	Employees *employee.Store
	Notify    *notifications.Service
	Metrics   *metrics.Collector
	queue     chan job
}

type job struct {
	Type     string
	TenantID string
	Run      func(context.Context) (any, error)
}

func New(db querier.Querier, cfg config.Config, settingsSvc *settings.Service, balances *balance.Service, employees *employee.Store, notify *notifications.Service, collector *metrics.Collector) *Service {
	return &Service{
		DB:        db,
		Cfg:       cfg,
		Settings:  settingsSvc,
		Balances:  balances,
		Employees: employees,
		Notify:    notify,
		Metrics:   collector,
		queue:     make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.CarryOverSweepInterval > 0 {
		go s.scheduleCarryOverSweep(ctx, s.Cfg.CarryOverSweepInterval)
	}
}

func (s *Service) Enqueue(jobType, tenantID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, TenantID: tenantID, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "tenantId", tenantID)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, tenantID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, TenantID: tenantID, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "tenantId", j.TenantID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (tenant_id, job_type, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, j.TenantID, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	if s.Metrics != nil {
		s.Metrics.RecordJob(err != nil)
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleCarryOverSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tenants, err := s.listTenants(ctx)
			if err != nil {
				slog.Warn("carry-over sweep tenant lookup failed", "err", err)
				continue
			}
			for _, tenantID := range tenants {
				tenant := tenantID
				s.Enqueue(JobCarryOverSweep, tenant, func(ctx context.Context) (any, error) {
					return s.SweepCarryOver(ctx, tenant, time.Now().UTC())
				})
			}
		}
	}
}

// SweepCarryOver forfeits the unused carry-over of every employee whose
// expiry date has passed, logging the lost days once per year and notifying
// the employee.
func (s *Service) SweepCarryOver(ctx context.Context, tenantID string, now time.Time) (any, error) {
	all, err := s.Settings.ListForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	year := now.Year()
	swept := 0
	for _, cfg := range all {
		if cfg.CarryOverDays <= 0 {
			continue
		}

		bal, err := s.Balances.VacationBalance(ctx, tenantID, cfg.EmployeeID, year, now)
		if err != nil {
			slog.Warn("carry-over sweep balance failed", "tenantId", tenantID, "employeeId", cfg.EmployeeID, "err", err)
			continue
		}
		if !bal.CarryOverExpired {
			continue
		}
		expiredDays := bal.CarryOver - bal.CarryOverUsed
		if expiredDays <= 0 {
			continue
		}

		recorded, err := s.Settings.HasExpiredCarryOverRecord(ctx, tenantID, cfg.EmployeeID, year)
		if err != nil {
			slog.Warn("carry-over sweep record lookup failed", "employeeId", cfg.EmployeeID, "err", err)
			continue
		}
		if recorded {
			continue
		}

		if err := s.Settings.RecordExpiredCarryOver(ctx, tenantID, cfg.EmployeeID, expiredDays); err != nil {
			slog.Warn("carry-over sweep record failed", "employeeId", cfg.EmployeeID, "err", err)
			continue
		}
		swept++

		if s.Notify != nil && s.Employees != nil {
			userID, err := s.Employees.UserIDByEmployeeID(ctx, tenantID, cfg.EmployeeID)
			if err == nil && userID != "" {
				_ = s.Notify.Notify(ctx, tenantID, userID, notifications.TypeCarryOverExpired,
					"Carry-over vacation expired",
					fmt.Sprintf("%.1f carried-over vacation days expired on %s.", expiredDays, bal.CarryOverExpiresAt.Format("2006-01-02")))
			}
		}
	}
	return map[string]any{"year": year, "employeesSwept": swept}, nil
}

func (s *Service) listTenants(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM tenants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
