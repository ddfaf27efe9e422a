package profiles

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel/codes"
)

func nullUnix(t time.Time) sql.NullInt64 {
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

type RefreshStats struct {
	NeverRefreshed        int64 `json:"neverRefreshed"`
	RefreshedSuccessfully int64 `json:"refreshedSuccessfully"`
	FailedRefreshes       int64 `json:"failedRefreshes"`
	PendingRefreshes      int64 `json:"pendingRefreshes"`
	Last24Hours           int64 `json:"last24Hours"`
	Last7Days             int64 `json:"last7Days"`
}

type RecentRefresh struct {
	UserId        string     `json:"userId"`
	Name          string     `json:"name"`
	LastRefreshed *time.Time `json:"lastRefreshed"`
	RefreshStatus string     `json:"refreshStatus"`
	RefreshError  *string    `json:"refreshError"`
}

type FailedRefresh struct {
	UserId          string     `json:"userId"`
	Name            string     `json:"name"`
	RefreshAttempts int64      `json:"refreshAttempts"`
	RefreshError    *string    `json:"refreshError"`
	LastRefreshed   *time.Time `json:"lastRefreshed"`
}

type StatusReport struct {
	TotalProfiles      int64           `json:"totalProfiles"`
	RefreshStats       RefreshStats    `json:"refreshStats"`
	RecentRefreshes    []RecentRefresh `json:"recentRefreshes"`
	MostFailedAttempts []FailedRefresh `json:"mostFailedAttempts"`
}

// RefreshStatus is a read-side projection over the profile collection,
// it never touches the scraper.
func (s Service) RefreshStatus(ctx context.Context) (StatusReport, error) {
	ctx, span := tracer.Start(ctx, "RefreshStatus")
	defer span.End()

	fail := func(err error) (StatusReport, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatusReport{}, err
	}

	report := StatusReport{
		RecentRefreshes:    []RecentRefresh{},
		MostFailedAttempts: []FailedRefresh{},
	}

	var err error
	report.TotalProfiles, err = s.qry.CountProfiles(ctx)
	if err != nil {
		return fail(err)
	}
	report.RefreshStats.NeverRefreshed, err = s.qry.CountNeverRefreshed(ctx)
	if err != nil {
		return fail(err)
	}
	report.RefreshStats.RefreshedSuccessfully, err = s.qry.CountByRefreshStatus(ctx, statusSuccess)
	if err != nil {
		return fail(err)
	}
	report.RefreshStats.FailedRefreshes, err = s.qry.CountByRefreshStatus(ctx, statusFailed)
	if err != nil {
		return fail(err)
	}
	report.RefreshStats.PendingRefreshes, err = s.qry.CountByRefreshStatus(ctx, statusPending)
	if err != nil {
		return fail(err)
	}

	now := s.now()
	report.RefreshStats.Last24Hours, err = s.qry.CountRefreshedSince(ctx, nullUnix(now.Add(-24*time.Hour)))
	if err != nil {
		return fail(err)
	}
	report.RefreshStats.Last7Days, err = s.qry.CountRefreshedSince(ctx, nullUnix(now.Add(-7*24*time.Hour)))
	if err != nil {
		return fail(err)
	}

	recent, err := s.qry.ListRecentRefreshes(ctx, 10)
	if err != nil {
		return fail(err)
	}
	for _, row := range recent {
		entry := RecentRefresh{
			UserId:        row.UserID,
			Name:          row.Name,
			RefreshStatus: row.RefreshStatus,
		}
		if row.LastRefreshed.Valid {
			t := time.Unix(row.LastRefreshed.Int64, 0).UTC()
			entry.LastRefreshed = &t
		}
		if row.RefreshError.Valid {
			msg := row.RefreshError.String
			entry.RefreshError = &msg
		}
		report.RecentRefreshes = append(report.RecentRefreshes, entry)
	}

	failed, err := s.qry.ListMostFailed(ctx, 10)
	if err != nil {
		return fail(err)
	}
	for _, row := range failed {
		entry := FailedRefresh{
			UserId:          row.UserID,
			Name:            row.Name,
			RefreshAttempts: row.RefreshAttempts,
		}
		if row.RefreshError.Valid {
			msg := row.RefreshError.String
			entry.RefreshError = &msg
		}
		if row.LastRefreshed.Valid {
			t := time.Unix(row.LastRefreshed.Int64, 0).UTC()
			entry.LastRefreshed = &t
		}
		report.MostFailedAttempts = append(report.MostFailedAttempts, entry)
	}

	return report, nil
}
