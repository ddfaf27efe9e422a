package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foundermatch-backend/lib/scrapers/startupschool"
	"foundermatch-backend/services/profiles/db"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultBatchSize = 100

	statusPending = "pending"
	statusSuccess = "success"
	statusFailed  = "failed"

	// a profile stuck in pending this long is treated as the leftover
	// of a crashed batch and becomes eligible for re-selection
	stalePendingAfter = time.Hour
)

var ErrMissingCredentials = errors.New("refresh credentials are not configured")

// Visitor renders one profile page per call. *startupschool.Session
// is the production implementation, tests substitute a fake.
type Visitor interface {
	Visit(ctx context.Context, path string) (*goquery.Document, error)
	Close() error
}

type SessionFactory func(ctx context.Context, creds startupschool.Credentials) (Visitor, error)

type RefreshRequest struct {
	BatchSize int
	// when set the batch is exactly this profile, bypassing the
	// priority selection
	UserId string
}

type RefreshReport struct {
	Message string   `json:"message,omitempty"`
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Refresh selects a batch of stale profiles, walks each of them
// through one shared browser session and commits every outcome as it
// happens. A failing profile never aborts the batch, only a session
// that cannot be opened at all does.
func (s Service) Refresh(ctx context.Context, req RefreshRequest) (RefreshReport, error) {
	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	if err := s.creds.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing credentials")
		return RefreshReport{}, fmt.Errorf("%w: %s", ErrMissingCredentials, err)
	}

	batch, err := s.selectBatch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch selection failed")
		return RefreshReport{}, err
	}
	span.SetAttributes(attribute.Int("batch_size", len(batch)))
	if len(batch) == 0 {
		return RefreshReport{Message: "no profiles to refresh", Errors: []string{}}, nil
	}

	// claim the batch before any network traffic so a crash mid-batch
	// leaves a visible trail instead of silent staleness. profiles
	// freshly claimed by an overlapping run are skipped by the
	// condition and simply revisited here without a second increment.
	userIds := make([]string, len(batch))
	for i, row := range batch {
		userIds[i] = row.UserID
	}
	now := s.now()
	err = s.qry.MarkProfilesPending(ctx, db.MarkProfilesPendingParams{
		UpdatedAt:   now.Unix(),
		UserIds:     userIds,
		UpdatedAt_2: now.Add(-stalePendingAfter).Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to mark batch pending")
		return RefreshReport{}, err
	}

	session, err := s.newSession(ctx, s.creds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open session")
		return RefreshReport{}, err
	}
	defer session.Close()

	report := RefreshReport{Total: len(batch), Errors: []string{}}
	for _, row := range batch {
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "refresh batch interrupted", "remaining", report.Total-report.Updated-report.Failed)
			break
		}
		s.refreshOne(ctx, session, row, &report)
	}

	slog.InfoContext(
		ctx, "refresh batch finished",
		"total", report.Total,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, nil
}

func (s Service) selectBatch(ctx context.Context, req RefreshRequest) ([]db.Profile, error) {
	if req.UserId != "" {
		row, err := s.qry.GetProfile(ctx, req.UserId)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []db.Profile{row}, nil
	}

	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return s.qry.ListRefreshCandidates(ctx, db.ListRefreshCandidatesParams{
		UpdatedAt: s.now().Add(-stalePendingAfter).Unix(),
		Limit:     int64(batchSize),
	})
}

// refreshOne visits a single profile and commits its outcome. errors
// stay local to the record, including storage errors on the success
// path, which collapse into a failed outcome like everything else.
func (s Service) refreshOne(ctx context.Context, session Visitor, row db.Profile, report *RefreshReport) {
	ctx, span := tracer.Start(ctx, "refreshOne")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", row.UserID))

	doc, err := session.Visit(ctx, row.UserID)

	var profile startupschool.Profile
	if err == nil {
		profile, err = startupschool.ExtractProfile(doc, row.UserID)
	}
	if err == nil {
		err = s.commitSuccess(ctx, row, profile)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.WarnContext(ctx, "failed to refresh profile", "user_id", row.UserID, "err", err)

		report.Failed++
		report.Errors = append(report.Errors, fmt.Sprintf("error updating %s: %s", row.UserID, err))

		now := s.now()
		dbErr := s.qry.MarkProfileFailed(ctx, db.MarkProfileFailedParams{
			RefreshError:  sql.NullString{String: err.Error(), Valid: true},
			LastRefreshed: sql.NullInt64{Int64: now.Unix(), Valid: true},
			UpdatedAt:     now.Unix(),
			UserID:        row.UserID,
		})
		if dbErr != nil {
			slog.ErrorContext(ctx, "failed to record refresh failure", "user_id", row.UserID, "err", dbErr)
		}
		return
	}

	report.Updated++
	slog.DebugContext(ctx, "profile refreshed", "user_id", row.UserID)

	// throttle so a large batch doesn't hammer the site
	select {
	case <-time.After(s.visitDelay):
	case <-ctx.Done():
	}
}

func (s Service) commitSuccess(ctx context.Context, row db.Profile, profile startupschool.Profile) error {
	now := s.now()
	age := sql.NullInt64{}
	if profile.Age != nil {
		age = sql.NullInt64{Int64: int64(*profile.Age), Valid: true}
	}
	return s.qry.UpsertProfile(ctx, db.UpsertProfileParams{
		UserID:                row.UserID,
		Name:                  profile.Name,
		Location:              profile.Location,
		Age:                   age,
		LastSeen:              profile.LastSeen,
		Avatar:                profile.Avatar,
		Summary:               profile.Summary,
		Intro:                 profile.Intro,
		LifeStory:             profile.LifeStory,
		FreeTime:              profile.FreeTime,
		Other:                 profile.Other,
		Accomplishments:       profile.Accomplishments,
		Education:             encodeList(profile.Education),
		Employment:            encodeList(profile.Employment),
		StartupName:           profile.Startup.Name,
		StartupDescription:    profile.Startup.Description,
		StartupProgress:       profile.Startup.Progress,
		StartupFunding:        profile.Startup.Funding,
		CofounderRequirements: encodeList(profile.CofounderPrefs.Requirements),
		CofounderPersonality:  profile.CofounderPrefs.IdealPersonality,
		CofounderEquity:       profile.CofounderPrefs.Equity,
		SharedInterests:       encodeList(profile.Interests.Shared),
		PersonalInterests:     encodeList(profile.Interests.Personal),
		LinkedIn:              profile.LinkedIn,
		RefreshStatus:         statusSuccess,
		RefreshError:          sql.NullString{},
		LastRefreshed:         sql.NullInt64{Int64: now.Unix(), Valid: true},
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             now.Unix(),
	})
}
