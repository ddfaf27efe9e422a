// Package profiles stores co-founder matching profiles and keeps them
// fresh by re-scraping them in prioritized batches.
package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"foundermatch-backend/lib/scrapers/startupschool"
	"foundermatch-backend/services/profiles/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/profiles")

type Service struct {
	db         *sql.DB
	qry        *db.Queries
	creds      startupschool.Credentials
	newSession SessionFactory
	visitDelay time.Duration
	now        func() time.Time
}

type Options struct {
	// session credentials for the refresh scraper, validated lazily so
	// the read-side endpoints work without them
	Credentials startupschool.Credentials
	// overridable for tests, defaults to opening a real browser session
	NewSession SessionFactory
	// pause after each successful visit, defaults to one second
	VisitDelay time.Duration
	Now        func() time.Time
}

func NewService(database *sql.DB, opts Options) Service {
	if opts.NewSession == nil {
		opts.NewSession = func(ctx context.Context, creds startupschool.Credentials) (Visitor, error) {
			return startupschool.OpenSession(ctx, creds)
		}
	}
	if opts.VisitDelay == 0 {
		opts.VisitDelay = time.Second
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return Service{
		db:         database,
		qry:        db.New(database),
		creds:      opts.Credentials,
		newSession: opts.NewSession,
		visitDelay: opts.VisitDelay,
		now:        opts.Now,
	}
}

// ProfileRecord is the stored unit: the scraped descriptive fields
// plus refresh bookkeeping.
type ProfileRecord struct {
	startupschool.Profile
	RefreshStatus   string     `json:"refreshStatus"`
	RefreshError    *string    `json:"refreshError"`
	RefreshAttempts int64      `json:"refreshAttempts"`
	LastRefreshed   *time.Time `json:"lastRefreshed"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type ListRequest struct {
	Limit    int
	Page     int
	Name     string
	Location string
	Funding  string
}

type ListResult struct {
	Data    []ProfileRecord `json:"data"`
	Total   int64           `json:"total"`
	Matched int64           `json:"matched"`
}

func (s Service) ListProfiles(ctx context.Context, req ListRequest) (ListResult, error) {
	ctx, span := tracer.Start(ctx, "ListProfiles")
	defer span.End()

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("page", page),
	)

	total, err := s.qry.CountProfiles(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ListResult{}, err
	}
	matched, err := s.qry.CountMatchedProfiles(ctx, db.CountMatchedProfilesParams{
		Name:           req.Name,
		Location:       req.Location,
		StartupFunding: req.Funding,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ListResult{}, err
	}

	rows, err := s.qry.ListProfiles(ctx, db.ListProfilesParams{
		Name:           req.Name,
		Location:       req.Location,
		StartupFunding: req.Funding,
		Limit:          int64(limit),
		Offset:         int64((page - 1) * limit),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ListResult{}, err
	}

	records := make([]ProfileRecord, len(rows))
	for i, row := range rows {
		records[i] = recordFromRow(row)
	}
	return ListResult{Data: records, Total: total, Matched: matched}, nil
}

func (s Service) GetProfile(ctx context.Context, userId string) (ProfileRecord, error) {
	row, err := s.qry.GetProfile(ctx, userId)
	if err != nil {
		return ProfileRecord{}, err
	}
	return recordFromRow(row), nil
}

func recordFromRow(row db.Profile) ProfileRecord {
	record := ProfileRecord{
		Profile: startupschool.Profile{
			UserId:          row.UserID,
			Name:            row.Name,
			Location:        row.Location,
			LastSeen:        row.LastSeen,
			Avatar:          row.Avatar,
			Summary:         row.Summary,
			Intro:           row.Intro,
			LifeStory:       row.LifeStory,
			FreeTime:        row.FreeTime,
			Other:           row.Other,
			Accomplishments: row.Accomplishments,
			Education:       decodeList(row.Education),
			Employment:      decodeList(row.Employment),
			Startup: startupschool.Startup{
				Name:        row.StartupName,
				Description: row.StartupDescription,
				Progress:    row.StartupProgress,
				Funding:     row.StartupFunding,
			},
			CofounderPrefs: startupschool.Prefs{
				Requirements:     decodeList(row.CofounderRequirements),
				IdealPersonality: row.CofounderPersonality,
				Equity:           row.CofounderEquity,
			},
			Interests: startupschool.Interests{
				Shared:   decodeList(row.SharedInterests),
				Personal: decodeList(row.PersonalInterests),
			},
			LinkedIn: row.LinkedIn,
		},
		RefreshStatus:   row.RefreshStatus,
		RefreshAttempts: row.RefreshAttempts,
		CreatedAt:       time.Unix(row.CreatedAt, 0).UTC(),
		UpdatedAt:       time.Unix(row.UpdatedAt, 0).UTC(),
	}
	if row.Age.Valid {
		age := int(row.Age.Int64)
		record.Age = &age
	}
	if row.RefreshError.Valid {
		msg := row.RefreshError.String
		record.RefreshError = &msg
	}
	if row.LastRefreshed.Valid {
		t := time.Unix(row.LastRefreshed.Int64, 0).UTC()
		record.LastRefreshed = &t
	}
	return record
}

func decodeList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	err := json.Unmarshal([]byte(raw), &out)
	if err != nil {
		return []string{}
	}
	return out
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
