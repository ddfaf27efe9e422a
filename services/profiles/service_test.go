package profiles

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"foundermatch-backend/lib/testutil"
	"foundermatch-backend/services/profiles/db"

	"github.com/stretchr/testify/require"
)

func setupListTest(t *testing.T) (Service, *db.Queries, func()) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})
	service := NewService(result.DB, Options{
		Now: func() time.Time { return testNow },
	})
	return service, db.New(result.DB), cleanup
}

func upsert(t *testing.T, qry *db.Queries, arg db.UpsertProfileParams) {
	if arg.RefreshStatus == "" {
		arg.RefreshStatus = statusSuccess
	}
	require.NoError(t, qry.UpsertProfile(context.Background(), arg))
}

func TestListProfiles(t *testing.T) {
	service, qry, cleanup := setupListTest(t)
	defer cleanup()
	ctx := context.Background()

	upsert(t, qry, db.UpsertProfileParams{
		UserID: "ada", Name: "Ada Lovelace", Location: "London, UK",
		StartupFunding: "Bootstrapped", CreatedAt: 100, UpdatedAt: 100,
	})
	upsert(t, qry, db.UpsertProfileParams{
		UserID: "grace", Name: "Grace Hopper", Location: "New York, US",
		StartupFunding: "Pre-seed", CreatedAt: 200, UpdatedAt: 200,
	})
	upsert(t, qry, db.UpsertProfileParams{
		UserID: "alan", Name: "Alan Turing", Location: "London, UK",
		StartupFunding: "Bootstrapped", CreatedAt: 300, UpdatedAt: 300,
	})

	// newest first, no filters
	result, err := service.ListProfiles(ctx, ListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.EqualValues(t, 3, result.Matched)
	require.Len(t, result.Data, 3)
	require.Equal(t, "alan", result.Data[0].UserId)
	require.Equal(t, "ada", result.Data[2].UserId)

	result, err = service.ListProfiles(ctx, ListRequest{Name: "Grace"})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.EqualValues(t, 1, result.Matched)
	require.Len(t, result.Data, 1)
	require.Equal(t, "grace", result.Data[0].UserId)

	result, err = service.ListProfiles(ctx, ListRequest{Location: "London"})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Matched)

	result, err = service.ListProfiles(ctx, ListRequest{Funding: "Boot"})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Matched)

	result, err = service.ListProfiles(ctx, ListRequest{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	require.Equal(t, "ada", result.Data[0].UserId)
}

func TestGetProfileRoundTrip(t *testing.T) {
	service, qry, cleanup := setupListTest(t)
	defer cleanup()
	ctx := context.Background()

	refreshed := testNow.Add(-time.Hour).Unix()
	upsert(t, qry, db.UpsertProfileParams{
		UserID:                "ada",
		Name:                  "Ada Lovelace",
		Location:              "London, UK",
		Age:                   sql.NullInt64{Int64: 29, Valid: true},
		LastSeen:              "about 2 days ago",
		Summary:               "Engineer turned founder.",
		Education:             encodeList([]string{"University of London, Logic"}),
		Employment:            encodeList([]string{"Analyst, Babbage & Co"}),
		StartupName:           "Analytica",
		StartupFunding:        "Bootstrapped",
		CofounderRequirements: encodeList([]string{"Technical background"}),
		SharedInterests:       encodeList([]string{"Machine learning"}),
		PersonalInterests:     encodeList([]string{}),
		LinkedIn:              "https://linkedin.com/in/ada-lovelace",
		RefreshStatus:         statusSuccess,
		LastRefreshed:         sql.NullInt64{Int64: refreshed, Valid: true},
		CreatedAt:             100,
		UpdatedAt:             200,
	})

	record, err := service.GetProfile(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", record.Name)
	require.NotNil(t, record.Age)
	require.Equal(t, 29, *record.Age)
	require.Equal(t, []string{"University of London, Logic"}, record.Education)
	require.Equal(t, []string{"Analyst, Babbage & Co"}, record.Employment)
	require.Equal(t, "Analytica", record.Startup.Name)
	require.Equal(t, []string{"Technical background"}, record.CofounderPrefs.Requirements)
	require.Equal(t, []string{"Machine learning"}, record.Interests.Shared)
	require.Empty(t, record.Interests.Personal)
	require.Equal(t, statusSuccess, record.RefreshStatus)
	require.Nil(t, record.RefreshError)
	require.NotNil(t, record.LastRefreshed)
	require.Equal(t, refreshed, record.LastRefreshed.Unix())
	require.Equal(t, time.Unix(100, 0).UTC(), record.CreatedAt)
	require.Equal(t, time.Unix(200, 0).UTC(), record.UpdatedAt)

	_, err = service.GetProfile(ctx, "nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
