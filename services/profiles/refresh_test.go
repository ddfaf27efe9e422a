package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"foundermatch-backend/lib/scrapers/startupschool"
	"foundermatch-backend/lib/testutil"
	"foundermatch-backend/services/profiles/db"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

var testCreds = startupschool.Credentials{
	BaseUrl:    "https://www.startupschool.org",
	SsoKey:     "sso",
	SusSession: "sus",
}

// fakeSession serves canned pages instead of driving a browser.
type fakeSession struct {
	pages  map[string]string
	errs   map[string]error
	visits []string
	closed bool
}

func (f *fakeSession) Visit(ctx context.Context, path string) (*goquery.Document, error) {
	f.visits = append(f.visits, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	page, ok := f.pages[path]
	if !ok {
		return nil, fmt.Errorf("unexpected visit to %s", path)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func profilePage(name string) string {
	return fmt.Sprintf(
		`<html><body><div class="css-139x40p"><h1 class="css-1s8r69b">%s</h1><div class="css-1hla380">An idea.</div></div></body></html>`,
		name,
	)
}

func setupRefreshTest(t *testing.T, session *fakeSession) (Service, *sql.DB, func()) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})
	service := NewService(result.DB, Options{
		Credentials: testCreds,
		NewSession: func(ctx context.Context, creds startupschool.Credentials) (Visitor, error) {
			return session, nil
		},
		VisitDelay: time.Nanosecond,
		Now:        func() time.Time { return testNow },
	})
	return service, result.DB, cleanup
}

func seedProfile(t *testing.T, qry *db.Queries, userId string, at int64) {
	err := qry.CreateProfile(context.Background(), db.CreateProfileParams{
		UserID:    userId,
		Name:      userId,
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.NoError(t, err)
}

func TestRefreshBatch(t *testing.T) {
	session := &fakeSession{
		pages: map[string]string{"alice": profilePage("Alice Chen")},
		errs:  map[string]error{"bob": startupschool.ErrNavigationTimeout},
	}
	service, database, cleanup := setupRefreshTest(t, session)
	defer cleanup()
	ctx := context.Background()
	qry := db.New(database)

	seed := testNow.Add(-48 * time.Hour).Unix()
	seedProfile(t, qry, "alice", seed)
	seedProfile(t, qry, "bob", seed)
	_, err := database.Exec(
		`UPDATE profiles SET refresh_status = 'failed', refresh_attempts = 2, refresh_error = 'timeout', last_refreshed = ? WHERE user_id = 'bob'`,
		seed,
	)
	require.NoError(t, err)

	report, err := service.Refresh(ctx, RefreshRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	require.Contains(t, report.Errors[0], "error updating bob")

	// never-refreshed rows come before previously refreshed ones
	require.Equal(t, []string{"alice", "bob"}, session.visits)
	require.True(t, session.closed)

	alice, err := service.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "success", alice.RefreshStatus)
	require.Equal(t, "Alice Chen", alice.Name)
	require.EqualValues(t, 1, alice.RefreshAttempts)
	require.Nil(t, alice.RefreshError)
	require.NotNil(t, alice.LastRefreshed)
	require.Equal(t, testNow.Unix(), alice.LastRefreshed.Unix())

	bob, err := service.GetProfile(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "failed", bob.RefreshStatus)
	require.EqualValues(t, 3, bob.RefreshAttempts)
	require.NotNil(t, bob.RefreshError)
	require.Contains(t, *bob.RefreshError, "timed out")
}

func TestRefreshSelection(t *testing.T) {
	session := &fakeSession{
		pages: map[string]string{
			"new":   profilePage("New Founder"),
			"stale": profilePage("Stale Founder"),
		},
	}
	service, database, cleanup := setupRefreshTest(t, session)
	defer cleanup()
	ctx := context.Background()
	qry := db.New(database)

	old := testNow.Add(-48 * time.Hour).Unix()
	seedProfile(t, qry, "new", old)
	seedProfile(t, qry, "stale", old)
	seedProfile(t, qry, "claimed", old)
	seedProfile(t, qry, "capped", old)

	// stale: claimed by a batch that never finished over an hour ago
	_, err := database.Exec(
		`UPDATE profiles SET refresh_status = 'pending', refresh_attempts = 1, last_refreshed = ?, updated_at = ? WHERE user_id = 'stale'`,
		old, testNow.Add(-2*time.Hour).Unix(),
	)
	require.NoError(t, err)
	// claimed: an overlapping batch is still working on it
	_, err = database.Exec(
		`UPDATE profiles SET refresh_status = 'pending', refresh_attempts = 1, last_refreshed = ?, updated_at = ? WHERE user_id = 'claimed'`,
		old, testNow.Add(-10*time.Minute).Unix(),
	)
	require.NoError(t, err)
	// capped: exhausted its retry budget
	_, err = database.Exec(
		`UPDATE profiles SET refresh_status = 'failed', refresh_attempts = 3, refresh_error = 'gone', last_refreshed = ? WHERE user_id = 'capped'`,
		old,
	)
	require.NoError(t, err)

	report, err := service.Refresh(ctx, RefreshRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 2, report.Updated)
	require.Zero(t, report.Failed)
	require.Equal(t, []string{"new", "stale"}, session.visits)

	stale, err := service.GetProfile(ctx, "stale")
	require.NoError(t, err)
	require.Equal(t, "success", stale.RefreshStatus)
	require.EqualValues(t, 2, stale.RefreshAttempts)
}

func TestRefreshOverlappingClaim(t *testing.T) {
	session := &fakeSession{
		pages: map[string]string{"shared": profilePage("Shared Founder")},
	}
	service, database, cleanup := setupRefreshTest(t, session)
	defer cleanup()
	ctx := context.Background()
	qry := db.New(database)

	// never refreshed, so it is selected, but an overlapping batch
	// claimed it minutes ago. The claim must not burn a second attempt.
	seedProfile(t, qry, "shared", testNow.Add(-48*time.Hour).Unix())
	_, err := database.Exec(
		`UPDATE profiles SET refresh_status = 'pending', refresh_attempts = 1, updated_at = ? WHERE user_id = 'shared'`,
		testNow.Add(-10*time.Minute).Unix(),
	)
	require.NoError(t, err)

	report, err := service.Refresh(ctx, RefreshRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, []string{"shared"}, session.visits)

	shared, err := service.GetProfile(ctx, "shared")
	require.NoError(t, err)
	require.Equal(t, "success", shared.RefreshStatus)
	require.EqualValues(t, 1, shared.RefreshAttempts)
}

func TestRefreshBatchSize(t *testing.T) {
	session := &fakeSession{
		pages: map[string]string{"a": profilePage("A"), "b": profilePage("B")},
	}
	service, database, cleanup := setupRefreshTest(t, session)
	defer cleanup()
	ctx := context.Background()
	qry := db.New(database)

	seedProfile(t, qry, "a", testNow.Add(-time.Hour).Unix())
	seedProfile(t, qry, "b", testNow.Add(-time.Hour).Unix())

	report, err := service.Refresh(ctx, RefreshRequest{BatchSize: 1})
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	require.Len(t, session.visits, 1)
}

func TestRefreshExplicitUser(t *testing.T) {
	session := &fakeSession{
		pages: map[string]string{"carol": profilePage("Carol")},
	}
	service, database, cleanup := setupRefreshTest(t, session)
	defer cleanup()
	ctx := context.Background()
	qry := db.New(database)

	// carol is fresh, the priority selection would skip her
	seedProfile(t, qry, "carol", testNow.Unix())
	_, err := database.Exec(
		`UPDATE profiles SET refresh_status = 'success', last_refreshed = ? WHERE user_id = 'carol'`,
		testNow.Unix(),
	)
	require.NoError(t, err)

	report, err := service.Refresh(ctx, RefreshRequest{UserId: "carol"})
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	require.Equal(t, 1, report.Updated)
	require.Equal(t, []string{"carol"}, session.visits)

	report, err = service.Refresh(ctx, RefreshRequest{UserId: "nobody"})
	require.NoError(t, err)
	require.Equal(t, "no profiles to refresh", report.Message)
	require.Zero(t, report.Total)
}

func TestRefreshEmpty(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})
	defer cleanup()

	service := NewService(result.DB, Options{
		Credentials: testCreds,
		NewSession: func(ctx context.Context, creds startupschool.Credentials) (Visitor, error) {
			t.Fatal("opened a session with nothing to refresh")
			return nil, nil
		},
	})

	report, err := service.Refresh(context.Background(), RefreshRequest{})
	require.NoError(t, err)
	require.Equal(t, "no profiles to refresh", report.Message)
	require.Zero(t, report.Total)
}

func TestRefreshMissingCredentials(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})
	defer cleanup()

	service := NewService(result.DB, Options{})
	_, err := service.Refresh(context.Background(), RefreshRequest{})
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRefreshSessionFailure(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})
	defer cleanup()
	ctx := context.Background()
	qry := db.New(result.DB)

	service := NewService(result.DB, Options{
		Credentials: testCreds,
		NewSession: func(ctx context.Context, creds startupschool.Credentials) (Visitor, error) {
			return nil, fmt.Errorf("browser exploded")
		},
		Now: func() time.Time { return testNow },
	})

	seedProfile(t, qry, "dave", testNow.Add(-time.Hour).Unix())

	_, err := service.Refresh(ctx, RefreshRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "browser exploded")

	// the batch was claimed before the session attempt, the stale
	// pending rule will pick it back up later
	dave, err := service.GetProfile(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, "pending", dave.RefreshStatus)
	require.EqualValues(t, 1, dave.RefreshAttempts)
}
