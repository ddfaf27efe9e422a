package startupschool

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/profile.html
var profileHtml []byte

//go:embed testdata/profile_minimal.html
var minimalProfileHtml []byte

func parseFixture(t *testing.T, raw []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func intPtr(v int) *int {
	return &v
}

func TestExtractProfile(t *testing.T) {
	doc := parseFixture(t, profileHtml)
	profile, err := ExtractProfile(doc, "ada")
	require.NoError(t, err)

	expected := Profile{
		UserId:          "ada",
		Name:            "Ada Lovelace",
		Location:        "London, UK",
		Age:             intPtr(29),
		LastSeen:        "about 2 days ago",
		Avatar:          "https://example.com/avatars/ada.jpg",
		Summary:         "Engineer turned founder building computation tools.",
		Intro:           "Hi, I am Ada. I like building machines that think.",
		LifeStory:       "Grew up around engines and mathematics.",
		FreeTime:        "Chess and long walks.",
		Other:           "Open to relocating for the right team.",
		Accomplishments: "Wrote the first published computer program.",
		Education: []string{
			"Self-taught, Mathematics",
			"University of London, Logic",
		},
		Employment: []string{"Analyst, Babbage & Co"},
		Startup: Startup{
			Name:        "Analytica",
			Description: "A general purpose computation service.",
			Progress:    "Working prototype with two pilot customers.",
			Funding:     "Bootstrapped",
		},
		CofounderPrefs: Prefs{
			Requirements:     []string{"Technical background", "Based in Europe"},
			IdealPersonality: "Pragmatic, commercially minded.",
			Equity:           "Equal split",
		},
		Interests: Interests{
			Shared:   []string{"Machine learning", "Hardware"},
			Personal: []string{"Poetry"},
		},
		LinkedIn: "https://linkedin.com/in/ada-lovelace",
	}
	if diff := cmp.Diff(expected, profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

// a near-empty profile degrades field by field instead of erroring
func TestExtractProfileMinimal(t *testing.T) {
	doc := parseFixture(t, minimalProfileHtml)
	profile, err := ExtractProfile(doc, "grace")
	require.NoError(t, err)

	require.Equal(t, "Grace Hopper", profile.Name)
	require.Nil(t, profile.Age)
	require.Empty(t, profile.Location)
	require.Empty(t, profile.LastSeen)
	require.Empty(t, profile.Intro)
	require.Empty(t, profile.LinkedIn)

	// unnamed startups fall back to the placeholder identity and take
	// their description from the idea block
	require.Equal(t, "Potential Idea", profile.Startup.Name)
	require.Equal(t, "Exploring ideas in developer tooling.", profile.Startup.Description)

	// list fields stay empty, never nil, so they serialize as []
	require.NotNil(t, profile.Education)
	require.Empty(t, profile.Education)
	require.NotNil(t, profile.Employment)
	require.NotNil(t, profile.CofounderPrefs.Requirements)
	require.NotNil(t, profile.Interests.Shared)
	require.NotNil(t, profile.Interests.Personal)
}

func TestExtractProfileMissingContent(t *testing.T) {
	doc := parseFixture(t, []byte(`<html><body><div class="css-error">Not found</div></body></html>`))
	_, err := ExtractProfile(doc, "nobody")
	require.ErrorIs(t, err, ErrContentNotFound)
}

func TestExtractProfileIdempotent(t *testing.T) {
	doc := parseFixture(t, profileHtml)
	first, err := ExtractProfile(doc, "ada")
	require.NoError(t, err)
	second, err := ExtractProfile(doc, "ada")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"29 years old", intPtr(29)},
		{"Age: 41", intPtr(41)},
		{"35", intPtr(35)},
		{"", nil},
		{"unknown", nil},
	}
	for _, tt := range tests {
		got := parseAge(tt.raw)
		if tt.want == nil {
			require.Nil(t, got, "parseAge(%q)", tt.raw)
			continue
		}
		require.NotNil(t, got, "parseAge(%q)", tt.raw)
		require.Equal(t, *tt.want, *got, "parseAge(%q)", tt.raw)
	}
}
