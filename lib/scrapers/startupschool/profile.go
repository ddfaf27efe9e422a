// Package startupschool scrapes co-founder matching profiles from
// startupschool.org. The site is a single page app, so profile pages
// only exist after a real browser has rendered them; Session owns that
// browser while ExtractProfile maps a rendered document to a Profile.
package startupschool

type Profile struct {
	UserId          string    `json:"userId"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Age             *int      `json:"age"`
	LastSeen        string    `json:"lastSeen"`
	Avatar          string    `json:"avatar"`
	Summary         string    `json:"summary"`
	Intro           string    `json:"intro"`
	LifeStory       string    `json:"lifeStory"`
	FreeTime        string    `json:"freeTime"`
	Other           string    `json:"other"`
	Accomplishments string    `json:"accomplishments"`
	Education       []string  `json:"education"`
	Employment      []string  `json:"employment"`
	Startup         Startup   `json:"startup"`
	CofounderPrefs  Prefs     `json:"cofounderPreferences"`
	Interests       Interests `json:"interests"`
	LinkedIn        string    `json:"linkedIn"`
}

type Startup struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Progress    string `json:"progress"`
	Funding     string `json:"funding"`
}

type Prefs struct {
	Requirements     []string `json:"requirements"`
	IdealPersonality string   `json:"idealPersonality"`
	Equity           string   `json:"equity"`
}

type Interests struct {
	Shared   []string `json:"shared"`
	Personal []string `json:"personal"`
}
