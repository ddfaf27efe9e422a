package startupschool

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// class names come from the site's emotion-generated stylesheet, they
// are stable across profiles but will need updating whenever the
// frontend is redeployed with new styles
const (
	mainContentSelector  = ".css-139x40p"
	labelSelector        = "span.css-19yrmx8"
	sectionLabelSelector = ".css-19yrmx8"
	contentBlockSelector = ".css-1tp1ukf"
	listItemSelector     = ".css-kaq1dv"

	nameSelector              = ".css-1s8r69b"
	avatarSelector            = ".css-1bm26bw"
	summarySelector           = ".css-cyoc3t"
	startupNameSelector       = ".css-bcaew0 b"
	ideaSelector              = "div.css-1hla380"
	requirementsSelector      = ".css-1hla380 p"
	sharedInterestsSelector   = ".css-1v9f1hn"
	personalInterestsSelector = ".css-1lw35t7"
	linkedInSelector          = ".css-107cmgv"
)

// placeholder identity for founders that have not declared a startup name
const potentialIdeaName = "Potential Idea"

var ErrContentNotFound = errors.New("profile main content not found")

// labelRule fills one profile field from the content block adjacent to
// a text-matched label. Keeping the mapping as data lets each rule be
// exercised on its own in tests.
type labelRule struct {
	phrase string
	assign func(p *Profile, value string)
}

var labelRules = []labelRule{
	{"Intro", func(p *Profile, v string) { p.Intro = v }},
	{"Life Story", func(p *Profile, v string) { p.LifeStory = v }},
	{"Free Time", func(p *Profile, v string) { p.FreeTime = v }},
	{"Other", func(p *Profile, v string) { p.Other = v }},
	{"Impressive accomplishment", func(p *Profile, v string) { p.Accomplishments = v }},
	{"Progress", func(p *Profile, v string) { p.Startup.Progress = v }},
	{"Funding Status", func(p *Profile, v string) { p.Startup.Funding = v }},
	{"Ideal co-founder", func(p *Profile, v string) { p.CofounderPrefs.IdealPersonality = v }},
	{"Equity expectations", func(p *Profile, v string) { p.CofounderPrefs.Equity = v }},
}

// ExtractProfile maps a rendered profile document to a Profile. Every
// field degrades to its zero value when its node is missing, only a
// missing main content container is an error.
func ExtractProfile(doc *goquery.Document, userId string) (Profile, error) {
	main := doc.Find(mainContentSelector).First()
	if main.Length() == 0 {
		return Profile{}, ErrContentNotFound
	}

	p := Profile{
		UserId:     userId,
		Education:  []string{},
		Employment: []string{},
		CofounderPrefs: Prefs{
			Requirements: []string{},
		},
		Interests: Interests{
			Shared:   []string{},
			Personal: []string{},
		},
	}

	p.Name = trimmedText(main.Find(nameSelector))
	p.Location = trimmedText(main.Find(`[title="Location"]`))
	p.Age = parseAge(main.Find(`[title="Age"]`).Text())
	p.LastSeen = strings.TrimSpace(strings.Replace(
		main.Find(`[title="Last seen on co-founder matching"]`).Text(),
		"Last seen ", "", 1,
	))
	p.Avatar = main.Find(avatarSelector).AttrOr("src", "")
	p.Summary = trimmedText(main.Find(summarySelector))
	p.LinkedIn = main.Find(linkedInSelector).AttrOr("title", "")

	for _, rule := range labelRules {
		rule.assign(&p, labelText(main, labelSelector, rule.phrase))
	}

	p.Education = labelList(main, sectionLabelSelector, "Education")
	p.Employment = labelList(main, sectionLabelSelector, "Employment")
	p.CofounderPrefs.Requirements = selectList(main, requirementsSelector)
	p.Interests.Shared = selectList(main, sharedInterestsSelector)
	p.Interests.Personal = selectList(main, personalInterestsSelector)

	// a startup with no declared name has no label to search a
	// description under, so the description lives in the idea block
	startupName := trimmedText(main.Find(startupNameSelector).First())
	if startupName == "" {
		p.Startup.Name = potentialIdeaName
		p.Startup.Description = trimmedText(main.Find(ideaSelector))
	} else {
		p.Startup.Name = startupName
		p.Startup.Description = labelText(main, labelSelector, startupName)
	}

	return p, nil
}

func trimmedText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// labelBlock locates the first label containing phrase and returns the
// content block immediately following it, or nil when either the label
// or its sibling block is absent.
func labelBlock(scope *goquery.Selection, labelSel, phrase string) *goquery.Selection {
	var block *goquery.Selection
	scope.Find(labelSel).EachWithBreak(func(_ int, label *goquery.Selection) bool {
		if !strings.Contains(label.Text(), phrase) {
			return true
		}
		next := label.NextFiltered(contentBlockSelector)
		if next.Length() > 0 {
			block = next
		}
		return false
	})
	return block
}

func labelText(scope *goquery.Selection, labelSel, phrase string) string {
	block := labelBlock(scope, labelSel, phrase)
	if block == nil {
		return ""
	}
	return strings.TrimSpace(block.Text())
}

func labelList(scope *goquery.Selection, labelSel, phrase string) []string {
	items := []string{}
	block := labelBlock(scope, labelSel, phrase)
	if block == nil {
		return items
	}
	block.Find(listItemSelector).Each(func(_ int, item *goquery.Selection) {
		items = append(items, strings.TrimSpace(item.Text()))
	})
	return items
}

func selectList(scope *goquery.Selection, selector string) []string {
	items := []string{}
	scope.Find(selector).Each(func(_ int, item *goquery.Selection) {
		items = append(items, strings.TrimSpace(item.Text()))
	})
	return items
}

var nonDigits = regexp.MustCompile(`\D`)

// parseAge strips everything but digits out of the raw node text, a
// profile without an age yields nil rather than zero
func parseAge(raw string) *int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return nil
	}
	age, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &age
}
