package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazrawi/tenabot/internal/types"
)

func parseBody(t *testing.T, doc *RenderedDocument) *goquery.Document {
	t.Helper()
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	return parsed
}

func TestRenderSectionLayout(t *testing.T) {
	record := types.ProfileRecord{
		Email:            "dev@example.com",
		PositionInferred: "Backend Engineer",
		EducationLevel:   "BSc",
		Skills:           types.FlexList{"Go", "SQL", "Docker", "Git", "Linux"},
		WorkHistory: []types.WorkEntry{
			{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "2023", Summary: "Built services."},
		},
	}

	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)

	require.NotNil(t, doc.Skills)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, doc.Skills.Left)
	assert.Equal(t, []string{"Git", "Linux"}, doc.Skills.Right)

	assert.Nil(t, doc.CoreValues)
	assert.Empty(t, doc.Education)
	require.Len(t, doc.WorkHistory, 1)
	assert.Equal(t, "2020 - 2023", doc.WorkHistory[0].Dates)
	assert.Equal(t, "Built services.", doc.WorkHistory[0].Paragraph)
	assert.Empty(t, doc.WorkHistory[0].Bullets)

	page := parseBody(t, doc)
	assert.Equal(t, "Backend Engineer", page.Find("h1").Text())

	headings := page.Find("h2").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Skills", "Work Experience"}, headings)

	assert.Equal(t, 1, page.Find(".job").Length())
	assert.Equal(t, 2, page.Find(".columns ul").Length())
}

func TestRenderIsDeterministic(t *testing.T) {
	record := types.ProfileRecord{
		Phone:            "+1 555 0100",
		Email:            "dev@example.com",
		LinkedIn:         "linkedin.com/in/dev",
		PositionInferred: "Data Engineer",
		EducationLevel:   "MSc",
		Skills:           types.FlexList{"Spark", "Airflow"},
		CoreValues:       types.FlexList{"Ownership", "Curiosity"},
		WorkHistory: []types.WorkEntry{
			{Title: "Analyst", Company: "Beta", StartDate: "2019", Summary: "Reported on metrics."},
		},
		Education: []types.EducationEntry{
			{Institution: "AAU", Degree: "MSc", FieldOfStudy: "Data Science", GraduationDate: "2019"},
		},
	}

	r := NewRenderer()
	first, err := r.Render(record)
	require.NoError(t, err)
	second, err := r.Render(record)
	require.NoError(t, err)
	assert.Equal(t, first.Body, second.Body)
}

func TestRenderContactLines(t *testing.T) {
	record := types.ProfileRecord{
		Email:            "dev@example.com",
		GitHub:           "github.com/dev",
		PositionInferred: "Engineer",
		EducationLevel:   "BSc",
	}

	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)

	require.Len(t, doc.Contact, 2)
	assert.Equal(t, "mailto:dev@example.com", doc.Contact[0].Href)
	assert.Equal(t, "https://github.com/dev", doc.Contact[1].Href)

	page := parseBody(t, doc)
	href, ok := page.Find(".contact a").First().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "mailto:dev@example.com", href)
}

func TestRenderLongSummaryBecomesBullets(t *testing.T) {
	record := types.ProfileRecord{
		PositionInferred: "Engineer",
		EducationLevel:   "BSc",
		WorkHistory: []types.WorkEntry{
			{
				Title:   "Lead",
				Company: "Gamma",
				Summary: "Owned the billing platform serving two million users every month. Reduced invoice errors by forty percent. Introduced contract tests across the team.",
			},
		},
	}

	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)

	require.Len(t, doc.WorkHistory, 1)
	assert.Empty(t, doc.WorkHistory[0].Paragraph)
	assert.Len(t, doc.WorkHistory[0].Bullets, 3)

	page := parseBody(t, doc)
	assert.Equal(t, 3, page.Find(".job ul li").Length())
}

func TestRenderWorkHistoryDefaults(t *testing.T) {
	record := types.ProfileRecord{
		PositionInferred: "Engineer",
		EducationLevel:   "BSc",
		WorkHistory: []types.WorkEntry{
			{Title: "Engineer", Company: "Delta", StartDate: "2021", Summary: "Ongoing role."},
			{}, // fully empty entries are dropped
		},
	}

	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)
	require.Len(t, doc.WorkHistory, 1)
	assert.Equal(t, "2021 - Present", doc.WorkHistory[0].Dates)
}

func TestRenderEducationLines(t *testing.T) {
	record := types.ProfileRecord{
		PositionInferred: "Engineer",
		EducationLevel:   "BSc",
		Education: []types.EducationEntry{
			{Institution: "AAU", Degree: "BSc", FieldOfStudy: "Computer Science", GraduationDate: "2022"},
			{Institution: "Coursera"},
			{},
		},
	}

	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"BSc in Computer Science from AAU (2022)",
		"Coursera",
	}, doc.Education)
}

func TestRenderTitleFallback(t *testing.T) {
	record := types.ProfileRecord{EducationLevel: "BSc"}
	doc, err := NewRenderer().Render(record)
	require.NoError(t, err)
	assert.Equal(t, "Professional Resume", doc.Title)
}

func TestRenderFooterAlwaysPresent(t *testing.T) {
	doc, err := NewRenderer().Render(types.ProfileRecord{PositionInferred: "Engineer", EducationLevel: "BSc"})
	require.NoError(t, err)
	page := parseBody(t, doc)
	assert.True(t, strings.Contains(page.Find(".footer").Text(), "Tenabot"))
}
