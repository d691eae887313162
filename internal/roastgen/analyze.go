// Package roastgen holds the pure text machinery of roasting: repository
// analysis heuristics, prompt construction, and the canned fallback tables.
// Everything here is deterministic given its inputs (and seed, where a
// random source is taken).
package roastgen

import (
	"strings"
	"time"

	"github.com/manan0209/gitroaster/internal/model"
)

// maxTopProjects bounds the project summaries carried into a profile prompt.
const maxTopProjects = 3

// projectPatterns maps name substrings to a guessed project category.
// Order matters: the first matching row wins.
var projectPatterns = []struct {
	substrings []string
	category   string
}{
	{[]string{"hello", "test", "practice"}, "tutorial/practice"},
	{[]string{"clone", "copy"}, "clone project"},
	{[]string{"bot", "scraper"}, "automation"},
	{[]string{"api", "backend"}, "backend"},
	{[]string{"frontend", "react", "vue"}, "frontend"},
}

// ClassifyProject guesses a repository's purpose from its name. The second
// return reports whether any pattern matched.
func ClassifyProject(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, row := range projectPatterns {
		for _, sub := range row.substrings {
			if strings.Contains(lower, sub) {
				return row.category, true
			}
		}
	}
	return "", false
}

// AnalyzeRepos condenses a user's recent repositories into the aggregate the
// profile prompt feeds on. now anchors the recent-activity cutoff (6 months).
func AnalyzeRepos(repos []model.GitHubRepo, now time.Time) model.Analysis {
	a := model.Analysis{TotalRepos: len(repos)}
	cutoff := now.AddDate(0, -6, 0)

	seenLang := map[string]bool{}
	seenType := map[string]bool{}
	for _, r := range repos {
		if r.Language != "" && !seenLang[r.Language] {
			seenLang[r.Language] = true
			a.Languages = append(a.Languages, r.Language)
		}
		a.TotalStars += r.Stargazers
		a.TotalForks += r.Forks
		if r.UpdatedAt.After(cutoff) {
			a.RecentActivity = true
		}
		if cat, ok := ClassifyProject(r.Name); ok && !seenType[cat] {
			seenType[cat] = true
			a.ProjectTypes = append(a.ProjectTypes, cat)
		}
		if len(a.TopProjects) < maxTopProjects {
			a.TopProjects = append(a.TopProjects, model.ProjectSummary{
				Name:        r.Name,
				Description: r.Description,
				Stars:       r.Stargazers,
				Language:    r.Language,
			})
		}
	}
	return a
}
