package roastgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/manan0209/gitroaster/internal/model"
)

// readmeExcerptLen caps how much README text a repo prompt carries.
const readmeExcerptLen = 300

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ProfilePrompt builds the completion prompt for a profile roast.
func ProfilePrompt(p *model.GitHubProfile, a model.Analysis, now time.Time) string {
	age := now.Year() - p.CreatedAt.Year()
	activity := "gave up faster than Internet Explorer loading"
	if a.RecentActivity {
		activity = "still committing crimes against code"
	}

	var top []string
	for _, pr := range a.TopProjects {
		top = append(top, fmt.Sprintf("%q (%d stars)", pr.Name, pr.Stars))
	}

	var b strings.Builder
	b.WriteString("You are the ultimate GitHub roasting machine: a code reviewer with wit sharper than a segfault ")
	b.WriteString("and humor darker than a production crash at 3 AM. Demolish this developer with comedic precision.\n\n")
	fmt.Fprintf(&b, "Target: @%s\n", p.Login)
	fmt.Fprintf(&b, "Name: %s\n", orElse(p.Name, "too embarrassed to share"))
	fmt.Fprintf(&b, "Bio: %q\n", orElse(p.Bio, "left blank - classic move"))
	fmt.Fprintf(&b, "Location: %s\n", orElse(p.Location, "hiding in a basement somewhere"))
	fmt.Fprintf(&b, "Public repos: %d\n", p.PublicRepos)
	fmt.Fprintf(&b, "Followers: %d (probably alt accounts)\n", p.Followers)
	fmt.Fprintf(&b, "Following: %d (desperately seeking validation)\n", p.Following)
	fmt.Fprintf(&b, "Account age: %d years\n\n", age)
	fmt.Fprintf(&b, "Languages: %s\n", orElse(strings.Join(a.Languages, ", "), "speaks fluent Google Translate"))
	fmt.Fprintf(&b, "Total stars across repos: %d\n", a.TotalStars)
	fmt.Fprintf(&b, "Total forks: %d\n", a.TotalForks)
	fmt.Fprintf(&b, "Project types: %s\n", orElse(strings.Join(a.ProjectTypes, ", "), "unidentified coding objects"))
	fmt.Fprintf(&b, "Activity: %s\n", activity)
	fmt.Fprintf(&b, "Top projects: %s\n\n", orElse(strings.Join(top, ", "), "nothing worth mentioning"))
	b.WriteString("Roast their username, bio, follower-to-repo ratio, language choices and star count. ")
	b.WriteString("Use developer humor and absurd analogies, reference their actual stats, never generic insults. ")
	b.WriteString("4-6 sentences of plain text, no markdown, ending with a soul-crushing punchline.")
	return b.String()
}

// RepoPrompt builds the completion prompt for a repository roast. languages,
// commits, files and readme are all optional; absence degrades to "unknown".
func RepoPrompt(r *model.GitHubRepo, languages map[string]int64, commits []model.GitHubCommit, files []model.ContentEntry, readme string, now time.Time) string {
	var langs []string
	for l := range languages {
		langs = append(langs, l)
	}

	var msgs []string
	for i, c := range commits {
		if i == 5 {
			break
		}
		msgs = append(msgs, c.Commit.Message)
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	listing := strings.Join(names, ", ")
	if len(listing) > 100 {
		listing = listing[:100] + "..."
	}

	docs := "MISSING (explaining this would break the Geneva Convention)"
	if readme != "" {
		if len(readme) > readmeExcerptLen {
			readme = readme[:readmeExcerptLen] + "..."
		}
		docs = fmt.Sprintf("exists: %q", readme)
	}

	var b strings.Builder
	b.WriteString("You are part code reviewer, part venture capitalist rejecting a pitch, and 100% savage. ")
	b.WriteString("Annihilate this project's code, concept and market viability in one multi-dimensional beatdown.\n\n")
	fmt.Fprintf(&b, "Project: %q by %s\n", r.Name, r.Owner.Login)
	fmt.Fprintf(&b, "Description: %q\n", orElse(r.Description, "too ashamed to describe this fever dream"))
	fmt.Fprintf(&b, "Stars: %d (charity from relatives)\n", r.Stargazers)
	fmt.Fprintf(&b, "Forks: %d (nobody wants to inherit this)\n", r.Forks)
	fmt.Fprintf(&b, "Primary language: %s\n", orElse(r.Language, "ancient hieroglyphics"))
	fmt.Fprintf(&b, "Size: %dKB\n", r.SizeKB)
	fmt.Fprintf(&b, "Open issues: %d (bugs or features? we may never know)\n", r.OpenIssues)
	fmt.Fprintf(&b, "Age: %d years\n", now.Year()-r.CreatedAt.Year())
	fmt.Fprintf(&b, "Watchers: %d\n\n", r.Watchers)
	fmt.Fprintf(&b, "Tech stack: %s\n", orElse(strings.Join(langs, ", "), "powered by tears and regret"))
	fmt.Fprintf(&b, "Documentation: %s\n", docs)
	fmt.Fprintf(&b, "Recent commit messages: %s\n", orElse(strings.Join(msgs, " | "), "no commits (scared to commit?)"))
	fmt.Fprintf(&b, "Top-level files: %s\n\n", orElse(listing, "unknown files"))
	b.WriteString("Savage the name, the concept, the target audience, the commit messages and the README. ")
	b.WriteString("Question why this exists when better alternatives do. Use their real numbers. ")
	b.WriteString("5-7 sentences of plain text, no markdown, ending with a punchline that questions their career path.")
	return b.String()
}
