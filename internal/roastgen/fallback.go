package roastgen

import (
	"fmt"
	"math/rand"

	"github.com/manan0209/gitroaster/internal/model"
)

// genericFallbacks need no profile data at all.
var genericFallbacks = []string{
	"Wow, your GitHub is so empty, even tumbleweeds are bored.",
	"Your commit history is like a ghost town. Did you forget your password?",
	"With this many repos, you must be allergic to open source.",
	"Your profile is so quiet, even crickets left.",
	"If your GitHub was a party, even the bots wouldn't show up.",
	"Your repo list is so short, it could be a tweet.",
	"Legend says your last commit is still waiting for a friend.",
	"I've seen more activity in a library's silent section.",
	"Your contribution graph looks like a barcode for 'empty'.",
	"Even your README files are embarrassed to be there.",
}

// GenericFallback picks a canned roast requiring no context.
func GenericFallback(rng *rand.Rand) string {
	return genericFallbacks[rng.Intn(len(genericFallbacks))]
}

// ProfileFallback picks a canned roast personalized with profile stats. Used
// when the completion endpoint is down; must always return non-empty text.
func ProfileFallback(rng *rand.Rand, p *model.GitHubProfile) string {
	if p == nil {
		return GenericFallback(rng)
	}
	lines := []string{
		fmt.Sprintf("@%s: %d repos and %d followers? Your coding career is moving backwards faster than Internet Explorer loading a webpage.",
			p.Login, p.PublicRepos, p.Followers),
		fmt.Sprintf("%d followers? Congratulations, you've managed to disappoint %d people and counting. Your contribution graph looks like a heart monitor flatlining.",
			p.Followers, p.Followers),
		fmt.Sprintf("Joined GitHub in %d and only %d repos? At this rate you'll have a decent portfolio by the time the sun burns out.",
			p.CreatedAt.Year(), p.PublicRepos),
		fmt.Sprintf("@%s, your profile is like a ghost town that even ghosts avoid. %d repos? I've seen more productivity from a broken printer.",
			p.Login, p.PublicRepos),
		fmt.Sprintf("%d repositories of what I can only assume is digital despair, and %d followers who clearly haven't seen your commit history.",
			p.PublicRepos, p.Followers),
	}
	return lines[rng.Intn(len(lines))]
}

// RepoFallback picks a canned repository roast personalized with repo stats.
func RepoFallback(rng *rand.Rand, r *model.GitHubRepo) string {
	if r == nil {
		return GenericFallback(rng)
	}
	lang := r.Language
	if lang == "" {
		lang = "mystery"
	}
	desc := r.Description
	if desc == "" {
		desc = "No description"
	}
	lines := []string{
		fmt.Sprintf("%s? More like %d people accidentally clicked star. Your %s code is so bad, even Stack Overflow refuses to help.",
			r.Name, r.Stargazers, lang),
		fmt.Sprintf("%d open issues and counting - at least the bugs are consistent. %d forks? Probably just people trying to fix your code.",
			r.OpenIssues, r.Forks),
		fmt.Sprintf("Last updated %s? Even your commits have given up. %d stars for this masterpiece of digital disappointment.",
			r.UpdatedAt.Format("Jan 2, 2006"), r.Stargazers),
		fmt.Sprintf("%q - even your repo description is more exciting than your code. %s development at its finest, if you squint and look away.",
			desc, lang),
	}
	return lines[rng.Intn(len(lines))]
}

// funTips rotate under the roast in the UI.
var funTips = []string{
	"Tip: Don't take it personally. Even Linus gets roasted!",
	"Pro tip: The more you code, the more you get roasted.",
	"Remember: It's all in good fun!",
	"Roasts are AI-generated. Blame the robots, not me!",
	"Share your roast with friends for maximum laughs.",
}

// FunTip picks a light-hearted footer line.
func FunTip(rng *rand.Rand) string {
	return funTips[rng.Intn(len(funTips))]
}
