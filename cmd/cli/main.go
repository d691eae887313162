// Command gitroaster is a terminal client for the GitRoaster API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/manan0209/gitroaster/internal/fingerprint"
	"github.com/manan0209/gitroaster/internal/roastgen"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "gitroaster")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gitroaster")
}

// ---- api client ----

type apiClient struct {
	baseURL string
	hc      *http.Client
}

type roastPayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	RepoName  string    `json:"repo_name"`
	RoastType string    `json:"roast_type"`
	RoastText string    `json:"roast_text"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	Saved     bool      `json:"saved"`
	Fallback  bool      `json:"fallback"`
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server said no (%d): %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		var eb struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &apiError{Status: resp.StatusCode, Message: eb.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ---- output ----

func printRoast(r roastPayload) {
	header := "@" + r.Username
	if r.RepoName != "" {
		header += "/" + r.RepoName
	}
	fmt.Printf("🔥 %s\n\n%s\n", header, r.RoastText)
	if r.ID != "" {
		fmt.Printf("\nvotes: %d  id: %s\n", r.Votes, r.ID)
	}
	if r.Fallback {
		fmt.Println("(the AI chickened out, this one is from the archives)")
	}
}

// ---- commands ----

func newClient(cmd *cli.Command) *apiClient {
	return &apiClient{
		baseURL: cmd.String("server"),
		hc:      &http.Client{Timeout: 90 * time.Second},
	}
}

func runRoast(ctx context.Context, cmd *cli.Command) error {
	username := cmd.Args().First()
	if username == "" {
		return fmt.Errorf("usage: gitroaster roast <username> [--repo name]")
	}

	body := map[string]string{"roast_type": "profile", "username": username}
	if repo := cmd.String("repo"); repo != "" {
		body["roast_type"] = "repo"
		body["repo_name"] = repo
	}

	var r roastPayload
	if err := newClient(cmd).do(ctx, http.MethodPost, "/api/roasts", body, &r); err != nil {
		return err
	}
	printRoast(r)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fmt.Printf("\n💡 %s\n", roastgen.FunTip(rng))
	return nil
}

func runVote(ctx context.Context, cmd *cli.Command) error {
	roastID := cmd.Args().First()
	if roastID == "" {
		return fmt.Errorf("usage: gitroaster vote <roast-id>")
	}

	fp := fingerprint.NewStore(cfgDir(), nil).Get()
	var out struct {
		Votes int64 `json:"votes"`
	}
	err := newClient(cmd).do(ctx, http.MethodPost, "/api/roasts/"+roastID+"/votes", map[string]string{"fingerprint": fp}, &out)
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) && ae.Status == http.StatusConflict {
			fmt.Println("you already voted on this one, no double-dipping")
			return nil
		}
		return err
	}
	fmt.Printf("🔥 vote counted, total: %d\n", out.Votes)
	return nil
}

func runTop(ctx context.Context, cmd *cli.Command) error {
	path := fmt.Sprintf("/api/roasts/top?limit=%d", cmd.Int("limit"))
	var out struct {
		Roasts []roastPayload `json:"roasts"`
	}
	if err := newClient(cmd).do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return err
	}
	if len(out.Roasts) == 0 {
		fmt.Println("the hall of shame is empty, go roast someone")
		return nil
	}
	fmt.Println("🏆 Hall of Shame")
	for i, r := range out.Roasts {
		target := "@" + r.Username
		if r.RepoName != "" {
			target += "/" + r.RepoName
		}
		fmt.Printf("\n%d. %s (%d votes, id %s)\n%s\n", i+1, target, r.Votes, r.ID, r.RoastText)
	}
	return nil
}

func runDaily(ctx context.Context, cmd *cli.Command) error {
	var r roastPayload
	if err := newClient(cmd).do(ctx, http.MethodGet, "/api/roasts/daily", nil, &r); err != nil {
		return err
	}
	fmt.Println("🌟 Roast of the Day")
	printRoast(r)
	return nil
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	roastID := cmd.Args().First()
	if roastID == "" {
		return fmt.Errorf("usage: gitroaster show <roast-id>")
	}
	var r roastPayload
	if err := newClient(cmd).do(ctx, http.MethodGet, "/api/roasts/"+roastID, nil, &r); err != nil {
		return err
	}
	printRoast(r)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "gitroaster",
		Usage:   "Get your GitHub profile or repo brutally roasted by AI",
		Version: fmt.Sprintf("%s (%s)", version, buildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "GitRoaster server base URL",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("GITROASTER_SERVER"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "roast",
				Usage:     "Roast a GitHub profile, or one repo with --repo",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "repo", Usage: "repository name to roast instead of the profile"},
				},
				Action: runRoast,
			},
			{
				Name:      "vote",
				Usage:     "Upvote a roast (one vote per fingerprint)",
				ArgsUsage: "<roast-id>",
				Action:    runVote,
			},
			{
				Name:   "top",
				Usage:  "Show the Hall of Shame leaderboard",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Value: 10, Usage: "number of roasts"}},
				Action: runTop,
			},
			{
				Name:   "daily",
				Usage:  "Show the featured roast of the day",
				Action: runDaily,
			},
			{
				Name:      "show",
				Usage:     "Show one roast by id",
				ArgsUsage: "<roast-id>",
				Action:    runShow,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
