package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/manan0209/gitroaster/internal/model"
	"github.com/manan0209/gitroaster/internal/repository"
	"github.com/manan0209/gitroaster/internal/roastgen"
)

const (
	reposPerPage   = 10
	commitsPerPage = 10
	readmeMaxBytes = 4096

	defaultTopLimit = 10
	maxTopLimit     = 50
)

// GitHubAPI is the slice of the GitHub client the pipeline reads.
type GitHubAPI interface {
	Profile(ctx context.Context, username string) (*model.GitHubProfile, error)
	Repository(ctx context.Context, owner, name string) (*model.GitHubRepo, error)
	Repositories(ctx context.Context, username string, perPage int) ([]model.GitHubRepo, error)
	Languages(ctx context.Context, owner, name string) (map[string]int64, error)
	Commits(ctx context.Context, owner, name string, perPage int) ([]model.GitHubCommit, error)
	Contents(ctx context.Context, owner, name string) ([]model.ContentEntry, error)
	FileText(ctx context.Context, url string, maxBytes int64) (string, error)
}

// Completer produces roast text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RoastService defines roast generation and read operations.
type RoastService interface {
	// RoastProfile runs the full profile pipeline for one GitHub username.
	RoastProfile(ctx context.Context, username string) (model.RoastResult, error)
	// RoastRepo runs the full pipeline for one repository.
	RoastRepo(ctx context.Context, owner, name string) (model.RoastResult, error)
	// Get loads one persisted roast.
	Get(ctx context.Context, id uuid.UUID) (*model.Roast, error)
	// HallOfShame returns the top-voted roasts.
	HallOfShame(ctx context.Context, limit int) ([]model.Roast, error)
	// RoastOfTheDay returns today's featured roast.
	RoastOfTheDay(ctx context.Context) (*model.Roast, error)
}

type RoastServiceImpl struct {
	gh     GitHubAPI
	comp   Completer
	roasts repository.RoastRepository
	log    *zap.Logger
	now    func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewRoastService constructs RoastService. seed drives fallback selection so
// tests can pin it.
func NewRoastService(gh GitHubAPI, comp Completer, roasts repository.RoastRepository, log *zap.Logger, seed int64) *RoastServiceImpl {
	return &RoastServiceImpl{
		gh:     gh,
		comp:   comp,
		roasts: roasts,
		log:    log,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *RoastServiceImpl) pick(f func(*rand.Rand) string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.rng)
}

// RoastProfile fetches the profile (the only fatal step), aggregates recent
// repositories best-effort, asks the completion endpoint, falls back to
// canned text on any completion failure, and persists best-effort. The steps
// form a strict pipeline: identity, then prompt, then completion-or-fallback,
// then persistence.
func (s *RoastServiceImpl) RoastProfile(ctx context.Context, username string) (model.RoastResult, error) {
	if username == "" {
		return model.RoastResult{}, errors.New("validation: empty username")
	}

	profile, err := s.gh.Profile(ctx, username)
	if err != nil {
		return model.RoastResult{}, err
	}

	var analysis model.Analysis
	if repos, err := s.gh.Repositories(ctx, username, reposPerPage); err != nil {
		s.log.Warn("repo analysis unavailable", zap.String("username", username), zap.Error(err))
	} else {
		analysis = roastgen.AnalyzeRepos(repos, s.now())
	}

	text, err := s.comp.Complete(ctx, roastgen.ProfilePrompt(profile, analysis, s.now()))
	fallback := false
	if err != nil {
		s.log.Warn("completion failed, serving canned roast", zap.String("username", username), zap.Error(err))
		text = s.pick(func(r *rand.Rand) string { return roastgen.ProfileFallback(r, profile) })
		fallback = true
	}

	return s.persist(ctx, model.Roast{
		Username:  profile.Login,
		RoastType: model.RoastTypeProfile,
		RoastText: text,
	}, fallback), nil
}

// RoastRepo fetches the repository (fatal), then its languages, commits and
// file listing concurrently (no ordering dependency between the three), then
// follows the same completion/fallback/persist pipeline as profiles.
func (s *RoastServiceImpl) RoastRepo(ctx context.Context, owner, name string) (model.RoastResult, error) {
	if owner == "" || name == "" {
		return model.RoastResult{}, errors.New("validation: empty owner/name")
	}

	repo, err := s.gh.Repository(ctx, owner, name)
	if err != nil {
		return model.RoastResult{}, err
	}

	var (
		langs   map[string]int64
		commits []model.GitHubCommit
		files   []model.ContentEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if langs, err = s.gh.Languages(gctx, owner, name); err != nil {
			s.log.Warn("languages unavailable", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if commits, err = s.gh.Commits(gctx, owner, name, commitsPerPage); err != nil {
			s.log.Warn("commits unavailable", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if files, err = s.gh.Contents(gctx, owner, name); err != nil {
			s.log.Warn("contents unavailable", zap.Error(err))
		}
		return nil
	})
	_ = g.Wait()

	readme := s.readmeExcerpt(ctx, files)

	text, err := s.comp.Complete(ctx, roastgen.RepoPrompt(repo, langs, commits, files, readme, s.now()))
	fallback := false
	if err != nil {
		s.log.Warn("completion failed, serving canned roast", zap.String("repo", owner+"/"+name), zap.Error(err))
		text = s.pick(func(r *rand.Rand) string { return roastgen.RepoFallback(r, repo) })
		fallback = true
	}

	return s.persist(ctx, model.Roast{
		Username:  owner,
		RepoName:  repo.Name,
		RoastType: model.RoastTypeRepo,
		RoastText: text,
	}, fallback), nil
}

// readmeExcerpt downloads the README when the listing shows one. Best-effort.
func (s *RoastServiceImpl) readmeExcerpt(ctx context.Context, files []model.ContentEntry) string {
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if lower != "readme.md" && lower != "readme.txt" && lower != "readme.rst" {
			continue
		}
		if f.DownloadURL == "" {
			return ""
		}
		text, err := s.gh.FileText(ctx, f.DownloadURL, readmeMaxBytes)
		if err != nil {
			s.log.Warn("readme download failed", zap.Error(err))
			return ""
		}
		return text
	}
	return ""
}

// persist saves the roast best-effort. A failed save still returns the text
// to the caller, just unsaved and without an id to vote on.
func (s *RoastServiceImpl) persist(ctx context.Context, rst model.Roast, fallback bool) model.RoastResult {
	id, err := uuid.NewV4()
	if err == nil {
		rst.ID = id
		if err = s.roasts.Create(ctx, &rst); err == nil {
			return model.RoastResult{Roast: rst, Saved: true, Fallback: fallback}
		}
	}
	s.log.Error("roast not persisted", zap.String("username", rst.Username), zap.Error(err))
	rst.ID = uuid.Nil
	rst.CreatedAt = s.now()
	return model.RoastResult{Roast: rst, Saved: false, Fallback: fallback}
}

// Get loads one roast by id.
func (s *RoastServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Roast, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	return s.roasts.GetByID(ctx, id)
}

// HallOfShame returns up to limit top-voted roasts; limit is clamped.
func (s *RoastServiceImpl) HallOfShame(ctx context.Context, limit int) ([]model.Roast, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	return s.roasts.TopByVotes(ctx, limit)
}

// RoastOfTheDay returns the roast featured for the current calendar date.
func (s *RoastServiceImpl) RoastOfTheDay(ctx context.Context) (*model.Roast, error) {
	return s.roasts.DailyRoast(ctx, s.now())
}
