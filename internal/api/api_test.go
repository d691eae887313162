package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manan0209/gitroaster/internal/errs"
	"github.com/manan0209/gitroaster/internal/model"
)

type fakeRoastService struct {
	result   model.RoastResult
	roast    *model.Roast
	top      []model.Roast
	err      error
	lastUser string
	lastRepo string
	gotLimit int
}

func (f *fakeRoastService) RoastProfile(_ context.Context, username string) (model.RoastResult, error) {
	f.lastUser = username
	return f.result, f.err
}

func (f *fakeRoastService) RoastRepo(_ context.Context, owner, name string) (model.RoastResult, error) {
	f.lastUser = owner
	f.lastRepo = name
	return f.result, f.err
}

func (f *fakeRoastService) Get(_ context.Context, _ uuid.UUID) (*model.Roast, error) {
	return f.roast, f.err
}

func (f *fakeRoastService) HallOfShame(_ context.Context, limit int) ([]model.Roast, error) {
	f.gotLimit = limit
	return f.top, f.err
}

func (f *fakeRoastService) RoastOfTheDay(_ context.Context) (*model.Roast, error) {
	return f.roast, f.err
}

type fakeVoteService struct {
	total int64
	err   error
	voted bool
}

func (f *fakeVoteService) CastVote(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	return f.total, f.err
}

func (f *fakeVoteService) HasVoted(_ context.Context, _ uuid.UUID, _ string) bool {
	return f.voted
}

func newTestRouter(rs *fakeRoastService, vs *fakeVoteService) http.Handler {
	return NewRouter(rs, vs, zap.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleRoast(t *testing.T) model.Roast {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return model.Roast{
		ID:        id,
		Username:  "octocat",
		RoastType: model.RoastTypeProfile,
		RoastText: "your contribution graph looks like morse code for HELP",
		Votes:     3,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateRoast_Profile(t *testing.T) {
	rst := sampleRoast(t)
	rs := &fakeRoastService{result: model.RoastResult{Roast: rst, Saved: true}}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts", map[string]string{
		"roast_type": "profile",
		"username":   "octocat",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "octocat", rs.lastUser)

	var got RoastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, rst.RoastText, got.RoastText)
	require.Equal(t, rst.ID.String(), got.ID)
	require.True(t, got.Saved)
	require.False(t, got.Fallback)
}

func TestCreateRoast_RepoDispatch(t *testing.T) {
	rst := sampleRoast(t)
	rst.RoastType = model.RoastTypeRepo
	rst.RepoName = "linguist"
	rs := &fakeRoastService{result: model.RoastResult{Roast: rst, Saved: true}}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts", map[string]string{
		"roast_type": "repo",
		"username":   "octocat",
		"repo_name":  "linguist",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "octocat", rs.lastUser)
	require.Equal(t, "linguist", rs.lastRepo)
}

func TestCreateRoast_Validation(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	cases := map[string]map[string]string{
		"missing username":       {"roast_type": "profile"},
		"bad roast type":         {"roast_type": "haiku", "username": "octocat"},
		"repo without name":      {"roast_type": "repo", "username": "octocat"},
		"profile with repo name": {"roast_type": "profile", "username": "octocat", "repo_name": "x"},
		"invalid username":       {"roast_type": "profile", "username": "-octocat-"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/roasts", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateRoast_UserNotFound(t *testing.T) {
	rs := &fakeRoastService{err: errs.ErrNotFound}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts", map[string]string{
		"roast_type": "profile",
		"username":   "ghost",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "GitHub user not found")
}

func TestCreateRoast_RepoNotFound(t *testing.T) {
	rs := &fakeRoastService{err: errs.ErrNotFound}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts", map[string]string{
		"roast_type": "repo",
		"username":   "octocat",
		"repo_name":  "gone",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Repository not found")
}

func TestCreateRoast_UnsavedFallback(t *testing.T) {
	rst := sampleRoast(t)
	rst.ID = uuid.Nil
	rs := &fakeRoastService{result: model.RoastResult{Roast: rst, Saved: false, Fallback: true}}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts", map[string]string{
		"roast_type": "profile",
		"username":   "octocat",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var got RoastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Empty(t, got.ID)
	require.False(t, got.Saved)
	require.True(t, got.Fallback)
	require.NotEmpty(t, got.RoastText)
}

func TestGetRoast(t *testing.T) {
	rst := sampleRoast(t)
	h := newTestRouter(&fakeRoastService{roast: &rst}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/"+rst.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got RoastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, rst.ID.String(), got.ID)
}

func TestGetRoast_BadID(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoast_NotFound(t *testing.T) {
	h := newTestRouter(&fakeRoastService{err: errs.ErrNotFound}, &fakeVoteService{})

	id, err := uuid.NewV4()
	require.NoError(t, err)
	rec := doJSON(t, h, http.MethodGet, "/api/roasts/"+id.String(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHallOfShame(t *testing.T) {
	first := sampleRoast(t)
	second := sampleRoast(t)
	second.Votes = 1
	rs := &fakeRoastService{top: []model.Roast{first, second}}
	h := newTestRouter(rs, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/top?limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, rs.gotLimit)

	var got struct {
		Roasts []RoastResponse `json:"roasts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Roasts, 2)
	require.Equal(t, first.ID.String(), got.Roasts[0].ID)
}

func TestHallOfShame_Empty(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/top", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"roasts":[]}`, rec.Body.String())
}

func TestRoastOfTheDay(t *testing.T) {
	rst := sampleRoast(t)
	h := newTestRouter(&fakeRoastService{roast: &rst}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/daily", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), rst.ID.String())
}

func TestRoastOfTheDay_None(t *testing.T) {
	h := newTestRouter(&fakeRoastService{err: errs.ErrNotFound}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/daily", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "no featured roast")
}

func TestCastVote(t *testing.T) {
	rst := sampleRoast(t)
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{total: 4})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts/"+rst.ID.String()+"/votes", map[string]string{
		"fingerprint": "1a2b3c",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"votes":4}`, rec.Body.String())
}

func TestCastVote_Statuses(t *testing.T) {
	rst := sampleRoast(t)
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate", errs.ErrAlreadyVoted, http.StatusConflict},
		{"rate limited", errs.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown roast", errs.ErrNotFound, http.StatusNotFound},
		{"storage down", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(&fakeRoastService{}, &fakeVoteService{err: tc.err})
			rec := doJSON(t, h, http.MethodPost, "/api/roasts/"+rst.ID.String()+"/votes", map[string]string{
				"fingerprint": "1a2b3c",
			})
			require.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCastVote_BadFingerprint(t *testing.T) {
	rst := sampleRoast(t)
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodPost, "/api/roasts/"+rst.ID.String()+"/votes", map[string]string{
		"fingerprint": "NOT VALID",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHasVoted(t *testing.T) {
	rst := sampleRoast(t)
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{voted: true})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/"+rst.ID.String()+"/votes/1a2b3c", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"voted":true}`, rec.Body.String())
}

func TestHasVoted_BadIDNeverFails(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{voted: true})

	rec := doJSON(t, h, http.MethodGet, "/api/roasts/nope/votes/1a2b3c", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"voted":false}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecoverMiddleware(t *testing.T) {
	h := newTestRouter(&fakeRoastService{}, &fakeVoteService{})

	// Malformed body exercises the decode error path, panic path is covered
	// by a handler that explodes.
	mux := chi.NewRouter()
	mux.Use(Recover(zap.NewNop()))
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/roasts", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
