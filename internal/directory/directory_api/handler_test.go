package directory_api

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncampus/internal/catalog"
	"oncampus/internal/clock"
	"oncampus/internal/collection"
	"oncampus/internal/directory"
	"oncampus/internal/logger"
	"oncampus/internal/models"
	"oncampus/internal/storage"
	"oncampus/internal/utils"
)

// failingKV accepts reads and the initial seed, then fails every write once
// armed.
type failingKV struct {
	*storage.Memory
	fail bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func newTestServer(t *testing.T, kv storage.Store, initialize bool) (*httptest.Server, *directory.Directory) {
	t.Helper()
	log := logger.NewWithWriter(io.Discard)
	dir := directory.New(kv, log,
		collection.WithClock(clock.NewStepping(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), time.Second)),
		collection.WithPicker(func(int) int { return 0 }),
	)
	if initialize {
		dir.Initialize(context.Background())
	}
	srv := httptest.NewServer(NewRouter(NewHandler(dir, log)))
	t.Cleanup(srv.Close)
	return srv, dir
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestListClubs(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), true)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/clubs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[ListResponse[models.Club]](t, resp)
	assert.True(t, body.Initialized)
	assert.Equal(t, catalog.Clubs(), body.Items)
}

func TestListBeforeInitializeIsEmpty(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), false)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/benefits", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[ListResponse[models.Benefit]](t, resp)
	assert.False(t, body.Initialized)
	assert.NotNil(t, body.Items)
	assert.Empty(t, body.Items)
}

func TestAddClub(t *testing.T) {
	kv := storage.NewMemory(nil)
	srv, dir := newTestServer(t, kv, true)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/clubs", `{"name":"Art Club","description":"Paint","category":"Arts"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[models.Club](t, resp)
	assert.Equal(t, "2025-06-01T09:00:00.000Z", created.ID)
	assert.Equal(t, "club-1", created.ImageID)
	assert.Equal(t, "Art Club", created.Name)

	items := dir.Clubs.Items()
	assert.Equal(t, created, items[len(items)-1])
	assert.Contains(t, kv.Snapshot()["oncampus-clubs"], "Art Club")
}

func TestAddBenefitKeepsRedirect(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), true)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/benefits",
		`{"title":"Gym pass","provider":"Sports Centre","category":"Fitness","redirectUrl":"https://gym.example/students"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[models.Benefit](t, resp)
	assert.Equal(t, "https://gym.example/students", created.RedirectURL)
	assert.Equal(t, "benefit-1", created.ImageID)
}

func TestAddInvalidJSON(t *testing.T) {
	srv, dir := newTestServer(t, storage.NewMemory(nil), true)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/events", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[utils.APIResponse](t, resp)
	assert.False(t, body.Success)
	assert.Len(t, dir.Events.Items(), len(catalog.Events()))
}

func TestAddBeforeInitialize(t *testing.T) {
	kv := storage.NewMemory(nil)
	srv, _ := newTestServer(t, kv, false)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/clubs", `{"name":"Art Club"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	assert.Empty(t, kv.Snapshot())
}

func TestAddStorageFailure(t *testing.T) {
	kv := &failingKV{Memory: storage.NewMemory(nil)}
	srv, dir := newTestServer(t, kv, true)
	kv.fail = true

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/clubs", `{"name":"Art Club"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[utils.APIResponse](t, resp)
	assert.Contains(t, body.Error, "disk full")
	assert.Equal(t, catalog.Clubs(), dir.Clubs.Items())
}

func TestRemoveClub(t *testing.T) {
	srv, dir := newTestServer(t, storage.NewMemory(nil), true)
	id := catalog.Clubs()[0].ID

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/clubs/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	_, found := dir.Clubs.Find(id)
	assert.False(t, found)

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/clubs/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	assert.Len(t, dir.Clubs.Items(), len(catalog.Clubs())-1)
}

func TestRemoveGeneratedID(t *testing.T) {
	srv, dir := newTestServer(t, storage.NewMemory(nil), true)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/events", `{"title":"Hackathon","date":"2025-11-01T09:00:00.000Z","location":"Lab 1"}`)
	created := decode[models.CampusEvent](t, resp)

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/events/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, catalog.Events(), dir.Events.Items())
}

func TestEventsSortedByDate(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), true)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/events", `{"title":"Orientation","date":"2025-01-10T09:00:00.000Z","location":"Hall"}`)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/events", "")
	body := decode[ListResponse[models.CampusEvent]](t, resp)

	require.NotEmpty(t, body.Items)
	assert.Equal(t, "Orientation", body.Items[0].Title)
	for i := 1; i < len(body.Items); i++ {
		prev, _ := body.Items[i-1].StartsAt()
		cur, _ := body.Items[i].StartsAt()
		assert.False(t, cur.Before(prev), "events out of order at %d", i)
	}
}

func TestBenefitQR(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), true)

	var withRedirect, withoutRedirect string
	for _, b := range catalog.Benefits() {
		if b.HasRedirect() && withRedirect == "" {
			withRedirect = b.ID
		}
		if !b.HasRedirect() && withoutRedirect == "" {
			withoutRedirect = b.ID
		}
	}
	require.NotEmpty(t, withRedirect)
	require.NotEmpty(t, withoutRedirect)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/benefits/"+withRedirect+"/qr", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_, err := png.Decode(resp.Body)
	assert.NoError(t, err)

	resp2 := doRequest(t, http.MethodGet, srv.URL+"/api/benefits/"+withoutRedirect+"/qr", "")
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	resp2.Body.Close()

	resp3 := doRequest(t, http.MethodGet, srv.URL+"/api/benefits/missing/qr", "")
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
	resp3.Body.Close()
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, storage.NewMemory(nil), false)

	resp := doRequest(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	srv2, _ := newTestServer(t, storage.NewMemory(nil), true)
	resp = doRequest(t, http.MethodGet, srv2.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[utils.APIResponse](t, resp)
	assert.Equal(t, map[string]interface{}{"clubs": true, "events": true, "benefits": true}, body.Data)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf strings.Builder
	log := logger.NewWithWriter(&buf)
	dir := directory.New(storage.NewMemory(nil), log)
	dir.Initialize(context.Background())
	router := NewRouter(NewHandler(dir, log))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/clubs/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "DELETE /api/clubs/nope - 404")
}

func TestRootRedirectsToClubs(t *testing.T) {
	_, dir := newTestServer(t, storage.NewMemory(nil), true)
	router := NewRouter(NewHandler(dir, logger.NewWithWriter(io.Discard)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/clubs", rec.Header().Get("Location"))
}
