package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncampus/internal/catalog"
	"oncampus/internal/clock"
	"oncampus/internal/collection"
	"oncampus/internal/config"
	"oncampus/internal/directory"
	"oncampus/internal/logger"
	"oncampus/internal/models"
	"oncampus/internal/storage"
)

type harness struct {
	kv     *storage.Memory
	out    bytes.Buffer
	errOut bytes.Buffer
	opened int
}

func newHarness() *harness {
	return &harness{kv: storage.NewMemory(nil)}
}

// run executes one CLI invocation against the shared memory store.
func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	app := &App{
		Out: &h.out,
		Err: &h.errOut,
		Open: func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*directory.Directory, func() error, error) {
			h.opened++
			dir := directory.New(h.kv, log,
				collection.WithClock(clock.NewFixed(time.Date(2025, 7, 4, 12, 30, 0, 0, time.UTC))),
				collection.WithPicker(func(int) int { return 1 }),
			)
			return dir, func() error { return nil }, nil
		},
	}
	cmd := app.NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestListClubsText(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "list", "clubs"))

	out := h.out.String()
	assert.Contains(t, out, "NAME")
	for _, c := range catalog.Clubs() {
		assert.Contains(t, out, c.Name)
	}
	assert.Contains(t, h.kv.Snapshot(), "oncampus-clubs")
	assert.NotContains(t, h.kv.Snapshot(), "oncampus-events")
}

func TestListEventsJSONSorted(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "add", "event", "--title", "Orientation", "--date", "2025-01-05T10:00:00.000Z"))
	require.NoError(t, h.run(t, "--format", "json", "list", "events"))

	var events []models.CampusEvent
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &events))
	require.Len(t, events, len(catalog.Events())+1)
	assert.Equal(t, "Orientation", events[0].Title)
}

func TestAddClubPersistsAcrossRuns(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "--format", "json", "add", "club", "--name", "Astronomy", "--category", "Science"))

	var created []models.Club
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &created))
	require.Len(t, created, 1)
	assert.Equal(t, "2025-07-04T12:30:00.000Z", created[0].ID)
	assert.Equal(t, "club-2", created[0].ImageID)

	require.NoError(t, h.run(t, "list", "clubs"))
	assert.Contains(t, h.out.String(), "Astronomy")
	assert.Equal(t, 2, h.opened)
}

func TestAddBenefitWithRedirect(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "add", "benefit",
		"--title", "Cloud credits", "--provider", "CloudCo", "--redirect-url", "https://cloud.example/students", "--image", "benefit-4"))

	out := h.out.String()
	assert.Contains(t, out, "Cloud credits")
	assert.Contains(t, out, "https://cloud.example/students")
	assert.Contains(t, h.kv.Snapshot()["oncampus-benefits"], `"imageId":"benefit-4"`)
}

func TestAddRequiresFlags(t *testing.T) {
	h := newHarness()

	err := h.run(t, "add", "event", "--title", "No date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
	assert.Zero(t, h.opened)
}

func TestRemove(t *testing.T) {
	h := newHarness()
	id := catalog.Benefits()[2].ID

	require.NoError(t, h.run(t, "remove", "benefits", id))
	assert.Contains(t, h.out.String(), "Removed "+id)

	require.NoError(t, h.run(t, "--format", "json", "remove", "benefits", id))
	var res RemoveResult
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &res))
	assert.Equal(t, RemoveResult{Kind: "benefits", ID: id, Removed: false}, res)

	var stored []models.Benefit
	require.NoError(t, json.Unmarshal([]byte(h.kv.Snapshot()["oncampus-benefits"]), &stored))
	assert.Len(t, stored, len(catalog.Benefits())-1)
}

func TestRejectsUnknownKindAndFormat(t *testing.T) {
	h := newHarness()

	assert.Error(t, h.run(t, "list", "professors"))
	assert.Error(t, h.run(t, "remove", "professors", "x"))
	assert.Error(t, h.run(t, "--format", "yaml", "list", "clubs"))
	assert.Zero(t, h.opened)
}

func TestStatusReportsOutcomes(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "--format", "json", "status"))
	var first []StatusEntry
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &first))
	require.Len(t, first, 3)
	for _, e := range first {
		assert.Equal(t, collection.OutcomeSeeded, e.Outcome)
		assert.Empty(t, e.Error)
	}

	require.NoError(t, h.run(t, "status"))
	out := h.out.String()
	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "loaded")
	assert.NotContains(t, out, "seeded")
}

func TestStatusShowsFallbackError(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.kv.Set(context.Background(), "oncampus-clubs", "{not json"))
	require.NoError(t, h.kv.Set(context.Background(), "oncampus-clubs-version",
		collection.LengthFingerprint(mustJSON(t, catalog.Clubs()))))

	require.NoError(t, h.run(t, "status"))

	assert.Contains(t, h.out.String(), "fallback")
	assert.Contains(t, h.out.String(), "clubs: decoding oncampus-clubs")
	assert.Contains(t, h.errOut.String(), "ERROR")
}

func TestOpenErrorIsReturned(t *testing.T) {
	var out, errOut bytes.Buffer
	app := &App{
		Out: &out,
		Err: &errOut,
		Open: func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*directory.Directory, func() error, error) {
			return nil, nil, errors.New("connection refused")
		},
	}
	cmd := app.NewRootCmd()
	cmd.SetArgs([]string{"status"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEnvFileIsLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_NAMESPACE=cli-test\n"), 0600))
	// godotenv never overrides a variable that is already set.
	t.Setenv("STORE_NAMESPACE", "unused")
	require.NoError(t, os.Unsetenv("STORE_NAMESPACE"))

	var seen string
	app := &App{
		Out: &bytes.Buffer{},
		Err: &bytes.Buffer{},
		Open: func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*directory.Directory, func() error, error) {
			seen = cfg.Store.Namespace
			return directory.New(storage.NewMemory(nil), log), func() error { return nil }, nil
		},
	}
	cmd := app.NewRootCmd()
	cmd.SetArgs([]string{"--env-file", path, "status"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cli-test", seen)
}

func TestMissingEnvFileFails(t *testing.T) {
	h := newHarness()

	err := h.run(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"), "status")
	require.Error(t, err)
	assert.Zero(t, h.opened)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
