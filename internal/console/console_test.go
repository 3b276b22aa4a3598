package console

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/poinet/profiler-backend-go/internal/correlate"
	"github.com/poinet/profiler-backend-go/internal/database"
	"github.com/poinet/profiler-backend-go/internal/repository"
	"github.com/poinet/profiler-backend-go/internal/service"
)

func newRunner(t *testing.T, input string) (*Runner, *bytes.Buffer, *bytes.Buffer, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.EnsureSchema(db))
	t.Cleanup(func() { db.Close() })

	svc := service.NewProfileService(
		repository.NewPersonRepository(db),
		repository.NewTrailRepository(db),
		repository.NewBusinessRepository(db),
		repository.NewEventRepository(db),
		repository.NewCrimeRepository(db),
		repository.NewRelationRepository(db),
		correlate.DefaultConfig(),
	)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRunner(svc, strings.NewReader(input), out, errOut), out, errOut, db
}

func TestRunExitCommand(t *testing.T) {
	r, out, _, _ := newRunner(t, "exit\n")
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "== POI Profiler ==")
}

func TestRunUnknownIdKeepsServing(t *testing.T) {
	r, out, errOut, _ := newRunner(t, "nobody\nexit\n")
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), `{ "error": "no result" }`)
	assert.Empty(t, errOut.String())
}

func TestRunBlankLineReprompts(t *testing.T) {
	r, out, _, _ := newRunner(t, "\n\nexit\n")
	require.NoError(t, r.Run())
	assert.Equal(t, 3, strings.Count(out.String(), "> id: "))
}

func TestRunPrintsProfileJSON(t *testing.T) {
	r, out, _, db := newRunner(t, "p1\nexit\n")
	_, err := db.Exec(`INSERT INTO people (person_id, first_name, last_name, license_id, address_line1)
		VALUES ('p1', 'JOHN', 'DOE', 'DL1', '10 MAIN ST')`)
	require.NoError(t, err)

	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), `"name": "JOHN DOE"`)
}
