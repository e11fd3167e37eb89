package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pidwin/pidwin/internal/simulation"
	"github.com/pidwin/pidwin/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func createPersistence(t *testing.T) (Persistence, string) {
	dbPath := filepath.Join(t.TempDir(), "db", "test.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	return p, dbPath
}

func createResult(id string, createdAt time.Time) *simulation.Result {
	return &simulation.Result{
		Id:        id,
		CreatedAt: createdAt,
		TimeDelta: 1,
		TimeMax:   3,
		Series: []simulation.Series{
			{
				LoopId:       "tank",
				SetPoint:     1,
				ControlBias:  0.1,
				Time:         []float64{0, 1, 2},
				Uncontrolled: []float64{0.5, 0.6, 0.7},
				Controlled:   []float64{0.5, 0.8, 0.9},
				Control:      []float64{0.1, 0.05, 0.07},
				Forcing:      []float64{0.5, 0.5, 0.5},
			},
		},
	}
}

func TestPersistence_SaveAndLoadRun(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	expected := createResult("run-1", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	// WHEN
	err := p.SaveRun(expected)
	require.NoError(t, err)
	result, err := p.LoadRun("run-1")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, expected.Id, result.Id)
	assert.True(t, expected.CreatedAt.Equal(result.CreatedAt))
	assert.Equal(t, expected.Series, result.Series)
}

func TestPersistence_LoadRun_Missing(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// WHEN
	result, err := p.LoadRun("missing")

	// THEN
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestPersistence_LoadRun_CorruptDataIsDeleted(t *testing.T) {
	// GIVEN
	p, dbPath := createPersistence(t)
	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return err
		}
		return b.Put([]byte("broken"), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// WHEN
	result, err := p.LoadRun("broken")

	// THEN
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCorruptRun)
	_, err = p.LoadRun("broken")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestPersistence_ListRuns_NewestFirst(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, p.SaveRun(createResult("b", base)))
	require.NoError(t, p.SaveRun(createResult("a", base.Add(time.Hour))))
	require.NoError(t, p.SaveRun(createResult("c", base.Add(-time.Hour))))

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "a", runs[0].Id)
	assert.Equal(t, "b", runs[1].Id)
	assert.Equal(t, "c", runs[2].Id)
	assert.Equal(t, []string{"tank"}, runs[0].Loops)
	assert.Equal(t, 3.0, runs[0].TimeMax)
}

func TestPersistence_ListRuns_Empty(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPersistence_DeleteRun(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	require.NoError(t, p.SaveRun(createResult("run-1", time.Now())))

	// WHEN
	err := p.DeleteRun("run-1")

	// THEN
	assert.NoError(t, err)
	result, err := p.LoadRun("run-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, p.DeleteRun("run-1"), ErrRunNotFound)
}

func TestPersistence_SaveSimulatedRun(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// at the set point and empty tanks have undefined time scales
	for _, initialCondition := range []float64{1, 0} {
		config := testingutils.CreateConfig(10, testingutils.CreateLoopConfig("tank", initialCondition, 1, 1))
		result, err := simulation.Run(config)
		require.NoError(t, err)

		// WHEN
		err = p.SaveRun(result)

		// THEN
		require.NoError(t, err, "initialCondition: %v", initialCondition)
		loaded, err := p.LoadRun(result.Id)
		require.NoError(t, err)
		assert.Equal(t, result.Series[0].TimeScales, loaded.Series[0].TimeScales)
		require.NotNil(t, loaded.Series[0].SteadyState)
		assert.InDelta(t, 1.0, *loaded.Series[0].SteadyState, 1e-9)
	}
}
