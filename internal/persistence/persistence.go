package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pidwin/pidwin/internal/simulation"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/pidwin/pidwin/internal/util"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slices"
)

const (
	BucketRuns = "runs"
)

var (
	ErrRunNotFound = fmt.Errorf("run not found: %w", os.ErrNotExist)
	ErrCorruptRun  = errors.New("corrupt run data")
)

// RunInfo is a short description of a persisted simulation run
type RunInfo struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	TimeDelta float64   `json:"timeDelta"`
	TimeMax   float64   `json:"timeMax"`
	Loops     []string  `json:"-"`
}

type Persistence interface {
	Init() error

	SaveRun(result *simulation.Result) error
	LoadRun(id string) (*simulation.Result, error)
	ListRuns() ([]RunInfo, error)
	DeleteRun(id string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	created, err := util.EnsureParentDir(p.dbPath)
	if created {
		ui.Info("Created directory for db: %s", p.dbPath)
	}
	return err
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun saves the given simulation result, replacing any run with the same id
func (p persistence) SaveRun(result *simulation.Result) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(result.Id), data)
	})
}

// LoadRun loads the simulation result with the given id
func (p persistence) LoadRun(id string) (*simulation.Result, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result *simulation.Result
	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return ErrRunNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return ErrRunNotFound
		}

		err := json.Unmarshal(v, &result)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved run %s: %v", id, err)
			corrupt = true
			result = nil
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
		}
		return nil
	})
	if err == nil && corrupt {
		err = fmt.Errorf("%w: %s", ErrCorruptRun, id)
	}

	return result, err
}

// ListRuns returns all persisted runs, newest first
func (p persistence) ListRuns() ([]RunInfo, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []RunInfo
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// nothing saved yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var run struct {
				RunInfo
				Series []struct {
					LoopId string `json:"loopId"`
				} `json:"series"`
			}
			if err := json.Unmarshal(v, &run); err != nil {
				ui.Warning("Skipping unreadable run %s: %v", string(k), err)
				return nil
			}
			info := run.RunInfo
			for _, series := range run.Series {
				info.Loops = append(info.Loops, series.LoopId)
			}
			result = append(result, info)
			return nil
		})
	})

	slices.SortFunc(result, func(a, b RunInfo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return result, err
}

// DeleteRun deletes the simulation result with the given id
func (p persistence) DeleteRun(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return ErrRunNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return ErrRunNotFound
		}

		return b.Delete([]byte(id))
	})
}
