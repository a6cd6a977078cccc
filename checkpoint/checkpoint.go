// Package checkpoint persists and resumes EM engine state (spec.md §6:
// motifs are the only state a caller needs to resume a run) in a bbolt
// database, grounded on the teacher's bbolt-backed MCMC checkpointing.
package checkpoint

import (
	"encoding/json"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"github.com/romaingroux/EM-sequences/tensor"
)

var log = logging.MustGetLogger("checkpoint")

// MAIN is the bucket holding all checkpoint keys.
var MAIN = []byte("main")

// CheckpointData is the serialized engine state needed to resume a run
// via emclass.NewWarmStart: every motif (row-major, nBase x W each),
// the iteration count reached, and whether the engine had converged.
type CheckpointData struct {
	Motifs    [][]float64
	NBase     int
	Width     int
	Iter      int
	Converged bool
}

// MotifsToCheckpoint flattens a set of motifs into a CheckpointData,
// ready to Save.
func MotifsToCheckpoint(motifs []*tensor.Matrix2D, iter int, converged bool) *CheckpointData {
	data := &CheckpointData{Iter: iter, Converged: converged}
	if len(motifs) == 0 {
		return data
	}
	nrow, ncol := motifs[0].Dims()
	data.NBase = nrow
	data.Width = ncol
	data.Motifs = make([][]float64, len(motifs))
	for k, m := range motifs {
		flat := make([]float64, nrow*ncol)
		for i := 0; i < nrow; i++ {
			for j := 0; j < ncol; j++ {
				flat[i*ncol+j] = m.At(i, j)
			}
		}
		data.Motifs[k] = flat
	}
	return data
}

// Motifs2D reconstructs the motif matrices stored in a CheckpointData, for
// use with emclass.NewWarmStart.
func (d *CheckpointData) Motifs2D() []*tensor.Matrix2D {
	out := make([]*tensor.Matrix2D, len(d.Motifs))
	for k, flat := range d.Motifs {
		m := tensor.NewMatrix2D(d.NBase, d.Width, 0)
		for i := 0; i < d.NBase; i++ {
			for j := 0; j < d.Width; j++ {
				m.Set(i, j, flat[i*d.Width+j])
			}
		}
		out[k] = m
	}
	return out
}

// CheckpointIO saves and reloads CheckpointData in a bbolt database and
// tracks a minimum interval between saves. Save itself always writes;
// callers consult Old to throttle how often they call it.
type CheckpointIO struct {
	db      *bolt.DB
	key     []byte
	last    time.Time
	seconds float64
}

// NewCheckpointIO creates a new CheckpointIO writing under key, whose Old
// reports true once more than seconds have passed since the last Save
// (with 0, Old is always true).
func NewCheckpointIO(db *bolt.DB, key []byte, seconds float64) *CheckpointIO {
	return &CheckpointIO{db: db, key: key, seconds: seconds}
}

// Save serializes data and writes it to the database.
func (s *CheckpointIO) Save(data *CheckpointData) error {
	s.SetNow()
	dataB, err := json.Marshal(data)
	if err != nil {
		log.Error("error serializing checkpoint", err)
		return err
	}
	if err := SaveData(s.db, s.key, dataB); err != nil {
		log.Error("error saving checkpoint", err)
		return err
	}
	return nil
}

// Load reads back the most recently saved CheckpointData, or returns
// (nil, nil) if none exists yet.
func (s *CheckpointIO) Load() (*CheckpointData, error) {
	b, err := LoadData(s.db, s.key)
	if err != nil || b == nil {
		return nil, err
	}

	var data CheckpointData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	if len(data.Motifs) == 0 {
		return nil, nil
	}

	if data.Converged {
		log.Noticef("found converged checkpoint (iter=%d)", data.Iter)
	} else {
		log.Noticef("found unfinished checkpoint (iter=%d)", data.Iter)
	}
	return &data, nil
}

// Old reports whether the minimum save interval has elapsed since the
// last Save.
func (s *CheckpointIO) Old() bool {
	return time.Since(s.last).Seconds() > s.seconds
}

// SetNow resets the last-save timer to now.
func (s *CheckpointIO) SetNow() {
	s.last = time.Now()
}

// SaveData writes data under key in db's MAIN bucket. A nil db is a
// no-op, for callers that run without checkpointing enabled.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData reads the value stored under key in db's MAIN bucket. A nil
// db, or a missing bucket or key, returns (nil, nil).
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	if db == nil {
		return nil, nil
	}
	var data []byte
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}
		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
