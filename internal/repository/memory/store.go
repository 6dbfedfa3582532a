// Package memory keeps every repository in process memory. It backs the
// service and API tests and the "memory" database driver used for local
// development. Transactions are serialized against every other operation
// and roll back by restoring a snapshot taken when they start.
package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"bytes"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type state struct {
	profiles  map[string]domain.Profile
	programs  map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutProgram
	days      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutDay
	logs      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutLog
	records   map[primitive.ObjectID]domain.PersonalRecord
	exercises map[primitive.ObjectID]domain.Exercise
	media     map[primitive.ObjectID]domain.Media
	foodLogs  map[primitive.ObjectID]domain.FoodLog
}

func newState() *state {
	s := &state{
		profiles:  map[string]domain.Profile{},
		programs:  map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutProgram{},
		days:      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutDay{},
		logs:      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutLog{},
		records:   map[primitive.ObjectID]domain.PersonalRecord{},
		exercises: map[primitive.ObjectID]domain.Exercise{},
		media:     map[primitive.ObjectID]domain.Media{},
		foodLogs:  map[primitive.ObjectID]domain.FoodLog{},
	}
	for _, kind := range domain.ProgramKinds {
		s.programs[kind] = map[primitive.ObjectID]domain.WorkoutProgram{}
		s.days[kind] = map[primitive.ObjectID]domain.WorkoutDay{}
		s.logs[kind] = map[primitive.ObjectID]domain.WorkoutLog{}
	}
	return s
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// clone copies every table. Stored values are never mutated in place, so a
// shallow copy of each map is a consistent snapshot.
func (s *state) clone() *state {
	c := &state{
		profiles:  copyMap(s.profiles),
		programs:  map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutProgram{},
		days:      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutDay{},
		logs:      map[domain.ProgramKind]map[primitive.ObjectID]domain.WorkoutLog{},
		records:   copyMap(s.records),
		exercises: copyMap(s.exercises),
		media:     copyMap(s.media),
		foodLogs:  copyMap(s.foodLogs),
	}
	for _, kind := range domain.ProgramKinds {
		c.programs[kind] = copyMap(s.programs[kind])
		c.days[kind] = copyMap(s.days[kind])
		c.logs[kind] = copyMap(s.logs[kind])
	}
	return c
}

// DB is the shared in-memory database behind every repository of a Store.
// txMu is held for the whole of a transaction; operations outside one take
// it too, so a rollback never discards writes it did not make.
type DB struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state *state
}

func NewDB() *DB {
	return &DB{state: newState()}
}

type txKey struct{}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// lock takes db.mu, first waiting for any running transaction unless ctx
// belongs to it.
func (db *DB) lock(ctx context.Context) func() {
	if inTransaction(ctx) {
		db.mu.Lock()
		return db.mu.Unlock
	}
	db.txMu.Lock()
	db.mu.Lock()
	return func() {
		db.mu.Unlock()
		db.txMu.Unlock()
	}
}

func (db *DB) read(ctx context.Context, fn func(s *state)) {
	defer db.lock(ctx)()
	fn(db.state)
}

func (db *DB) write(ctx context.Context, fn func(s *state) error) error {
	defer db.lock(ctx)()
	return fn(db.state)
}

// WithTransaction implements repository.Transactor.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	snapshot := db.state.clone()
	db.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		db.mu.Lock()
		db.state = snapshot
		db.mu.Unlock()
		return err
	}
	return nil
}

// NewStore wires every in-memory repository against a fresh DB.
func NewStore() repository.Store {
	return NewStoreWithDB(NewDB())
}

func NewStoreWithDB(db *DB) repository.Store {
	return repository.Store{
		Tx:              db,
		Profiles:        &profileRepository{db: db},
		Programs:        &programRepository{db: db},
		WorkoutDays:     &workoutDayRepository{db: db},
		WorkoutLogs:     &workoutLogRepository{db: db},
		PersonalRecords: &personalRecordRepository{db: db},
		Exercises:       &exerciseRepository{db: db},
		Media:           &mediaRepository{db: db},
		FoodLogs:        &foodLogRepository{db: db},
	}
}

func lessID(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
