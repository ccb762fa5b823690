package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentdesk/candidate-tracker/internal/domain"
)

// ErrCandidateNotFound is returned when no record matches the requested id.
var ErrCandidateNotFound = errors.New("candidate not found")

// Version identifies one state of one collection. Epoch is fresh per
// collection instance, so versions from different processes never collide.
type Version struct {
	Epoch    string
	Revision uint64
}

// CandidateRepository encapsulates the candidate collection.
type CandidateRepository interface {
	Create(ctx context.Context, fields domain.CandidateFields) (*domain.Candidate, error)
	Update(ctx context.Context, id string, fields domain.CandidateFields) (*domain.Candidate, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	Snapshot(ctx context.Context) ([]domain.Candidate, Version, error)
	Revision() uint64
}

type candidateRepository struct {
	mu       sync.RWMutex
	epoch    string
	records  []domain.Candidate
	index    map[string]int
	revision uint64
	newID    func() string
	now      func() time.Time
}

// NewCandidateRepository returns an empty in-memory collection that lives as long as the process.
func NewCandidateRepository() CandidateRepository {
	return &candidateRepository{
		epoch: uuid.NewString(),
		index: make(map[string]int),
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

func (r *candidateRepository) Create(ctx context.Context, fields domain.CandidateFields) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, taken := r.index[id]; !taken {
			break
		}
		id = r.newID()
	}

	now := r.now().UTC()
	candidate := domain.Candidate{
		ID:              id,
		CandidateFields: fields,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.index[id] = len(r.records)
	r.records = append(r.records, candidate)
	r.revision++
	return &candidate, nil
}

func (r *candidateRepository) Update(ctx context.Context, id string, fields domain.CandidateFields) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, ErrCandidateNotFound
	}
	r.records[pos].CandidateFields = fields
	r.records[pos].UpdatedAt = r.now().UTC()
	r.revision++
	updated := r.records[pos]
	return &updated, nil
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return ErrCandidateNotFound
	}
	r.records = append(r.records[:pos], r.records[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.records); i++ {
		r.index[r.records[i].ID] = i
	}
	r.revision++
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, ErrCandidateNotFound
	}
	candidate := r.records[pos]
	return &candidate, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Candidate, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Snapshot returns the records together with the version they were read at.
func (r *candidateRepository) Snapshot(ctx context.Context) ([]domain.Candidate, Version, error) {
	if err := ctx.Err(); err != nil {
		return nil, Version{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Candidate, len(r.records))
	copy(out, r.records)
	return out, Version{Epoch: r.epoch, Revision: r.revision}, nil
}

// Revision increases on every successful mutation.
func (r *candidateRepository) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}
