package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentdesk/candidate-tracker/internal/cache"
	"github.com/talentdesk/candidate-tracker/internal/domain"
	"github.com/talentdesk/candidate-tracker/internal/events"
	"github.com/talentdesk/candidate-tracker/internal/repository"
	"github.com/talentdesk/candidate-tracker/internal/validation"
	"github.com/talentdesk/candidate-tracker/internal/view"
	apperrors "github.com/talentdesk/candidate-tracker/pkg/util/errorutil"
)

// ProjectionCache memoizes projected id sequences.
type ProjectionCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, ids []string)
}

// CandidateService coordinates the validator, the record store and event fan-out.
type CandidateService struct {
	candidates  repository.CandidateRepository
	validator   *validation.Validator
	dispatcher  events.Dispatcher
	cache       ProjectionCache
	uniqueEmail bool
	logger      *zap.Logger
}

// CandidateDependencies bundles collaborators for the candidate service.
type CandidateDependencies struct {
	CandidateRepo repository.CandidateRepository
	Validator     *validation.Validator
	Dispatcher    events.Dispatcher
	Cache         ProjectionCache
	UniqueEmail   bool
	Logger        *zap.Logger
}

// CandidateList is a projection plus the size of the whole collection.
type CandidateList struct {
	Items []domain.Candidate
	Total int
}

// Meta describes the fixed enumerations the forms and filters offer.
type Meta struct {
	Areas      []domain.Area
	Statuses   []domain.CandidateStatus
	SortFields []view.SortField
}

// NewCandidateService constructs the service.
func NewCandidateService(deps CandidateDependencies) *CandidateService {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateService{
		candidates:  deps.CandidateRepo,
		validator:   v,
		dispatcher:  deps.Dispatcher,
		cache:       deps.Cache,
		uniqueEmail: deps.UniqueEmail,
		logger:      logger,
	}
}

// Create validates form and stores a new candidate. An empty status becomes the first pipeline stage.
func (s *CandidateService) Create(ctx context.Context, form validation.CandidateForm) (*domain.Candidate, error) {
	rules, err := s.rules(ctx, "")
	if err != nil {
		return nil, err
	}
	res := s.validator.Validate(form, rules...)
	if !res.Valid() {
		return nil, apperrors.NewValidationError("invalid candidate", res.Errors.Details())
	}
	fields := res.Fields
	if fields.Status == "" {
		fields.Status = domain.DefaultCandidateStatus()
	}

	candidate, err := s.candidates.Create(ctx, fields)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventCandidateCreated,
		CandidateID: candidate.ID,
		Payload: events.CandidateCreatedPayload{
			Name:   candidate.Name,
			Area:   candidate.Area,
			Status: candidate.Status,
		},
	})
	return candidate, nil
}

// Update replaces every field of the candidate with id. An empty status keeps the current one.
func (s *CandidateService) Update(ctx context.Context, id string, form validation.CandidateForm) (*domain.Candidate, error) {
	current, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	rules, err := s.rules(ctx, current.Email)
	if err != nil {
		return nil, err
	}
	res := s.validator.Validate(form, rules...)
	if !res.Valid() {
		return nil, apperrors.NewValidationError("invalid candidate", res.Errors.Details())
	}
	fields := res.Fields
	if fields.Status == "" {
		fields.Status = current.Status
	}

	updated, err := s.candidates.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventCandidateUpdated,
		CandidateID: id,
		Payload: events.CandidateUpdatedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
			OldArea:   current.Area,
			NewArea:   updated.Area,
		},
	})
	return updated, nil
}

// Delete removes the candidate with id.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	current, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}
	if err := s.candidates.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventCandidateDeleted,
		CandidateID: id,
		Payload:     events.CandidateDeletedPayload{Name: current.Name},
	})
	return nil
}

// Get returns the candidate with id.
func (s *CandidateService) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return candidate, nil
}

// List projects the collection through state.
func (s *CandidateService) List(ctx context.Context, state view.State) (CandidateList, error) {
	records, version, err := s.candidates.Snapshot(ctx)
	if err != nil {
		return CandidateList{}, apperrors.NewInternalError(err)
	}
	key := cache.ProjectionKey(version.Epoch, version.Revision, state.Key())

	if s.cache != nil {
		if ids, ok := s.cache.Get(ctx, key); ok {
			if items, ok := resolve(records, ids); ok {
				return CandidateList{Items: items, Total: len(records)}, nil
			}
		}
	}

	items := view.Project(records, state)
	if s.cache != nil {
		ids := make([]string, 0, len(items))
		for _, c := range items {
			ids = append(ids, c.ID)
		}
		s.cache.Set(ctx, key, ids)
	}
	return CandidateList{Items: items, Total: len(records)}, nil
}

// Meta returns the enumerations offered by the forms and filters.
func (s *CandidateService) Meta() Meta {
	return Meta{
		Areas:      append([]domain.Area(nil), domain.Areas...),
		Statuses:   append([]domain.CandidateStatus(nil), domain.CandidateStatuses...),
		SortFields: append([]view.SortField(nil), view.SortFields...),
	}
}

func (s *CandidateService) rules(ctx context.Context, currentEmail string) ([]validation.Rule, error) {
	if !s.uniqueEmail {
		return nil, nil
	}
	records, err := s.candidates.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	existing := make([]string, 0, len(records))
	for _, r := range records {
		existing = append(existing, r.Email)
	}
	return []validation.Rule{validation.UniqueEmail(existing, currentEmail)}, nil
}

func (s *CandidateService) mapRepoError(err error, id string) error {
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return apperrors.NewNotFound("candidate", map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}

func (s *CandidateService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func resolve(records []domain.Candidate, ids []string) ([]domain.Candidate, bool) {
	byID := make(map[string]domain.Candidate, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	out := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, false
		}
		out = append(out, r)
	}
	return out, true
}
