package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/candidate-tracker/internal/domain"
)

func sampleFields(name, email string) domain.CandidateFields {
	return domain.CandidateFields{
		Name:             name,
		Email:            email,
		Phone:            "11999998888",
		Area:             domain.AreaTechnology,
		Status:           domain.CandidateStatusNew,
		RegistrationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCandidateRepository_CreateThenGet(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	fields := sampleFields("Ana Silva", "ana@x.com")

	created, err := repo.Create(ctx, fields)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, fields, got.CandidateFields)
	assert.Equal(t, created.ID, got.ID)
}

func TestCandidateRepository_CreateAssignsUniqueIDs(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		c, err := repo.Create(ctx, sampleFields("Candidate", "dup@x.com"))
		require.NoError(t, err)
		_, dup := seen[c.ID]
		assert.False(t, dup)
		seen[c.ID] = struct{}{}
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestCandidateRepository_CreateRetriesOnIDCollision(t *testing.T) {
	repo := NewCandidateRepository().(*candidateRepository)
	ids := []string{"a", "a", "b"}
	repo.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleFields("First", "f@x.com"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleFields("Second", "s@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestCandidateRepository_UpdateKeepsID(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	created, err := repo.Create(ctx, sampleFields("Ana Silva", "ana@x.com"))
	require.NoError(t, err)

	next := domain.CandidateFields{
		Name:             "Ana Souza",
		Email:            "ana.souza@x.com",
		Phone:            "21988887777",
		Area:             domain.AreaMarketing,
		Status:           domain.CandidateStatusApproved,
		RegistrationDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	updated, err := repo.Update(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, next, got.CandidateFields)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestCandidateRepository_UpdateMissing(t *testing.T) {
	repo := NewCandidateRepository()
	before := repo.Revision()

	_, err := repo.Update(context.Background(), "missing", sampleFields("Ana Silva", "ana@x.com"))
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	assert.Equal(t, before, repo.Revision())
}

func TestCandidateRepository_DeleteRemovesOnlyTarget(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	a, _ := repo.Create(ctx, sampleFields("Ana", "a@x.com"))
	b, _ := repo.Create(ctx, sampleFields("Bruno", "b@x.com"))
	c, _ := repo.Create(ctx, sampleFields("Carla", "c@x.com"))

	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla", got.Name)
}

func TestCandidateRepository_DeleteMissing(t *testing.T) {
	repo := NewCandidateRepository()
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrCandidateNotFound)
}

func TestCandidateRepository_ListIsSnapshot(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	created, _ := repo.Create(ctx, sampleFields("Ana", "a@x.com"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Name = "changed"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestCandidateRepository_RevisionTracksMutations(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	assert.Equal(t, uint64(0), repo.Revision())

	c, _ := repo.Create(ctx, sampleFields("Ana", "a@x.com"))
	assert.Equal(t, uint64(1), repo.Revision())
	_, _ = repo.Update(ctx, c.ID, sampleFields("Ana Maria", "a@x.com"))
	assert.Equal(t, uint64(2), repo.Revision())
	_ = repo.Delete(ctx, c.ID)
	assert.Equal(t, uint64(3), repo.Revision())
}

func TestCandidateRepository_CanceledContext(t *testing.T) {
	repo := NewCandidateRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, sampleFields("Ana", "a@x.com"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCandidateRepository_SnapshotMatchesRevision(t *testing.T) {
	repo := NewCandidateRepository()
	ctx := context.Background()
	_, _ = repo.Create(ctx, sampleFields("Ana", "a@x.com"))
	_, _ = repo.Create(ctx, sampleFields("Bruno", "b@x.com"))

	records, version, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, repo.Revision(), version.Revision)
	assert.NotEmpty(t, version.Epoch)
}

func TestCandidateRepository_EpochIsPerInstance(t *testing.T) {
	ctx := context.Background()
	first := NewCandidateRepository()
	second := NewCandidateRepository()

	_, v1, err := first.Snapshot(ctx)
	require.NoError(t, err)
	_, v2, err := second.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1.Revision, v2.Revision)
	assert.NotEqual(t, v1.Epoch, v2.Epoch)

	_, _ = first.Create(ctx, sampleFields("Ana", "a@x.com"))
	_, after, err := first.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1.Epoch, after.Epoch)
}
