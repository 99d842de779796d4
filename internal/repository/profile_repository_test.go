package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/testutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfile(t *testing.T, repo *ProfileRepository, email string, skillNames ...string) *models.Profile {
	t.Helper()
	ctx := context.Background()

	found, err := repo.GetOrCreateSkills(ctx, skillNames)
	require.NoError(t, err)
	ids := make([]uuid.UUID, len(found))
	for i, s := range found {
		ids[i] = s.ID
	}

	p := &models.Profile{Name: "P " + email, Email: email, Projects: []models.Project{{Title: "first"}, {Title: "second"}}}
	require.NoError(t, repo.CreateProfile(ctx, p, ids))
	return p
}

func TestGetOrCreateSkillIsIdempotent(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	ctx := context.Background()

	first, err := repo.GetOrCreateSkill(ctx, "python")
	require.NoError(t, err)
	second, err := repo.GetOrCreateSkill(ctx, "python")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

// The test pool holds a single connection, so these callers are serialized:
// this checks that many callers agree on one row, not the insert race itself.
// TestGetOrCreateSkillRereadsAfterLosingInsert drives the race path.
func TestGetOrCreateSkillManyCallers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)

	const workers = 8
	ids := make([]uuid.UUID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			skill, err := repo.GetOrCreateSkill(context.Background(), "docker")
			if assert.NoError(t, err) {
				ids[i] = skill.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
	var n int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestGetOrCreateSkillRereadsAfterLosingInsert(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	// Another writer commits "rust" right after our lookup misses, so the
	// insert that follows hits the unique index.
	winner := uuid.New()
	inserted := false
	err := db.Callback().Query().After("gorm:query").Register("test:concurrent_skill_insert", func(tx *gorm.DB) {
		if inserted || tx.Statement.Table != "skills" || !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return
		}
		inserted = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO skills (id, name) VALUES (?, ?)", winner.String(), "rust")
		require.NoError(t, err)
	})
	require.NoError(t, err)

	err = repo.Transaction(ctx, func(tx *ProfileRepository) error {
		got, err := tx.GetOrCreateSkill(ctx, "rust")
		if err != nil {
			return err
		}
		assert.Equal(t, winner, got.ID)
		assert.Equal(t, "rust", got.Name)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	var n int64
	require.NoError(t, db.Model(&models.Skill{}).Where("name = ?", "rust").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestGetOrCreateSkillRecoversFromLostRace(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx *ProfileRepository) error {
		existing := models.Skill{Name: "sql"}
		require.NoError(t, tx.db.Create(&existing).Error)

		// A second insert of the same name fails inside the savepoint only;
		// the surrounding transaction must stay usable.
		dup := models.Skill{Name: "sql"}
		err := tx.db.Transaction(func(sp *gorm.DB) error { return sp.Create(&dup).Error })
		require.True(t, IsUniqueViolation(err))

		got, err := tx.GetOrCreateSkill(ctx, "sql")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	seedProfile(t, repo, "a@x.com")

	err := repo.CreateProfile(context.Background(), &models.Profile{Name: "B", Email: "a@x.com"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestFindByIDLoadsOrderedAssociations(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	p := seedProfile(t, repo, "a@x.com", "sql", "docker", "python")

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "python", "sql"}, got.SkillNames())
	assert.Equal(t, []string{"first", "second"}, got.ProjectTitles())
	assert.Equal(t, 1, got.Projects[1].Position)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFieldsMissingProfile(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))

	err := repo.UpdateFields(context.Background(), uuid.New(), map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceProjectsAndSkills(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	p := seedProfile(t, repo, "a@x.com", "python")

	require.NoError(t, repo.ReplaceProjects(ctx, p.ID, []models.Project{{Title: "only"}}))
	rust, err := repo.GetOrCreateSkill(ctx, "rust")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceSkills(ctx, p.ID, []uuid.UUID{rust.ID}))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got.ProjectTitles())
	assert.Equal(t, []string{"rust"}, got.SkillNames())

	// The old skill row stays behind as an orphan.
	var n int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestListReturnsTotalAndDisjointPages(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	for i := 0; i < 5; i++ {
		seedProfile(t, repo, fmt.Sprintf("p%d@x.com", i))
	}
	ctx := context.Background()

	first, total, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, first, 3)

	rest, _, err := repo.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	again, _, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].ID, again[i].ID)
	}
	for _, a := range first {
		for _, b := range rest {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}
}

func TestSearchBySkillTerms(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	ctx := context.Background()
	a := seedProfile(t, repo, "a@x.com", "machine learning", "deep learning")
	b := seedProfile(t, repo, "b@x.com", "c_plus")
	seedProfile(t, repo, "c@x.com", "cxplus")

	got, err := repo.SearchBySkillTerms(ctx, []string{"LEARNING"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, []string{"deep learning", "machine learning"}, got[0].SkillNames())

	got, err = repo.SearchBySkillTerms(ctx, []string{"c_plus"})
	require.NoError(t, err)
	require.Len(t, got, 1, "underscore must match literally")
	assert.Equal(t, b.ID, got[0].ID)

	got, err = repo.SearchBySkillTerms(ctx, []string{"nothing", "learning", "plus"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.SearchBySkillTerms(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}
