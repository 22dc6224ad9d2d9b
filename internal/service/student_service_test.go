package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/database"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/query"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/response"
	"github.com/stemsi/roster/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*StudentService, *database.DB) {
	t.Helper()
	ctx := context.Background()
	cfg := &config.Config{DatabaseURL: filepath.Join(t.TempDir(), "roster.db")}
	db, err := database.Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.EnsureSchema(ctx, db)
	require.NoError(t, err)

	svc := NewStudentService(
		repository.NewStudentRepository(db),
		query.NewBuilder(db.Dialect),
		view.NewTracker(),
		zerolog.Nop(),
	)
	return svc, db
}

func mustInsert(t *testing.T, svc *StudentService, id, name, grade string) {
	t.Helper()
	r := svc.Insert(context.Background(), model.StudentInput{ID: id, Name: name, Grade: grade})
	require.True(t, r.OK(), "insert %s: %s %s", id, r.Status, r.Detail)
}

func ids(rows []model.StudentRecord) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestInvalidIDNeverTouchesStore(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	// A closed store turns any access into STORE_ERROR.
	require.NoError(t, db.Close())

	for _, raw := range []string{"0", "-1", "abc", "", "1.5"} {
		assert.Equal(t, response.StatusValidationFailed,
			svc.Insert(ctx, model.StudentInput{ID: raw, Name: "Alice", Grade: "90"}).Status, raw)
		assert.Equal(t, response.StatusValidationFailed,
			svc.Update(ctx, model.StudentInput{ID: raw, Name: "Alice"}).Status, raw)
		assert.Equal(t, response.StatusValidationFailed, svc.Delete(ctx, raw).Status, raw)
		assert.Equal(t, response.StatusValidationFailed, svc.Search(ctx, raw).Status, raw)
	}
}

func TestGradeBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, g := range []string{"-1", "100.01", "250", "ten"} {
		r := svc.Insert(ctx, model.StudentInput{ID: "1", Name: "Alice", Grade: g})
		assert.Equal(t, response.StatusValidationFailed, r.Status, g)
		assert.Contains(t, r.Fields, "grade")
	}

	mustInsert(t, svc, "1", "Alice", "")
	r := svc.Search(ctx, "1")
	require.True(t, r.OK())
	assert.Equal(t, []model.StudentRecord{{ID: 1, Name: "Alice", Grade: 0}}, r.Data)

	r = svc.Update(ctx, model.StudentInput{ID: "1", Grade: "101"})
	assert.Equal(t, response.StatusValidationFailed, r.Status)
}

func TestInsertThenSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	mustInsert(t, svc, "5", "  Alice ", "90")
	mustInsert(t, svc, "8", "Zed", "40")

	r := svc.Search(ctx, "5")
	require.True(t, r.OK())
	assert.Equal(t, []model.StudentRecord{{ID: 5, Name: "Alice", Grade: 90}}, r.Data)
	assert.Equal(t, model.SearchView(5), r.View)
}

func TestRoundTripExactGrade(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	mustInsert(t, svc, "12", "Grace Hopper", "87.625")
	r := svc.Search(ctx, "12")
	require.Len(t, r.Data, 1)
	assert.Equal(t, model.StudentRecord{ID: 12, Name: "Grace Hopper", Grade: 87.625}, r.Data[0])
}

func TestMutationRefreshKeepsLastSort(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	mustInsert(t, svc, "1", "Alice", "70")
	mustInsert(t, svc, "2", "Carol", "95")

	r := svc.Sort(ctx, "grade", "descending")
	require.True(t, r.OK())
	assert.Equal(t, []int64{2, 1}, ids(r.Data))

	r = svc.Insert(ctx, model.StudentInput{ID: "6", Name: "Bob", Grade: "50"})
	require.True(t, r.OK())
	assert.EqualValues(t, 1, r.Affected)
	assert.Equal(t, []int64{2, 1, 6}, ids(r.Data))
	assert.Equal(t, model.ViewSort, r.View.Kind)

	r = svc.Update(ctx, model.StudentInput{ID: "6", Grade: "99"})
	require.True(t, r.OK())
	assert.Equal(t, []int64{6, 2, 1}, ids(r.Data))

	r = svc.Delete(ctx, "2")
	require.True(t, r.OK())
	assert.Equal(t, []int64{6, 1}, ids(r.Data))
}

func TestMutationRefreshKeepsLastSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	mustInsert(t, svc, "1", "Alice", "70")

	require.True(t, svc.Search(ctx, "1").OK())

	r := svc.Insert(ctx, model.StudentInput{ID: "2", Name: "Bob", Grade: "80"})
	require.True(t, r.OK())
	assert.Equal(t, []int64{1}, ids(r.Data))
}

func TestDefaultViewShowsEverything(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	r := svc.Refresh(ctx)
	require.True(t, r.OK())
	assert.NotNil(t, r.Data)
	assert.Empty(t, r.Data)

	mustInsert(t, svc, "3", "Carol", "10")
	r = svc.Insert(ctx, model.StudentInput{ID: "1", Name: "Alice", Grade: "20"})
	require.True(t, r.OK())
	assert.ElementsMatch(t, []int64{1, 3}, ids(r.Data))
	assert.Equal(t, model.DefaultView(), svc.CurrentView())
}

func TestUpdateNothingToUpdate(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	require.NoError(t, db.Close())

	r := svc.Update(ctx, model.StudentInput{ID: "7"})
	assert.Equal(t, response.StatusNothingToUpdate, r.Status)
	assert.Zero(t, r.Affected)

	r = svc.Update(ctx, model.StudentInput{ID: "7", Name: "   ", Grade: " "})
	assert.Equal(t, response.StatusNothingToUpdate, r.Status)
}

func TestUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	mustInsert(t, svc, "4", "Dan", "60")

	r := svc.Update(ctx, model.StudentInput{ID: "4", Name: "Daniel"})
	require.True(t, r.OK())
	assert.Equal(t, []model.StudentRecord{{ID: 4, Name: "Daniel", Grade: 60}}, r.Data)

	r = svc.Update(ctx, model.StudentInput{ID: "4", Grade: "61.5"})
	require.True(t, r.OK())
	assert.Equal(t, []model.StudentRecord{{ID: 4, Name: "Daniel", Grade: 61.5}}, r.Data)
}

func TestNotFoundIsInformational(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	mustInsert(t, svc, "1", "Alice", "70")

	r := svc.Delete(ctx, "404")
	assert.Equal(t, response.StatusNotFound, r.Status)
	assert.Equal(t, response.SeverityInfo, r.Status.Severity())
	assert.Zero(t, r.Affected)
	assert.Nil(t, r.Data)

	r = svc.Update(ctx, model.StudentInput{ID: "404", Name: "Nobody"})
	assert.Equal(t, response.StatusNotFound, r.Status)

	r = svc.Search(ctx, "404")
	assert.Equal(t, response.StatusNotFound, r.Status)
	assert.Empty(t, r.Data)
	assert.Equal(t, model.SearchView(404), svc.CurrentView())
}

func TestDuplicateID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	mustInsert(t, svc, "5", "Alice", "90")

	r := svc.Insert(ctx, model.StudentInput{ID: "5", Name: "Mallory", Grade: "1"})
	assert.Equal(t, response.StatusDuplicateID, r.Status)

	r = svc.Search(ctx, "5")
	require.Len(t, r.Data, 1)
	assert.Equal(t, "Alice", r.Data[0].Name)
}

func TestSortValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	r := svc.Sort(ctx, "name", "ascending")
	assert.Equal(t, response.StatusValidationFailed, r.Status)
	r = svc.Sort(ctx, "id", "upwards")
	assert.Equal(t, response.StatusValidationFailed, r.Status)
	assert.Equal(t, model.DefaultView(), svc.CurrentView())

	r = svc.Sort(ctx, "ID", "Descending")
	require.True(t, r.OK())
	assert.Equal(t, model.SortView(model.SortSpec{Field: model.SortByID, Direction: model.Descending}), svc.CurrentView())
}

func TestFailedSortKeepsPreviousView(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	require.True(t, svc.Sort(ctx, "grade", "asc").OK())
	before := svc.CurrentView()

	require.NoError(t, db.Close())
	r := svc.Sort(ctx, "id", "desc")
	assert.Equal(t, response.StatusStoreError, r.Status)
	assert.NotEmpty(t, r.Detail)
	assert.Equal(t, before, svc.CurrentView())

	// The service stays usable: validation still answers without the store.
	assert.Equal(t, response.StatusValidationFailed, svc.Delete(ctx, "x").Status)
}
