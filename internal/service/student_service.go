package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/query"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/response"
	"github.com/stemsi/roster/internal/validator"
	"github.com/stemsi/roster/internal/view"
)

// StudentService handles roster business logic: every action validates the
// raw field text, builds a statement, executes it and, after a successful
// mutation, refreshes the rows using the last sort or search the user chose.
//
// StudentService is not safe for concurrent use. Serving several callers
// would need a mutex around each method or one service per connection.
type StudentService struct {
	repo    *repository.StudentRepository
	builder *query.Builder
	tracker *view.Tracker
	log     zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo *repository.StudentRepository, builder *query.Builder, tracker *view.Tracker, log zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, builder: builder, tracker: tracker, log: log}
}

// CurrentView returns the view that refreshes render.
func (s *StudentService) CurrentView() model.ViewSpec {
	return s.tracker.Current()
}

// Insert adds a record. An empty grade is stored as 0.
func (s *StudentService) Insert(ctx context.Context, in model.StudentInput) *response.Response {
	rec, err := validateRecord(in)
	if err != nil {
		return s.fail("insert", err)
	}

	if err := s.repo.Insert(ctx, s.builder.Insert(rec)); err != nil {
		return s.fail("insert", err)
	}

	s.log.Info().Str("op", "insert").Int64("id", rec.ID).Msg("Student inserted")
	return s.refreshed(ctx, "insert", 1)
}

// Update changes the name and/or grade of an existing record. An empty name
// or grade field means "leave unchanged"; a non-empty grade must be valid.
func (s *StudentService) Update(ctx context.Context, in model.StudentInput) *response.Response {
	id, err := validator.ValidateID(in.ID)
	if err != nil {
		return s.fail("update", err)
	}

	var (
		name  *string
		grade *float64
	)
	if n, err := validator.ValidateName(in.Name); err == nil {
		name = &n
	}
	if strings.TrimSpace(in.Grade) != "" {
		g, err := validator.ValidateGrade(in.Grade, true)
		if err != nil {
			return s.fail("update", err)
		}
		grade = &g
	}

	st, err := s.builder.Update(id, name, grade)
	if err != nil {
		return s.fail("update", err)
	}

	n, err := s.repo.Update(ctx, st)
	if err != nil {
		return s.fail("update", err)
	}
	if n == 0 {
		return s.notFound("update", id)
	}

	s.log.Info().Str("op", "update").Int64("id", id).
		Bool("name", name != nil).Bool("grade", grade != nil).
		Msg("Student updated")
	return s.refreshed(ctx, "update", n)
}

// Delete removes the record with the given id.
func (s *StudentService) Delete(ctx context.Context, rawID string) *response.Response {
	id, err := validator.ValidateID(rawID)
	if err != nil {
		return s.fail("delete", err)
	}

	n, err := s.repo.Remove(ctx, s.builder.Delete(id))
	if err != nil {
		return s.fail("delete", err)
	}
	if n == 0 {
		return s.notFound("delete", id)
	}

	s.log.Info().Str("op", "delete").Int64("id", id).Msg("Student deleted")
	return s.refreshed(ctx, "delete", n)
}

// Search shows the record with the given id. Finding nothing is reported as
// not-found rather than an error, and the search still becomes the view.
func (s *StudentService) Search(ctx context.Context, rawID string) *response.Response {
	id, err := validator.ValidateID(rawID)
	if err != nil {
		return s.fail("search", err)
	}

	rows, err := repository.Collect(s.repo.Query(ctx, s.builder.SearchByID(id)))
	if err != nil {
		return s.fail("search", err)
	}
	s.tracker.RecordViewed(model.SearchView(id))

	if len(rows) == 0 {
		r := s.notFound("search", id)
		r.Data = rows
		return r
	}
	r := response.Success(rows, 0)
	r.View = s.tracker.Current()
	return r
}

// Sort shows every record ordered by the selected field and direction.
func (s *StudentService) Sort(ctx context.Context, rawField, rawDirection string) *response.Response {
	field, err := validator.ValidateSortField(rawField)
	if err != nil {
		return s.fail("sort", err)
	}
	dir, err := validator.ValidateSortDirection(rawDirection)
	if err != nil {
		return s.fail("sort", err)
	}

	spec := model.SortSpec{Field: field, Direction: dir}
	st, err := s.builder.Sort(spec)
	if err != nil {
		return s.fail("sort", err)
	}

	rows, err := repository.Collect(s.repo.Query(ctx, st))
	if err != nil {
		return s.fail("sort", err)
	}
	s.tracker.RecordViewed(model.SortView(spec))

	s.log.Debug().Str("op", "sort").Str("view", s.tracker.Current().String()).Msg("View changed")
	r := response.Success(rows, 0)
	r.View = s.tracker.Current()
	return r
}

// Refresh re-runs the current view.
func (s *StudentService) Refresh(ctx context.Context) *response.Response {
	rows, err := s.viewRows(ctx)
	if err != nil {
		return s.fail("refresh", err)
	}
	r := response.Success(rows, 0)
	r.View = s.tracker.Current()
	return r
}

// refreshed builds the success response of a mutation. The mutation has
// already been applied, so a failing refresh is reported in Detail only.
func (s *StudentService) refreshed(ctx context.Context, op string, affected int64) *response.Response {
	rows, err := s.viewRows(ctx)
	r := response.Success(rows, affected)
	r.View = s.tracker.Current()
	if err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("Refresh after mutation failed")
		r.Data = nil
		r.Detail = err.Error()
	}
	return r
}

func (s *StudentService) viewRows(ctx context.Context) ([]model.StudentRecord, error) {
	st, err := s.builder.ForView(s.tracker.Current())
	if err != nil {
		return nil, err
	}
	return repository.Collect(s.repo.Query(ctx, st))
}

func (s *StudentService) notFound(op string, id int64) *response.Response {
	s.log.Info().Str("op", op).Int64("id", id).Msg("No matching student")
	r := response.Info(response.StatusNotFound, fmt.Sprintf("No record with id %d.", id))
	r.View = s.tracker.Current()
	return r
}

func (s *StudentService) fail(op string, err error) *response.Response {
	r := response.FromError(err)
	r.View = s.tracker.Current()

	ev := s.log.Warn()
	if r.Status == response.StatusStoreError {
		ev = s.log.Error()
	}
	ev.Err(err).
		Str("op", op).
		Str("status", string(r.Status)).
		Str("operation_id", r.Metadata.OperationID).
		Msg("Student operation failed")
	return r
}

func validateRecord(in model.StudentInput) (model.StudentRecord, error) {
	id, err := validator.ValidateID(in.ID)
	if err != nil {
		return model.StudentRecord{}, err
	}
	name, err := validator.ValidateName(in.Name)
	if err != nil {
		return model.StudentRecord{}, err
	}
	grade, err := validator.ValidateGrade(in.Grade, false)
	if err != nil {
		return model.StudentRecord{}, err
	}
	return model.StudentRecord{ID: id, Name: name, Grade: grade}, nil
}
