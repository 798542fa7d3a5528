package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/service"
	"github.com/mtlprog/taskdesk/internal/service/servicetest"
)

// TaskServiceTestSuite is the test suite for TaskService over an in-memory store.
type TaskServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *servicetest.MemoryStore
	service *service.TaskService
	now     time.Time
}

// SetupTest runs before each test.
func (s *TaskServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = servicetest.NewMemoryStore()
	s.store.Now = func() time.Time { return s.now }
	s.service = service.NewTaskService(s.store)
}

func statusPtr(status domain.TaskStatus) *domain.TaskStatus {
	return &status
}

func strPtr(v string) *string {
	return &v
}

// Helper: create creates a task and fails the test on error.
func (s *TaskServiceTestSuite) create(number, author string, status *domain.TaskStatus) *domain.Task {
	task, err := s.service.Create(s.ctx, service.CreateTaskParams{
		ComplaintNumber: number,
		CreatedBy:       author,
		Status:          status,
	})
	s.Require().NoError(err)
	return task
}

// TestCreate_Defaults covers the TASK001 scenario.
func (s *TaskServiceTestSuite) TestCreate_Defaults() {
	task := s.create("TASK001", "alice", nil)

	s.Equal(int64(1), task.ID)
	s.Equal("TASK001", task.ComplaintNumber)
	s.Nil(task.Remarks)
	s.Equal(domain.TaskStatusPending, task.Status)
	s.Equal("alice", task.CreatedBy)
	s.Equal(s.now, task.CreatedAt)
	s.Equal(task.CreatedAt, task.UpdatedAt)
}

// TestCreate_FreshIDs tests that every create gets a new id.
func (s *TaskServiceTestSuite) TestCreate_FreshIDs() {
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		task := s.create("C", "bob", nil)
		s.False(seen[task.ID], "id %d reused", task.ID)
		seen[task.ID] = true
	}
}

// TestCreate_WithStatusAndRemarks tests that supplied values are kept.
func (s *TaskServiceTestSuite) TestCreate_WithStatusAndRemarks() {
	task, err := s.service.Create(s.ctx, service.CreateTaskParams{
		ComplaintNumber: "TASK002",
		Remarks:         strPtr("leaking pipe"),
		Status:          statusPtr(domain.TaskStatusInProgress),
		CreatedBy:       "carol",
	})
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusInProgress, task.Status)
	s.Require().NotNil(task.Remarks)
	s.Equal("leaking pipe", *task.Remarks)
}

// TestCreate_ValidationErrors tests required fields and status membership.
func (s *TaskServiceTestSuite) TestCreate_ValidationErrors() {
	cases := []struct {
		name   string
		params service.CreateTaskParams
		field  string
	}{
		{"missing complaint number", service.CreateTaskParams{CreatedBy: "alice"}, service.FieldComplaintNumber},
		{"blank complaint number", service.CreateTaskParams{ComplaintNumber: "  ", CreatedBy: "alice"}, service.FieldComplaintNumber},
		{"missing author", service.CreateTaskParams{ComplaintNumber: "T1"}, service.FieldCreatedBy},
		{"unknown status", service.CreateTaskParams{ComplaintNumber: "T1", CreatedBy: "alice", Status: statusPtr("closed")}, service.FieldStatus},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Create(s.ctx, tc.params)
			s.ErrorIs(err, domain.ErrValidation)

			var verr *domain.ValidationError
			s.Require().True(errors.As(err, &verr))
			s.Equal(tc.field, verr.Field)
		})
	}
	s.Equal(0, s.store.Len())
}

// TestGet_NotFound tests missing and non-positive ids.
func (s *TaskServiceTestSuite) TestGet_NotFound() {
	for _, id := range []int64{0, -1, 999} {
		_, err := s.service.Get(s.ctx, id)
		s.ErrorIs(err, domain.ErrTaskNotFound, "id %d", id)
	}
}

// TestUpdate_Partial covers the resolve scenario: untouched fields stay, updated_at grows.
func (s *TaskServiceTestSuite) TestUpdate_Partial() {
	created := s.create("TASK001", "alice", nil)

	updated, err := s.service.Update(s.ctx, created.ID, domain.TaskPatch{
		Status: statusPtr(domain.TaskStatusResolved),
	})
	s.Require().NoError(err)

	s.Equal(created.ID, updated.ID)
	s.Equal("TASK001", updated.ComplaintNumber)
	s.Equal("alice", updated.CreatedBy)
	s.Nil(updated.Remarks)
	s.Equal(domain.TaskStatusResolved, updated.Status)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
}

// TestUpdate_UpdatedAtStrictlyIncreases tests repeated updates with a frozen clock.
func (s *TaskServiceTestSuite) TestUpdate_UpdatedAtStrictlyIncreases() {
	task := s.create("TASK001", "alice", nil)
	last := task.UpdatedAt

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusInProgress, domain.TaskStatusResolved, domain.TaskStatusPending,
	} {
		updated, err := s.service.Update(s.ctx, task.ID, domain.TaskPatch{Status: statusPtr(status)})
		s.Require().NoError(err)
		s.True(updated.UpdatedAt.After(last))
		s.Equal(status, updated.Status)
		last = updated.UpdatedAt
	}
}

// TestUpdate_RemarksSetAndClear tests the tri-state remarks slot.
func (s *TaskServiceTestSuite) TestUpdate_RemarksSetAndClear() {
	task := s.create("TASK001", "alice", nil)

	updated, err := s.service.Update(s.ctx, task.ID, domain.TaskPatch{
		Remarks: domain.OptionalString{Set: true, Value: strPtr("call back")},
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Remarks)
	s.Equal("call back", *updated.Remarks)

	cleared, err := s.service.Update(s.ctx, task.ID, domain.TaskPatch{
		Remarks: domain.OptionalString{Set: true},
	})
	s.Require().NoError(err)
	s.Nil(cleared.Remarks)
}

// TestUpdate_NotFound tests that a missing id creates nothing.
func (s *TaskServiceTestSuite) TestUpdate_NotFound() {
	_, err := s.service.Update(s.ctx, 999, domain.TaskPatch{Status: statusPtr(domain.TaskStatusResolved)})
	s.ErrorIs(err, domain.ErrTaskNotFound)
	s.Equal(0, s.store.Len())
}

// TestUpdate_Validation tests empty patches and invalid values.
func (s *TaskServiceTestSuite) TestUpdate_Validation() {
	task := s.create("TASK001", "alice", nil)

	_, err := s.service.Update(s.ctx, task.ID, domain.TaskPatch{})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.service.Update(s.ctx, task.ID, domain.TaskPatch{Status: statusPtr("archived")})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.service.Update(s.ctx, task.ID, domain.TaskPatch{ComplaintNumber: strPtr("")})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.service.Update(s.ctx, task.ID, domain.TaskPatch{CreatedBy: strPtr(" ")})
	s.ErrorIs(err, domain.ErrValidation)

	unchanged, err := s.service.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(task.UpdatedAt, unchanged.UpdatedAt)
}

// TestUpdate_ConcurrentDelete tests a row vanishing between the check and the write.
func (s *TaskServiceTestSuite) TestUpdate_ConcurrentDelete() {
	task := s.create("TASK001", "alice", nil)
	s.store.BeforeUpdate = func(taskID int64) {
		_, err := s.store.Delete(s.ctx, taskID)
		s.Require().NoError(err)
	}

	_, err := s.service.Update(s.ctx, task.ID, domain.TaskPatch{Status: statusPtr(domain.TaskStatusResolved)})
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

// TestDelete tests hard delete followed by get, and deleting twice.
func (s *TaskServiceTestSuite) TestDelete() {
	task := s.create("TASK001", "alice", nil)

	s.Require().NoError(s.service.Delete(s.ctx, task.ID))

	_, err := s.service.Get(s.ctx, task.ID)
	s.ErrorIs(err, domain.ErrTaskNotFound)

	s.ErrorIs(s.service.Delete(s.ctx, task.ID), domain.ErrTaskNotFound)
	s.ErrorIs(s.service.Delete(s.ctx, 12345), domain.ErrTaskNotFound)
}

// TestList_FilterByStatus covers the 3 pending / 2 resolved scenario.
func (s *TaskServiceTestSuite) TestList_FilterByStatus() {
	var pending []int64
	for i := 0; i < 5; i++ {
		if i%2 == 1 && i < 4 {
			s.create("R", "alice", statusPtr(domain.TaskStatusResolved))
			continue
		}
		pending = append(pending, s.create("P", "alice", nil).ID)
	}

	page, err := s.service.List(s.ctx, service.ListTasksParams{
		Status: statusPtr(domain.TaskStatusPending),
		Skip:   0,
		Limit:  10,
	})
	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 3)
	s.Equal(3, page.Total)

	for i, task := range page.Tasks {
		s.Equal(pending[i], task.ID)
		s.Equal(domain.TaskStatusPending, task.Status)
	}
}

// TestList_CombinedFilters tests that every predicate holds for every result.
func (s *TaskServiceTestSuite) TestList_CombinedFilters() {
	s.create("A1", "alice", nil)
	s.create("B1", "bob", nil)
	s.create("A2", "alice", statusPtr(domain.TaskStatusResolved))
	s.create("A3", "alice", nil)

	page, err := s.service.List(s.ctx, service.ListTasksParams{
		Status:    statusPtr(domain.TaskStatusPending),
		CreatedBy: strPtr("alice"),
		Limit:     10,
	})
	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 2)

	var prev int64
	for _, task := range page.Tasks {
		s.Equal("alice", task.CreatedBy)
		s.Equal(domain.TaskStatusPending, task.Status)
		s.Greater(task.ID, prev)
		prev = task.ID
	}
}

// TestList_Pagination tests limit and skip beyond the end.
func (s *TaskServiceTestSuite) TestList_Pagination() {
	for i := 0; i < 5; i++ {
		s.create("T", "alice", nil)
	}

	page, err := s.service.List(s.ctx, service.ListTasksParams{Skip: 1, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page.Tasks, 2)
	s.Equal(int64(2), page.Tasks[0].ID)
	s.Equal(int64(3), page.Tasks[1].ID)
	s.Equal(5, page.Total)

	page, err = s.service.List(s.ctx, service.ListTasksParams{Skip: 50, Limit: 10})
	s.Require().NoError(err)
	s.NotNil(page.Tasks)
	s.Empty(page.Tasks)
}

// TestList_Validation tests pagination bounds and status filter membership.
func (s *TaskServiceTestSuite) TestList_Validation() {
	cases := []service.ListTasksParams{
		{Skip: -1, Limit: 10},
		{Skip: 0, Limit: 0},
		{Skip: 0, Limit: 100000},
		{Skip: 0, Limit: 10, Status: statusPtr("nope")},
	}
	for _, params := range cases {
		_, err := s.service.List(s.ctx, params)
		s.ErrorIs(err, domain.ErrValidation)
	}
}

// TestPersistenceErrorsPropagate tests that store failures keep their category.
func (s *TaskServiceTestSuite) TestPersistenceErrorsPropagate() {
	task := s.create("TASK001", "alice", nil)
	s.store.Err = errors.New("connection refused")

	_, err := s.service.Create(s.ctx, service.CreateTaskParams{ComplaintNumber: "X", CreatedBy: "alice"})
	s.ErrorIs(err, domain.ErrPersistence)

	_, err = s.service.Get(s.ctx, task.ID)
	s.ErrorIs(err, domain.ErrPersistence)

	_, err = s.service.List(s.ctx, service.ListTasksParams{Limit: 10})
	s.ErrorIs(err, domain.ErrPersistence)

	_, err = s.service.Update(s.ctx, task.ID, domain.TaskPatch{Status: statusPtr(domain.TaskStatusResolved)})
	s.ErrorIs(err, domain.ErrPersistence)

	err = s.service.Delete(s.ctx, task.ID)
	s.ErrorIs(err, domain.ErrPersistence)
	s.NotErrorIs(err, domain.ErrTaskNotFound)
}

// TestTaskServiceTestSuite runs the test suite.
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
