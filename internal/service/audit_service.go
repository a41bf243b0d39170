package service

import (
	"Awareness/internal/api/dto"
	"Awareness/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

// AuditService exposes the raw table contents unfiltered, so operators can
// verify the inputs behind the published metrics.
type AuditService interface {
	ListUsers(ctx context.Context) ([]*dto.UserDTO, error)
	ListCourses(ctx context.Context) ([]*dto.CourseDTO, error)
	ListAssignments(ctx context.Context) ([]*dto.AssignmentDTO, error)
	ListSnapshots(ctx context.Context) ([]*dto.MetricSnapshotDTO, error)
}

type auditServiceImpl struct {
	userRepo       repository.UserRepo
	courseRepo     repository.CourseRepo
	assignmentRepo repository.AssignmentRepo
	snapshotRepo   repository.SnapshotRepo
}

func NewAuditService(
	userRepo repository.UserRepo,
	courseRepo repository.CourseRepo,
	assignmentRepo repository.AssignmentRepo,
	snapshotRepo repository.SnapshotRepo,
) AuditService {
	return &auditServiceImpl{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		snapshotRepo:   snapshotRepo,
	}
}

func (s *auditServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		item := &dto.UserDTO{}
		_ = copier.Copy(item, user)
		item.StartDate = user.StartDate.Format(time.DateOnly)
		item.LastUpdate = user.LastUpdate.Format(time.DateOnly)
		if user.EndDate != nil {
			item.EndDate = user.EndDate.Format(time.DateOnly)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *auditServiceImpl) ListCourses(ctx context.Context) ([]*dto.CourseDTO, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CourseDTO, 0, len(courses))
	for _, course := range courses {
		item := &dto.CourseDTO{}
		_ = copier.Copy(item, course)
		item.CreationDate = course.CreationDate.Format(time.DateOnly)
		items = append(items, item)
	}
	return items, nil
}

func (s *auditServiceImpl) ListAssignments(ctx context.Context) ([]*dto.AssignmentDTO, error) {
	assignments, err := s.assignmentRepo.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		item := &dto.AssignmentDTO{}
		_ = copier.Copy(item, assignment)
		item.AssignmentDate = assignment.AssignmentDate.Format(time.DateOnly)
		if assignment.CompletionDate != nil {
			item.CompletionDate = assignment.CompletionDate.Format(time.DateOnly)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *auditServiceImpl) ListSnapshots(ctx context.Context) ([]*dto.MetricSnapshotDTO, error) {
	snapshots, err := s.snapshotRepo.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MetricSnapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		item := &dto.MetricSnapshotDTO{}
		_ = copier.Copy(item, snapshot)
		item.CheckpointDate = snapshot.CheckpointDate.Format(time.DateOnly)
		items = append(items, item)
	}
	return items, nil
}
