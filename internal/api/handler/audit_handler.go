package handler

import (
	"Awareness/internal/pkg/response"
	"Awareness/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditSvc service.AuditService
}

func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditSvc: auditSvc,
	}
}

func (s *AuditHandler) ListUsers(c *gin.Context) {
	users, err := s.auditSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *AuditHandler) ListCourses(c *gin.Context) {
	courses, err := s.auditSvc.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, courses)
}

func (s *AuditHandler) ListAssignments(c *gin.Context) {
	assignments, err := s.auditSvc.ListAssignments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assignments)
}

func (s *AuditHandler) ListSnapshots(c *gin.Context) {
	snapshots, err := s.auditSvc.ListSnapshots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshots)
}
