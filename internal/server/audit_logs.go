package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/gastrak/gastrak/internal/audit/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Action string `form:"action"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListRequest{
		Skip:   query.Skip,
		Limit:  query.Limit,
		Action: strings.TrimSpace(query.Action),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// audit records a privileged action with the request actor attached. Failures
// are swallowed; the trail must not fail the request.
func (s *Server) audit(c *gin.Context, action, targetType string, targetID *string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}

	entry := auditdomain.Entry{
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
	}
	if actor, ok := currentUser(c); ok {
		actorID := actor.ID
		entry.ActorID = &actorID
	}
	_ = s.auditSvc.Log(c.Request.Context(), entry)
}
