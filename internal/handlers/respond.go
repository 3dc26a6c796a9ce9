package handlers

import (
	"net/http"
	"strconv"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/frontdesk-api/internal/middleware"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/sjperalta/frontdesk-api/internal/services"
	"github.com/sjperalta/frontdesk-api/pkg/logger"
)

const maxPerPage = 100

// statusFor maps a ledger error kind to its HTTP status
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindValidation:
		return http.StatusUnprocessableEntity
	case services.KindConsistency:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a ledger error. Internal failures are reported to
// sentry and hidden from the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	kind := services.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		logger.Error("ledger request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

// actorFrom builds the audit actor for the authenticated caller
func actorFrom(c *gin.Context) models.Actor {
	return models.Actor{
		UserID:    middleware.GetUserID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// listQueryFrom reads page, per_page, search and sort (field-direction)
func listQueryFrom(c *gin.Context, defaultPerPage int) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if query.Page < 1 {
		query.Page = 1
	}
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if query.PerPage < 1 {
		query.PerPage = defaultPerPage
	}
	if query.PerPage > maxPerPage {
		query.PerPage = maxPerPage
	}
	query.Search = c.Query("search")

	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
