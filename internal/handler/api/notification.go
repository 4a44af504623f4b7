package api

import (
	"io"
	"net/http"
	"time"

	"sitehub/internal/domain/notification"
	reqdto "sitehub/internal/handler/dto/request"
	resdto "sitehub/internal/handler/dto/response"
	"sitehub/internal/handler/httperr"
	"sitehub/internal/handler/middleware"
	"sitehub/internal/infra/repository"
	"sitehub/internal/usecase/commands"
	"sitehub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const watchHeartbeat = 25 * time.Second

type NotificationHandler struct {
	cmds     commands.NotificationCommands
	dispatch commands.DispatchCommands
	q        queries.NotificationQueries
	stats    queries.StatisticsQueries
}

func NewNotificationHandler(
	cmds commands.NotificationCommands,
	dispatch commands.DispatchCommands,
	q queries.NotificationQueries,
	stats queries.StatisticsQueries,
) *NotificationHandler {
	return &NotificationHandler{cmds: cmds, dispatch: dispatch, q: q, stats: stats}
}

// @Summary Create notification
// @Description Create a pending notification for a user
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateNotificationRequest true "Create notification request"
// @Success 201 {object} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 500 {object} httperr.Response
// @Router /api/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	var req reqdto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		abortWithUsecaseError(c, err, "Create notification failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromNotification(n))
}

// @Summary Create notifications in one batch
// @Description All items are written atomically; one invalid item rejects the batch
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BatchCreateNotificationRequest true "Batch request"
// @Success 201 {array} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/notifications/batch [post]
func (h *NotificationHandler) BatchCreate(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	var req reqdto.BatchCreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.BatchCreate(c.Request.Context(), req.ToParams())
	if err != nil {
		abortWithUsecaseError(c, err, "Batch create failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromNotifications(created))
}

// @Summary List own notifications
// @Description Newest first, paged with an opaque cursor
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param type query string false "Notification type"
// @Param priority query string false "Notification priority"
// @Param status query string false "Notification status"
// @Param limit query int false "Page size (1-200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.NotificationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var query reqdto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, err := toListFilter(query)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid query")
		return
	}

	var cursor *queries.Cursor
	if query.After != "" {
		cursor = &queries.Cursor{After: query.After}
	}
	items, next, err := h.q.ListByUser(c.Request.Context(), userID, filter, cursor, query.Limit)
	if err != nil {
		abortWithUsecaseError(c, err, "Invalid query")
		return
	}
	unread, err := h.q.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Unread count failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotificationList(items, next, unread))
}

func toListFilter(q reqdto.ListNotificationsQuery) (repository.ListFilter, error) {
	filter := repository.ListFilter{UnreadOnly: q.Unread}
	if q.Type != "" {
		t, err := notification.ParseType(q.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	if q.Priority != "" {
		p, err := notification.ParsePriority(q.Priority)
		if err != nil {
			return filter, err
		}
		filter.Priority = p
	}
	if q.Status != "" {
		s, err := notification.ParseStatus(q.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = s
	}
	return filter, nil
}

// @Summary Get notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)
	n, err := h.q.GetByID(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		abortWithUsecaseError(c, err, "Get notification failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}

// @Summary Update notification
// @Description Partial update of the editable fields of an owned notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param request body reqdto.UpdateNotificationRequest true "Fields to change"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id} [patch]
func (h *NotificationHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.Update(c.Request.Context(), c.Param("id"), req.ToPatch(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}

// @Summary Update notification status
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id}/status [put]
func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	n, err := h.cmds.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Reason, userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Status update failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}

// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := h.cmds.MarkAsRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Mark as read failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}

// @Summary Mark all own notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CountResponse
// @Failure 500 {object} httperr.Response
// @Router /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	count, err := h.cmds.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Mark all as read failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: count})
}

// @Summary Archive notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id}/archive [put]
func (h *NotificationHandler) Archive(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	n, err := h.cmds.Archive(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Archive failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotification(n))
}

// @Summary Delete notification
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		abortWithUsecaseError(c, err, "Delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Dispatch notification
// @Description Delivers over every requested channel concurrently and records one final status
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param request body reqdto.DispatchRequest true "Channels"
// @Success 200 {object} resdto.DeliveryOutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/notifications/{id}/dispatch [post]
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	var req reqdto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	outcome, err := h.dispatch.Dispatch(c.Request.Context(), c.Param("id"), req.ToChannels())
	if err != nil {
		if outcome != nil {
			// delivery happened but the final status write did not
			httperr.AbortWithError(c, http.StatusInternalServerError, err,
				"Delivery status could not be recorded", resdto.FromDeliveryOutcome(outcome))
			return
		}
		abortWithUsecaseError(c, err, "Dispatch failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeliveryOutcome(outcome))
}

// @Summary Notification statistics
// @Description Totals per type and priority; zero buckets are omitted
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Owner; defaults to the caller"
// @Success 200 {object} resdto.StatisticsResponse
// @Failure 403 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/notifications/stats [get]
func (h *NotificationHandler) Stats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ownerID := c.DefaultQuery("user_id", userID)
	if ownerID != userID {
		if role, _ := middleware.GetUserRole(c); !role.CanActForOthers() {
			abortWithUsecaseError(c, queries.ErrStatisticsForbidden, "Forbidden")
			return
		}
	}
	stats, err := h.stats.Statistics(c.Request.Context(), ownerID)
	if err != nil {
		abortWithUsecaseError(c, err, "Statistics failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatistics(stats))
}

// @Summary Watch own notifications
// @Description Server-Sent Events; every "snapshot" event carries the full current list
// @Tags notifications
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {object} resdto.SnapshotEvent
// @Router /api/notifications/watch [get]
func (h *NotificationHandler) Watch(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	w, err := h.q.Watch(ctx, userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Watch failed")
		return
	}
	defer w.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(watchHeartbeat)
	defer heartbeat.Stop()

	snapshots := w.Snapshots()
	c.Stream(func(_ io.Writer) bool {
		select {
		case s, open := <-snapshots:
			if !open {
				return false
			}
			if s.Err != nil {
				c.SSEvent("error", gin.H{"message": "watch interrupted"})
				return false
			}
			c.SSEvent("snapshot", resdto.SnapshotEvent{
				Items: resdto.FromNotifications(s.Items),
				At:    s.At.Unix(),
			})
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{})
			return true
		case <-ctx.Done():
			return false
		}
	})
}
