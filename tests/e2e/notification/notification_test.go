//go:build e2e

package notification_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/domain/user"
	reqdto "sitehub/internal/handler/dto/request"
	resdto "sitehub/internal/handler/dto/response"
	"sitehub/internal/infra/channel"
	"sitehub/internal/infra/repository"
	"sitehub/internal/infra/repository/converter"
	"sitehub/tests/common/authtest"
	"sitehub/tests/common/builder"
	"sitehub/tests/common/dbtest"
	"sitehub/tests/common/httptest"
	"sitehub/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	notificationsURL = "/api/notifications"
	notificationURL  = "/api/notifications/%s"
)

type NotificationSuite struct {
	e2e.SharedSuite
	tokens *authtest.JWTHelper
}

func (s *NotificationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = authtest.NewJWTHelper(s.Config.JWT)
}

func TestNotificationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationSuite))
}

func (s *NotificationSuite) create(t *testing.T, token string, b *builder.NotificationBuilder) *resdto.NotificationResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, b.BuildCreateRequestDTO(), token)
	var created resdto.NotificationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.NotEmpty(t, created.ID)
	return &created
}

func (s *NotificationSuite) TestLifecycle() {
	s.Run("create, read back, mark as read, delete", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, "u1", user.RoleViewer)

		created := s.create(t, token, builder.NewNotificationBuilder())
		require.Equal(t, string(notification.StatusPending), created.Status)
		require.Equal(t, 1, dbtest.CountDocuments(t, s.DB, repository.NotificationCollection))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(notificationURL, created.ID), nil, token)
		var got resdto.NotificationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		if diff := cmp.Diff(*created, got, cmpopts.IgnoreFields(resdto.NotificationResponse{}, "UpdatedAt")); diff != "" {
			t.Errorf("read back mismatch (-created +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(notificationURL, created.ID)+"/read", nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.True(t, got.Read)
		require.Equal(t, string(notification.StatusRead), got.Status)
		require.NotNil(t, got.ReadAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?unread=true", nil, token)
		var list resdto.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Empty(t, list.Items)
		require.Zero(t, list.UnreadCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(notificationURL, created.ID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(notificationURL, created.ID), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")
		require.Zero(t, dbtest.CountDocuments(t, s.DB, repository.NotificationCollection))
	})

	s.Run("batch create and mark all as read", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, "u1", user.RoleViewer)

		items := []reqdto.CreateNotificationRequest{
			builder.NewNotificationBuilder().BuildCreateRequestDTO(),
			builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.Type = string(notification.TypeSafety) }).BuildCreateRequestDTO(),
			builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) { b.UserID = "u2" }).BuildCreateRequestDTO(),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL+"/batch",
			reqdto.BatchCreateNotificationRequest{Items: items}, token)
		var created []resdto.NotificationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Len(t, created, 3)

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, notificationsURL+"/read-all", nil, token)
		var count resdto.CountResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &count)
		require.Equal(t, 2, count.Count)

		// u2's notification is untouched
		u2 := s.tokens.GenerateToken(t, "u2", user.RoleViewer)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?unread=true", nil, u2)
		var list resdto.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, 1, list.UnreadCount)
	})
}

func (s *NotificationSuite) TestListPagination() {
	s.Run("cursor walks the list without overlap", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, "u1", user.RoleViewer)

		for i := range 3 {
			s.create(t, token, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
				b.Title = fmt.Sprintf("Inspection %d", i)
			}))
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?limit=2", nil, token)
		var first resdto.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		require.Len(t, first.Items, 2)
		require.NotEmpty(t, first.NextCursor)
		require.Equal(t, 3, first.UnreadCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?limit=2&after="+first.NextCursor, nil, token)
		var second resdto.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		require.Len(t, second.Items, 1)
		require.Empty(t, second.NextCursor)

		seen := map[string]bool{}
		for _, n := range append(first.Items, second.Items...) {
			require.False(t, seen[n.ID], "duplicate %s", n.ID)
			seen[n.ID] = true
		}
	})
}

func (s *NotificationSuite) TestAccess() {
	s.Run("owner, admin and stranger", func() {
		t := s.T()
		owner := s.tokens.GenerateToken(t, "u1", user.RoleViewer)
		created := s.create(t, owner, builder.NewNotificationBuilder())
		url := fmt.Sprintf(notificationURL, created.ID)

		stranger := s.tokens.GenerateToken(t, "u9", user.RoleViewer)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, stranger)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, stranger)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")

		admin := s.tokens.GenerateToken(t, "a1", user.RoleAdmin)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"/stats?user_id=u1", nil, stranger)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, s.tokens.CreateExpiredToken(t, "u1", user.RoleViewer))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *NotificationSuite) TestDispatch() {
	s.Run("unknown channel yields partial delivery", func() {
		t := s.T()
		owner := s.tokens.GenerateToken(t, "u1", user.RoleViewer)
		created := s.create(t, owner, builder.NewNotificationBuilder())
		url := fmt.Sprintf(notificationURL, created.ID) + "/dispatch"

		body := reqdto.DispatchRequest{Channels: []reqdto.ChannelRequest{
			{Kind: string(notification.ChannelInApp)},
			{Kind: "carrier_pigeon"},
		}}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, body, owner)
		require.Equal(t, http.StatusForbidden, w.Code, "viewers cannot dispatch")

		operator := s.tokens.GenerateToken(t, "o1", user.RoleOperator)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, body, operator)
		var outcome resdto.DeliveryOutcomeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &outcome)
		require.Equal(t, 2, outcome.TotalChannels)
		require.Equal(t, 1, outcome.SuccessCount)
		require.Equal(t, 1, outcome.FailureCount)
		require.Equal(t, string(notification.StatusPartiallyDelivered), outcome.Status)
		require.Equal(t, 1, dbtest.CountDocuments(t, s.DB, channel.InboxCollection))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(notificationURL, created.ID), nil, owner)
		var got resdto.NotificationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, string(notification.StatusPartiallyDelivered), got.Status)
		require.NotNil(t, got.DeliveredAt)
	})
}

func (s *NotificationSuite) TestStats() {
	s.Run("counts per type and priority", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, "u1", user.RoleViewer)

		s.create(t, token, builder.NewNotificationBuilder())
		s.create(t, token, builder.NewNotificationBuilder().With(func(b *builder.NotificationBuilder) {
			b.Type = string(notification.TypeSafety)
			b.Priority = string(notification.PriorityUrgent)
		}))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"/stats", nil, token)
		var stats resdto.StatisticsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)

		want := resdto.StatisticsResponse{
			OwnerID:    "u1",
			Total:      2,
			Unread:     2,
			ByType:     map[string]int{string(notification.TypeTask): 1, string(notification.TypeSafety): 1},
			ByPriority: map[string]int{string(notification.PriorityNormal): 1, string(notification.PriorityUrgent): 1},
		}
		if diff := cmp.Diff(want, stats, cmpopts.IgnoreFields(resdto.StatisticsResponse{}, "ComputedAt")); diff != "" {
			t.Errorf("statistics mismatch (-want +got):\n%s", diff)
		}
	})
}

func (s *NotificationSuite) TestExternalWrites() {
	s.Run("rows written by another process are listed and counted", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, "u1", user.RoleViewer)

		dbtest.InsertDocument(t, s.DB, repository.NotificationCollection, "ext-1", map[string]any{
			converter.FieldUserID:   "u1",
			converter.FieldTitle:    "Crane inspection overdue",
			converter.FieldMessage:  "Tower crane T2 missed its weekly inspection.",
			converter.FieldType:     string(notification.TypeSafety),
			converter.FieldPriority: string(notification.PriorityHigh),
			converter.FieldStatus:   string(notification.StatusPending),
			converter.FieldRead:     false,
		}, time.Now().Add(-time.Minute))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		var list resdto.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, "ext-1", list.Items[0].ID)
		require.Equal(t, string(notification.PriorityHigh), list.Items[0].Priority)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"/stats", nil, token)
		var stats resdto.StatisticsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
		require.Equal(t, 1, stats.ByType[string(notification.TypeSafety)])
	})
}
