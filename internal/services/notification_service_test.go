package services

import (
	"errors"
	"testing"
	"time"

	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
	ops           *[]string
	createErr     error
	failForUser   string
}

func newFakeNotificationRepo(ops *[]string) *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: make(map[string]*models.Notification),
		ops:           ops,
	}
}

func (f *fakeNotificationRepo) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failForUser != "" && n.UserID == f.failForUser {
		return errors.New("insert failed")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	f.notifications[n.ID] = n
	f.record("store")
	return nil
}

func (f *fakeNotificationRepo) CreateBulkNotifications(notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := f.CreateNotification(n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) FindNotificationByID(id string) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID string) error {
	n, ok := f.notifications[notificationID]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	now := time.Now()
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error { return nil }

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByVerifyToken(token string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Save(user *models.User) error { return nil }

type emittedEvent struct {
	userID string
	event  interface{}
}

type fakeEmitter struct {
	ops    *[]string
	events []emittedEvent
}

func (f *fakeEmitter) EmitToUser(userID string, event interface{}) {
	if f.ops != nil {
		*f.ops = append(*f.ops, "emit")
	}
	f.events = append(f.events, emittedEvent{userID: userID, event: event})
}

func newTestService(ops *[]string) (NotificationService, *fakeNotificationRepo, *fakeEmitter) {
	repo := newFakeNotificationRepo(ops)
	emitter := &fakeEmitter{ops: ops}
	users := &fakeUserRepo{users: map[string]*models.User{
		"user-1": {BaseModel: models.BaseModel{ID: "user-1"}, Name: "Alice"},
		"user-2": {BaseModel: models.BaseModel{ID: "user-2"}, Name: "Bob"},
	}}
	return NewNotificationService(repo, users, emitter), repo, emitter
}

func TestNotifyStoresBeforeEmitting(t *testing.T) {
	var ops []string
	service, repo, emitter := newTestService(&ops)

	err := service.Notify("user-1", repositories.NotificationTypeSystem, "Hello", "world", nil)
	require.NoError(t, err)

	require.Equal(t, []string{"store", "emit"}, ops, "the durable write must precede the live push")
	assert.Len(t, repo.notifications, 1)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, "user-1", emitter.events[0].userID)
	event, ok := emitter.events[0].event.(*dto.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, "notification", event.Event)
	assert.Equal(t, "Hello", event.Payload.Title)
	assert.NotEmpty(t, event.Payload.ID, "the pushed payload carries the stored id")
}

func TestNotifyStoreFailureSkipsEmit(t *testing.T) {
	var ops []string
	service, repo, emitter := newTestService(&ops)
	repo.createErr = errors.New("db down")

	err := service.Notify("user-1", repositories.NotificationTypeSystem, "Hello", "world", nil)
	require.Error(t, err)

	assert.Empty(t, emitter.events, "nothing is pushed when the write fails")
}

func TestNotifyWithoutEmitterStillStores(t *testing.T) {
	repo := newFakeNotificationRepo(nil)
	users := &fakeUserRepo{users: map[string]*models.User{}}
	service := NewNotificationService(repo, users, nil)

	err := service.Notify("user-1", repositories.NotificationTypeSystem, "Hello", "world", nil)
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 1)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	service, repo, _ := newTestService(nil)
	require.NoError(t, service.Notify("user-1", repositories.NotificationTypeSystem, "Hello", "world", nil))

	var id string
	for notificationID := range repo.notifications {
		id = notificationID
	}

	require.NoError(t, service.MarkAsRead("user-1", id))
	assert.True(t, repo.notifications[id].IsRead)

	require.NoError(t, service.MarkAsRead("user-1", id), "re-reading an already-read notification succeeds")
}

func TestMarkAsReadUnknownIDIsNotFound(t *testing.T) {
	service, _, _ := newTestService(nil)

	err := service.MarkAsRead("user-1", uuid.NewString())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMarkAsReadRejectsForeignNotification(t *testing.T) {
	service, repo, _ := newTestService(nil)
	require.NoError(t, service.Notify("user-1", repositories.NotificationTypeSystem, "Hello", "world", nil))

	var id string
	for notificationID := range repo.notifications {
		id = notificationID
	}

	err := service.MarkAsRead("user-2", id)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
	assert.False(t, repo.notifications[id].IsRead)
}

func TestUnreadCountTracksReads(t *testing.T) {
	service, _, _ := newTestService(nil)
	require.NoError(t, service.Notify("user-1", repositories.NotificationTypeSystem, "one", "", nil))
	require.NoError(t, service.Notify("user-1", repositories.NotificationTypeSystem, "two", "", nil))
	require.NoError(t, service.Notify("user-2", repositories.NotificationTypeSystem, "other", "", nil))

	count, err := service.GetUnreadCount("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, service.MarkAllAsRead("user-1"))

	count, err = service.GetUnreadCount("user-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = service.GetUnreadCount("user-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "other users' counters are untouched")
}

func TestBroadcastContinuesPastPerUserFailures(t *testing.T) {
	service, repo, emitter := newTestService(nil)
	repo.failForUser = "user-1"

	err := service.Broadcast(&dto.BroadcastNotificationRequest{
		UserIDs: []string{"user-1", "user-2"},
		Title:   "Maintenance",
		Message: "Back soon",
	})
	require.NoError(t, err, "a per-user failure does not abort the broadcast")

	assert.Len(t, repo.notifications, 1)
	require.Len(t, emitter.events, 1)
	assert.Equal(t, "user-2", emitter.events[0].userID)
}

func TestBroadcastRejectsUnknownRecipients(t *testing.T) {
	service, repo, _ := newTestService(nil)

	err := service.Broadcast(&dto.BroadcastNotificationRequest{
		UserIDs: []string{"user-1", "ghost"},
		Title:   "Maintenance",
		Message: "Back soon",
	})
	require.Error(t, err)
	assert.Empty(t, repo.notifications, "validation happens before any delivery")
}
