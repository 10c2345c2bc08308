package service

import (
	"errors"
	"testing"

	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/queue"
	"github.com/storepanel/internal/repository"
)

func setupNotificationServiceTest(t *testing.T) (*serviceTestEnv, *NotificationService) {
	t.Helper()
	env := setupServiceTest(t)
	// 队列未启用，Send 走同步派发
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewNotificationService(
		repository.NewNotificationRepository(env.db),
		env.customerRepo,
		queueClient,
		env.activity,
	)
	return env, svc
}

func TestNotificationCreateStartsAsDraft(t *testing.T) {
	env, svc := setupNotificationServiceTest(t)
	store := env.createStore(t, "central-market", 0)

	notification, err := svc.Create(storeScope(store.ID), NotificationInput{
		Title:    "Weekend Sale",
		Body:     "Everything 10% off.",
		Channels: []string{constants.NotificationChannelApp},
	}, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if notification.Status != constants.NotificationStatusDraft {
		t.Fatalf("status want draft, got %s", notification.Status)
	}
	if notification.TargetAudience != constants.NotificationAudienceAll {
		t.Fatalf("audience want all, got %s", notification.TargetAudience)
	}
	if notification.CreatedBy != testActor().UserID {
		t.Fatalf("created_by want %d, got %d", testActor().UserID, notification.CreatedBy)
	}
}

func TestNotificationValidation(t *testing.T) {
	env, svc := setupNotificationServiceTest(t)
	store := env.createStore(t, "central-market", 0)

	_, err := svc.Create(storeScope(store.ID), NotificationInput{
		Channels:       []string{"pigeon"},
		TargetAudience: "everyone",
	}, testActor())
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	for _, field := range []string{"title", "body", "channels", "target_audience"} {
		if _, exists := verr.Fields[field]; !exists {
			t.Fatalf("expected field error for %s, got %v", field, verr.Fields)
		}
	}
}

func TestNotificationSyncSendMarksSent(t *testing.T) {
	env, svc := setupNotificationServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	env.createCustomer(t, store.ID, "dana@example.com")
	env.createCustomer(t, store.ID, "evan@example.com")
	inactive := env.createCustomer(t, store.ID, "gone@example.com")
	if err := env.db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate customer failed: %v", err)
	}

	scope := storeScope(store.ID)
	notification, err := svc.Create(scope, NotificationInput{
		Title:          "Weekend Sale",
		Body:           "Everything 10% off.",
		Channels:       []string{constants.NotificationChannelApp, constants.NotificationChannelEmail},
		TargetAudience: constants.NotificationAudienceActive,
	}, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sent, err := svc.Send(scope, notification.ID, testActor())
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if sent.Status != constants.NotificationStatusSent {
		t.Fatalf("status want sent, got %s", sent.Status)
	}
	if sent.SentAt == nil {
		t.Fatalf("expected sent_at set")
	}
	// 只统计活跃顾客
	if sent.RecipientsCount != 2 || sent.SentCount != 2 {
		t.Fatalf("recipients want 2/2, got %d/%d", sent.RecipientsCount, sent.SentCount)
	}

	// 已发送的不可重发/不可改/不可删
	if _, err := svc.Send(scope, notification.ID, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus on resend, got %v", err)
	}
	if _, err := svc.Update(scope, notification.ID, NotificationInput{
		Title: "x", Body: "y", Channels: []string{constants.NotificationChannelApp},
	}, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus on update, got %v", err)
	}
	if err := svc.Delete(scope, notification.ID, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus on delete, got %v", err)
	}
}

func TestNotificationCrossStoreInvisible(t *testing.T) {
	env, svc := setupNotificationServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)

	notification, err := svc.Create(storeScope(other.ID), NotificationInput{
		Title:    "Beans",
		Body:     "Fresh roast.",
		Channels: []string{constants.NotificationChannelApp},
	}, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(storeScope(store.ID), notification.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for cross-store get, got %v", err)
	}

	var fromDB models.Notification
	if err := env.db.First(&fromDB, notification.ID).Error; err != nil {
		t.Fatalf("reload notification failed: %v", err)
	}
	if fromDB.StoreID != other.ID {
		t.Fatalf("store id want %d, got %d", other.ID, fromDB.StoreID)
	}
}

func TestNotificationTrackIncrementsEngagement(t *testing.T) {
	env, svc := setupNotificationServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	env.createCustomer(t, store.ID, "dana@example.com")

	scope := storeScope(store.ID)
	notification, err := svc.Create(scope, NotificationInput{
		Title:    "Weekend Sale",
		Body:     "Everything 10% off.",
		Channels: []string{constants.NotificationChannelApp},
	}, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 草稿阶段不接受互动上报
	if _, err := svc.Track(scope, notification.ID, "opened"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("track draft want ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.Send(scope, notification.ID, testActor()); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if _, err := svc.Track(scope, notification.ID, "opened"); err != nil {
		t.Fatalf("track opened failed: %v", err)
	}
	if _, err := svc.Track(scope, notification.ID, "opened"); err != nil {
		t.Fatalf("track opened failed: %v", err)
	}
	tracked, err := svc.Track(scope, notification.ID, "clicked")
	if err != nil {
		t.Fatalf("track clicked failed: %v", err)
	}
	if tracked.OpenedCount != 2 {
		t.Fatalf("opened count want 2, got %d", tracked.OpenedCount)
	}
	if tracked.ClickedCount != 1 {
		t.Fatalf("clicked count want 1, got %d", tracked.ClickedCount)
	}

	if _, err := svc.Track(scope, notification.ID, "bounced"); err == nil {
		t.Fatalf("expected validation error for unknown event")
	}
}
