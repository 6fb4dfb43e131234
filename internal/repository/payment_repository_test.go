package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPaymentRepositoryTest(t *testing.T) (*GormPaymentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Account{},
		&models.DJ{},
		&models.Event{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPaymentRepository(db), db
}

func createRepoTestEvent(t *testing.T, db *gorm.DB, djID, producerID uint) *models.Event {
	t.Helper()
	event := models.Event{
		Title:      fmt.Sprintf("Event dj%d p%d", djID, producerID),
		Date:       time.Now().AddDate(0, 0, 7),
		DJID:       djID,
		ProducerID: producerID,
		CacheValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Status:     constants.EventStatusScheduled,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	return &event
}

func createRepoTestPayment(t *testing.T, repo *GormPaymentRepository, eventID uint, status string, dueAt time.Time) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		EventID:  eventID,
		Amount:   models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Currency: constants.SiteCurrencyDefault,
		Status:   status,
		DueAt:    dueAt,
	}
	if err := repo.Create(payment); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	return payment
}

func TestPaymentRepositoryGetByIDMissingReturnsNil(t *testing.T) {
	repo, _ := setupPaymentRepositoryTest(t)
	payment, err := repo.GetByID(12345)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if payment != nil {
		t.Fatalf("expected nil for a missing payment, got %+v", payment)
	}
}

func TestPaymentRepositoryGetByIDPreloadsEvent(t *testing.T) {
	repo, db := setupPaymentRepositoryTest(t)
	event := createRepoTestEvent(t, db, 1, 1)
	created := createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, time.Now())

	payment, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if payment == nil || payment.Event == nil {
		t.Fatalf("expected event preloaded, got %+v", payment)
	}
	if payment.Event.ID != event.ID {
		t.Fatalf("expected event %d, got %d", event.ID, payment.Event.ID)
	}
}

func TestPaymentRepositoryListOverdueOnly(t *testing.T) {
	repo, db := setupPaymentRepositoryTest(t)
	event := createRepoTestEvent(t, db, 1, 1)
	now := time.Now()

	overdue := createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now.Add(-48*time.Hour))
	createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now.Add(48*time.Hour))
	createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPaid, now.Add(-48*time.Hour))

	payments, total, err := repo.List(PaymentListFilter{OverdueOnly: true, Now: now})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(payments) != 1 {
		t.Fatalf("expected exactly one overdue payment, got total=%d len=%d", total, len(payments))
	}
	if payments[0].ID != overdue.ID {
		t.Fatalf("expected payment %d, got %d", overdue.ID, payments[0].ID)
	}
}

func TestPaymentRepositoryListFiltersByDJAndProducer(t *testing.T) {
	repo, db := setupPaymentRepositoryTest(t)
	eventA := createRepoTestEvent(t, db, 10, 100)
	eventB := createRepoTestEvent(t, db, 20, 200)
	now := time.Now()

	paymentA := createRepoTestPayment(t, repo, eventA.ID, constants.PaymentStatusPending, now)
	paymentB := createRepoTestPayment(t, repo, eventB.ID, constants.PaymentStatusPending, now)

	payments, total, err := repo.List(PaymentListFilter{DJID: 10})
	if err != nil {
		t.Fatalf("List by DJ error: %v", err)
	}
	if total != 1 || len(payments) != 1 || payments[0].ID != paymentA.ID {
		t.Fatalf("expected only DJ 10's payment, got total=%d %+v", total, payments)
	}

	payments, total, err = repo.List(PaymentListFilter{ProducerID: 200})
	if err != nil {
		t.Fatalf("List by producer error: %v", err)
	}
	if total != 1 || len(payments) != 1 || payments[0].ID != paymentB.ID {
		t.Fatalf("expected only producer 200's payment, got total=%d %+v", total, payments)
	}
}

func TestPaymentRepositoryListPagination(t *testing.T) {
	repo, db := setupPaymentRepositoryTest(t)
	event := createRepoTestEvent(t, db, 1, 1)
	now := time.Now()
	for i := 0; i < 5; i++ {
		createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now)
	}

	payments, total, err := repo.List(PaymentListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected unpaged total 5, got %d", total)
	}
	if len(payments) != 2 {
		t.Fatalf("expected page of 2, got %d", len(payments))
	}
}

func TestPaymentRepositoryListPendingDueBefore(t *testing.T) {
	repo, db := setupPaymentRepositoryTest(t)
	event := createRepoTestEvent(t, db, 1, 1)
	now := time.Now()

	oldest := createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now.Add(-72*time.Hour))
	newer := createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now.Add(-24*time.Hour))
	createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPaid, now.Add(-72*time.Hour))
	createRepoTestPayment(t, repo, event.ID, constants.PaymentStatusPending, now.Add(24*time.Hour))

	payments, err := repo.ListPendingDueBefore(now)
	if err != nil {
		t.Fatalf("ListPendingDueBefore error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 overdue rows, got %d", len(payments))
	}
	if payments[0].ID != oldest.ID || payments[1].ID != newer.ID {
		t.Fatalf("expected due_at ascending order, got %+v", payments)
	}
}
