package functions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/provider"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupFunctionsTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:functions_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	cfg := &config.Config{}
	accountRepo := repository.NewAccountRepository(db)
	container := &provider.Container{
		Config:         cfg,
		PaymentRepo:    repository.NewPaymentRepository(db),
		AccountRepo:    accountRepo,
		ProofVerifier:  verification.NewRuleVerifier("", 0),
		AccountService: service.NewAccountService(accountRepo, nil),
	}
	handler := New(container)

	r := gin.New()
	group := r.Group("/functions")
	group.Use(CORS())
	{
		group.POST("/verify-payment", handler.VerifyPayment)
		group.POST("/create-user", handler.CreateUser)
		group.OPTIONS("/verify-payment", func(*gin.Context) {})
		group.OPTIONS("/create-user", func(*gin.Context) {})
	}
	return r, db
}

func createFunctionsTestPayment(t *testing.T, db *gorm.DB, withProof bool) *models.Payment {
	t.Helper()
	event := models.Event{
		Title:      "Functions Night",
		Date:       time.Now().AddDate(0, 0, 7),
		DJID:       1,
		ProducerID: 1,
		CacheValue: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Status:     constants.EventStatusScheduled,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	payment := models.Payment{
		EventID:  event.ID,
		Amount:   models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Currency: constants.SiteCurrencyDefault,
		Status:   constants.PaymentStatusPending,
		DueAt:    time.Now().AddDate(0, 0, 7),
	}
	if withProof {
		now := time.Now()
		payment.ProofURL = "/uploads/proofs/receipt.png"
		payment.ProofUploadedAt = &now
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	return &payment
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFunctionsCORSPreflight(t *testing.T) {
	r, _ := setupFunctionsTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/verify-payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Fatalf("unexpected methods header: %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Fatalf("unexpected headers header: %q", got)
	}
}

func TestVerifyPaymentRequiresFields(t *testing.T) {
	r, _ := setupFunctionsTest(t)

	w := postJSON(t, r, "/functions/verify-payment", map[string]string{"paymentId": "1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field, got %s", w.Body.String())
	}
}

func TestVerifyPaymentInvalidID(t *testing.T) {
	r, _ := setupFunctionsTest(t)
	w := postJSON(t, r, "/functions/verify-payment", map[string]string{
		"paymentId": "not-a-number",
		"proofUrl":  "https://cdn.example.com/receipt.png",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVerifyPaymentUnknownPayment(t *testing.T) {
	r, _ := setupFunctionsTest(t)
	w := postJSON(t, r, "/functions/verify-payment", map[string]string{
		"paymentId": "9999",
		"proofUrl":  "https://cdn.example.com/receipt.png",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["error"] != "payment not found" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestVerifyPaymentAcceptanceSettles(t *testing.T) {
	r, db := setupFunctionsTest(t)
	payment := createFunctionsTestPayment(t, db, true)

	w := postJSON(t, r, "/functions/verify-payment", map[string]string{
		"paymentId": fmt.Sprintf("%d", payment.ID),
		"proofUrl":  payment.ProofURL,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// the body is the raw verification result, no envelope
	var result verification.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result failed: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected acceptance, got %+v", result)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if stored.Status != constants.PaymentStatusPaid || stored.PaidAt == nil {
		t.Fatalf("expected settled payment, got status=%s paid_at=%v", stored.Status, stored.PaidAt)
	}
}

func TestVerifyPaymentRejectionDoesNotSettle(t *testing.T) {
	r, db := setupFunctionsTest(t)
	payment := createFunctionsTestPayment(t, db, true)

	w := postJSON(t, r, "/functions/verify-payment", map[string]string{
		"paymentId": fmt.Sprintf("%d", payment.ID),
		"proofUrl":  "https://cdn.example.com/receipt.exe",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("rejection is still a 200, got %d", w.Code)
	}
	var result verification.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result failed: %v", err)
	}
	if result.Verified {
		t.Fatalf("expected rejection, got %+v", result)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if stored.Status != constants.PaymentStatusPending {
		t.Fatalf("rejection must not settle, got %s", stored.Status)
	}
}

func TestCreateUserProvisionsConfirmedAccount(t *testing.T) {
	r, db := setupFunctionsTest(t)

	w := postJSON(t, r, "/functions/create-user", map[string]interface{}{
		"email":    "Producer@Example.COM",
		"password": "s3cret-pass",
		"user_metadata": map[string]interface{}{
			"name": "Paula",
			"role": "finance",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		User models.Account `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.User.Email != "producer@example.com" {
		t.Fatalf("expected normalized email, got %q", body.User.Email)
	}
	if body.User.Role != constants.RoleFinance {
		t.Fatalf("expected role from metadata, got %q", body.User.Role)
	}

	var stored models.Account
	if err := db.Where("email = ?", "producer@example.com").First(&stored).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if stored.EmailConfirmedAt == nil {
		t.Fatalf("provisioned account must have the email pre-confirmed")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	r, _ := setupFunctionsTest(t)
	body := map[string]string{"email": "dup@example.com", "password": "s3cret-pass"}

	if w := postJSON(t, r, "/functions/create-user", body); w.Code != http.StatusOK {
		t.Fatalf("first create expected 200, got %d", w.Code)
	}
	w := postJSON(t, r, "/functions/create-user", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if resp["error"] != "account already exists" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestCreateUserRequiresCredentials(t *testing.T) {
	r, _ := setupFunctionsTest(t)
	w := postJSON(t, r, "/functions/create-user", map[string]string{"email": "x@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
