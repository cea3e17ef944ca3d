package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	infrarepo "github.com/finbook/finbook/infra/repository"
	"github.com/finbook/finbook/internal/testutil"
	"github.com/finbook/finbook/pkg/app"
	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/webapi"
)

type APITestSuite struct {
	suite.Suite
	app   *fiber.App
	token string
}

func (s *APITestSuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000},
		Log:       &config.Log{},
		DB:        &config.DB{},
		Jwt:       &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
	a := app.New(&app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	s.app = webapi.SetupApp(a)

	s.request(http.MethodPost, "/auth/register", map[string]any{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}, http.StatusCreated)

	body := s.request(http.MethodPost, "/auth/login", map[string]any{
		"identity": "testuser",
		"password": "password123",
	}, http.StatusOK)
	s.token = body["data"].(map[string]any)["token"].(string)
}

// request sends a JSON request and asserts the status, returning the decoded
// body.
func (s *APITestSuite) request(method, path string, payload any, wantStatus int) map[string]any {
	s.T().Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().Equal(wantStatus, resp.StatusCode, "body: %s", raw)

	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}

func (s *APITestSuite) data(body map[string]any) map[string]any {
	s.T().Helper()
	data, ok := body["data"].(map[string]any)
	s.Require().True(ok, "missing data in %v", body)
	return data
}

func (s *APITestSuite) createAccount(name string, balance float64) string {
	s.T().Helper()
	body := s.request(http.MethodPost, "/accounts", map[string]any{
		"name": name, "balance": balance,
	}, http.StatusCreated)
	return s.data(body)["id"].(string)
}

func (s *APITestSuite) createCategory(name, categoryType string) string {
	s.T().Helper()
	body := s.request(http.MethodPost, "/categories", map[string]any{
		"name": name, "type": categoryType,
	}, http.StatusCreated)
	return s.data(body)["id"].(string)
}

func (s *APITestSuite) accountBalance(id string) float64 {
	s.T().Helper()
	body := s.request(http.MethodGet, "/accounts/"+id, nil, http.StatusOK)
	return s.data(body)["balance"].(float64)
}

func (s *APITestSuite) TestRegisterDuplicateRejected() {
	s.request(http.MethodPost, "/auth/register", map[string]any{
		"username": "testuser",
		"email":    "other@example.com",
		"password": "password123",
	}, http.StatusBadRequest)
}

func (s *APITestSuite) TestLoginWrongPassword() {
	s.request(http.MethodPost, "/auth/login", map[string]any{
		"identity": "testuser",
		"password": "wrong",
	}, http.StatusUnauthorized)
}

func (s *APITestSuite) TestProtectedRouteWithoutToken() {
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestAccountLifecycle() {
	id := s.createAccount("wallet", 100)
	s.InDelta(100, s.accountBalance(id), 0.001)

	body := s.request(http.MethodGet, "/accounts", nil, http.StatusOK)
	data := s.data(body)
	s.InDelta(100, data["total_balance"].(float64), 0.001)

	s.request(http.MethodPatch, "/accounts/"+id, map[string]any{"name": "main"}, http.StatusOK)

	toggled := s.request(http.MethodPatch, "/accounts/"+id+"/toggle", nil, http.StatusOK)
	s.False(s.data(toggled)["is_active"].(bool))

	// Inactive accounts drop out of the total.
	body = s.request(http.MethodGet, "/accounts", nil, http.StatusOK)
	s.InDelta(0, s.data(body)["total_balance"].(float64), 0.001)

	s.request(http.MethodDelete, "/accounts/"+id, nil, http.StatusNoContent)
	s.request(http.MethodGet, "/accounts/"+id, nil, http.StatusNotFound)
}

func (s *APITestSuite) TestDuplicateAccountNameRejected() {
	s.createAccount("wallet", 0)
	s.request(http.MethodPost, "/accounts", map[string]any{
		"name": "wallet", "balance": 0,
	}, http.StatusBadRequest)
}

func (s *APITestSuite) TestDuplicateCategoryRejected() {
	s.createCategory("food", "expense")
	s.request(http.MethodPost, "/categories", map[string]any{
		"name": "food", "type": "expense",
	}, http.StatusBadRequest)

	// Same name under the other type is allowed.
	s.request(http.MethodPost, "/categories", map[string]any{
		"name": "food", "type": "income",
	}, http.StatusCreated)
}

func (s *APITestSuite) TestTransactionAdjustsBalance() {
	accountID := s.createAccount("wallet", 100)
	incomeID := s.createCategory("salary", "income")
	expenseID := s.createCategory("food", "expense")

	s.request(http.MethodPost, "/transactions", map[string]any{
		"category_id": incomeID,
		"account_id":  accountID,
		"amount":      50.5,
	}, http.StatusCreated)
	s.InDelta(150.5, s.accountBalance(accountID), 0.001)

	body := s.request(http.MethodPost, "/transactions", map[string]any{
		"category_id": expenseID,
		"account_id":  accountID,
		"amount":      30,
		"comment":     "groceries",
	}, http.StatusCreated)
	s.InDelta(120.5, s.accountBalance(accountID), 0.001)

	recordID := s.data(body)["id"].(string)
	s.request(http.MethodDelete, "/transactions/"+recordID, nil, http.StatusNoContent)
	s.InDelta(150.5, s.accountBalance(accountID), 0.001)
}

func (s *APITestSuite) TestTransferFlow() {
	sourceID := s.createAccount("wallet", 100)
	destinationID := s.createAccount("card", 0)

	body := s.request(http.MethodPost, "/transfers", map[string]any{
		"source_account":      sourceID,
		"destination_account": destinationID,
		"amount":              60,
	}, http.StatusCreated)
	s.InDelta(40, s.accountBalance(sourceID), 0.001)
	s.InDelta(60, s.accountBalance(destinationID), 0.001)

	transferID := s.data(body)["id"].(string)
	s.request(http.MethodPatch, "/transfers/"+transferID, map[string]any{"amount": 45}, http.StatusOK)
	s.InDelta(55, s.accountBalance(sourceID), 0.001)
	s.InDelta(45, s.accountBalance(destinationID), 0.001)

	s.request(http.MethodDelete, "/transfers/"+transferID, nil, http.StatusNoContent)
	s.InDelta(100, s.accountBalance(sourceID), 0.001)
	s.InDelta(0, s.accountBalance(destinationID), 0.001)
}

func (s *APITestSuite) TestTransferClientTimestampPersisted() {
	sourceID := s.createAccount("wallet", 100)
	destinationID := s.createAccount("card", 0)

	want := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	body := s.request(http.MethodPost, "/transfers", map[string]any{
		"source_account":      sourceID,
		"destination_account": destinationID,
		"amount":              60,
		"timestamp":           want.Format(time.RFC3339),
	}, http.StatusCreated)

	transferID := s.data(body)["id"].(string)
	got := s.request(http.MethodGet, "/transfers/"+transferID, nil, http.StatusOK)
	stamped, err := time.Parse(time.RFC3339, s.data(got)["timestamp"].(string))
	s.Require().NoError(err)
	s.True(want.Equal(stamped))
}

func (s *APITestSuite) TestTransferInsufficientFunds() {
	sourceID := s.createAccount("wallet", 10)
	destinationID := s.createAccount("card", 0)

	s.request(http.MethodPost, "/transfers", map[string]any{
		"source_account":      sourceID,
		"destination_account": destinationID,
		"amount":              11,
	}, http.StatusUnprocessableEntity)
}

func (s *APITestSuite) TestDebtFlow() {
	accountID := s.createAccount("wallet", 100)

	s.request(http.MethodPost, "/debts/accounts", nil, http.StatusCreated)

	body := s.request(http.MethodPost, "/debts", map[string]any{
		"account_id":           accountID,
		"type":                 "debt",
		"amount":               50,
		"borrower_description": "from alex",
	}, http.StatusCreated)
	debtID := s.data(body)["id"].(string)
	s.InDelta(150, s.accountBalance(accountID), 0.001)

	list := s.request(http.MethodGet, "/debts?type=debt", nil, http.StatusOK)
	s.EqualValues(1, s.data(list)["count"].(float64))

	s.request(http.MethodPost, fmt.Sprintf("/debts/%s/repay", debtID), map[string]any{
		"amount": 20,
	}, http.StatusOK)
	s.InDelta(130, s.accountBalance(accountID), 0.001)

	detail := s.request(http.MethodGet, "/debts/"+debtID, nil, http.StatusOK)
	s.InDelta(30, s.data(detail)["amount"].(float64), 0.001)

	// Over-repaying the remaining principal is rejected.
	s.request(http.MethodPost, fmt.Sprintf("/debts/%s/repay", debtID), map[string]any{
		"amount": 30.01,
	}, http.StatusUnprocessableEntity)

	// Paying it off closes the debt.
	s.request(http.MethodPost, fmt.Sprintf("/debts/%s/repay", debtID), map[string]any{
		"amount": 30,
	}, http.StatusOK)
	s.InDelta(100, s.accountBalance(accountID), 0.001)
	s.request(http.MethodGet, "/debts/"+debtID, nil, http.StatusNotFound)
}

func (s *APITestSuite) TestStatistics() {
	accountID := s.createAccount("wallet", 1000)
	foodID := s.createCategory("food", "expense")
	transportID := s.createCategory("transport", "expense")

	now := time.Now().UTC()
	for _, c := range []struct {
		category string
		amount   float64
	}{{foodID, 20}, {foodID, 30}, {transportID, 10}} {
		s.request(http.MethodPost, "/transactions", map[string]any{
			"category_id": c.category,
			"account_id":  accountID,
			"amount":      c.amount,
			"occurred_at": now.Format(time.RFC3339),
		}, http.StatusCreated)
	}

	path := fmt.Sprintf("/statistics?year=%d&month=%d&type=expense", now.Year(), int(now.Month()))
	body := s.request(http.MethodGet, path, nil, http.StatusOK)
	data := s.data(body)
	s.InDelta(60, data["total_amount"].(float64), 0.001)

	rows := data["statistics"].([]any)
	s.Require().Len(rows, 2)
	first := rows[0].(map[string]any)
	s.Equal("food", first["category_name"])
	s.InDelta(50, first["total_amount"].(float64), 0.001)

	analytics := s.request(http.MethodGet, fmt.Sprintf("/analytics?year=%d&type=expense", now.Year()), nil, http.StatusOK)
	months := s.data(analytics)["analytics"].([]any)
	s.Require().NotEmpty(months)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
