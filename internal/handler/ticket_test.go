package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/queue"
	"github.com/theaterops/theater-dashboard/internal/repository"
)

func newTicketHandler(t *testing.T) (*TicketHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &TicketHandler{Tickets: repository.NewTicketRepo(db)}, mock
}

func postContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPurchaseHandlerSuccess(t *testing.T) {
	h, mock := newTicketHandler(t)
	mock.ExpectBegin()
	mock.ExpectExec("CALL Process_Ticket_Purchase").
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	published := make(chan queue.TicketPurchasedEvent, 1)
	h.Publish = func(ctx context.Context, ev queue.TicketPurchasedEvent) error {
		published <- ev
		return nil
	}

	c, rec := postContext(t, "/tickets/purchase", `{"customer_id":1,"showtime_id":5}`)
	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "success" || body.Message == "" {
		t.Errorf("body = %+v", body)
	}

	select {
	case ev := <-published:
		if ev.CustomerID != 1 || ev.ShowtimeID != 5 {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Error("purchase event was not published")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPurchaseHandlerRejected(t *testing.T) {
	h, mock := newTicketHandler(t)
	mock.ExpectBegin()
	mock.ExpectExec("CALL Process_Ticket_Purchase").
		WithArgs(int64(1), int64(5)).
		WillReturnError(&mysql.MySQLError{Number: 1644, Message: "Showtime is sold out"})
	mock.ExpectRollback()

	h.Publish = func(ctx context.Context, ev queue.TicketPurchasedEvent) error {
		t.Error("rejected purchase must not publish an event")
		return nil
	}

	c, rec := postContext(t, "/tickets/purchase", `{"customer_id":1,"showtime_id":5}`)
	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "rejected" || !strings.Contains(body.Message, "sold out") {
		t.Errorf("rejection must carry the database's reason, got %+v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPurchaseHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"customer_id":`},
		{"zero ids", `{"customer_id":0,"showtime_id":0}`},
		{"negative id", `{"customer_id":-1,"showtime_id":5}`},
		{"missing showtime", `{"customer_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations queued: a query reaching the mock fails the test.
			h, mock := newTicketHandler(t)
			c, rec := postContext(t, "/tickets/purchase", tt.body)
			if err := h.Purchase(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("no database call expected: %v", err)
			}
		})
	}
}

func TestTicketListEmpty(t *testing.T) {
	h, mock := newTicketHandler(t)
	rows := sqlmock.NewRows([]string{"TicketSaleID", "CustomerID", "ShowtimeID", "TicketPrice", "TimeTicketSold"})
	mock.ExpectQuery("FROM TicketSales ORDER BY TimeTicketSold DESC").WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("empty table should serialize as [], got %q", got)
	}
}

func TestCustomerHistoryBadID(t *testing.T) {
	h, _ := newTicketHandler(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers/abc/tickets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("customer_id")
	c.SetParamValues("abc")
	if err := h.CustomerHistory(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
