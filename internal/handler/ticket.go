package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/queue"
	"github.com/theaterops/theater-dashboard/internal/repository"
)

// TicketHandler serves ticket sale listings, customer purchase history and
// the transactional purchase endpoint. Publish, when non-nil, is invoked
// after a committed purchase to emit a ticket.purchased event; publish
// failures are logged and never affect the response.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Publish func(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// TicketSaleResponse is a ticket sale as exposed over the API.
type TicketSaleResponse struct {
	TicketSaleID   int64     `json:"ticket_sale_id"`
	CustomerID     int64     `json:"customer_id"`
	ShowtimeID     int64     `json:"showtime_id"`
	TicketPrice    float64   `json:"ticket_price"`
	TimeTicketSold time.Time `json:"time_ticket_sold"`
}

// TicketHistoryResponse is one entry of a customer's purchase history.
type TicketHistoryResponse struct {
	TicketSaleID   int64     `json:"ticket_sale_id"`
	MovieTitle     string    `json:"movie_title"`
	ShowtimeID     int64     `json:"showtime_id"`
	TheaterID      int64     `json:"theater_id"`
	StartTime      time.Time `json:"start_time"`
	TicketPrice    float64   `json:"ticket_price"`
	TimeTicketSold time.Time `json:"time_ticket_sold"`
}

// PurchaseRequest is the body of POST /tickets/purchase.
type PurchaseRequest struct {
	CustomerID int64 `json:"customer_id"`
	ShowtimeID int64 `json:"showtime_id"`
}

// PurchaseResponse reports the outcome of a purchase attempt.
type PurchaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// List returns every ticket sale, most recent first.
func (h *TicketHandler) List(c echo.Context) error {
	return h.respond(c, h.Tickets.ListAll)
}

// SoldToday returns the ticket sales recorded today.
func (h *TicketHandler) SoldToday(c echo.Context) error {
	return h.respond(c, h.Tickets.ListSoldToday)
}

func (h *TicketHandler) respond(c echo.Context, list func(context.Context) ([]repository.TicketSale, error)) error {
	sales, err := list(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	out := make([]TicketSaleResponse, 0, len(sales))
	for _, t := range sales {
		out = append(out, TicketSaleResponse{
			TicketSaleID:   t.TicketSaleID,
			CustomerID:     t.CustomerID,
			ShowtimeID:     t.ShowtimeID,
			TicketPrice:    t.TicketPrice,
			TimeTicketSold: t.TimeTicketSold,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// CustomerHistory returns the purchase history of one customer, most
// recent first. A customer with no purchases gets an empty list.
func (h *TicketHandler) CustomerHistory(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil || customerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_id"})
	}
	entries, err := h.Tickets.HistoryByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return dbError(c, err)
	}
	out := make([]TicketHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TicketHistoryResponse{
			TicketSaleID:   e.TicketSaleID,
			MovieTitle:     e.MovieTitle,
			ShowtimeID:     e.ShowtimeID,
			TheaterID:      e.TheaterID,
			StartTime:      e.StartTime,
			TicketPrice:    e.TicketPrice,
			TimeTicketSold: e.TimeTicketSold,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Purchase processes a ticket purchase by calling the database's
// Process_Ticket_Purchase procedure inside a transaction. Three outcomes:
// commit and a success body; a rule violation raised by the procedure or
// its triggers, rolled back and returned as 409 with the database's
// message; or an unexpected failure, rolled back and returned as a server
// error. A rejected purchase is never retried here.
func (h *TicketHandler) Purchase(c echo.Context) error {
	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CustomerID <= 0 || req.ShowtimeID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and showtime_id must be positive"})
	}

	err := h.Tickets.PurchaseTicket(c.Request().Context(), req.CustomerID, req.ShowtimeID)
	if err != nil {
		var rej *repository.PurchaseRejectedError
		if errors.As(err, &rej) {
			return c.JSON(http.StatusConflict, PurchaseResponse{Status: "rejected", Message: rej.Message})
		}
		return dbError(c, err)
	}

	if h.Publish != nil {
		ev := queue.TicketPurchasedEvent{
			CustomerID:  req.CustomerID,
			ShowtimeID:  req.ShowtimeID,
			PurchasedAt: time.Now().UTC().Format(time.RFC3339),
		}
		// Best effort: the sale is committed, eventing must not undo that.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.Publish(ctx, ev); err != nil {
				log.Printf("ticket purchase event publish failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusOK, PurchaseResponse{Status: "success", Message: "Ticket purchased successfully"})
}
