package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/theaterops/theater-dashboard/internal/handler"
)

// Handlers aggregates every handler the router wires up.
type Handlers struct {
	Health    *handler.HealthHandler
	Movies    *handler.MovieHandler
	Showtimes *handler.ShowtimeHandler
	Customers *handler.CustomerHandler
	Tickets   *handler.TicketHandler
	Reports   *handler.ReportHandler
}

// RegisterRoutes binds every endpoint to its handler. All routes are
// public; there is no authentication surface in this service.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// Liveness plus database reachability, for load balancers and monitors.
	e.GET("/health", h.Health.Check)

	// Movie listings.
	e.GET("/movies", h.Movies.List)
	e.GET("/movies/now-playing", h.Movies.NowPlaying)
	e.GET("/movies/upcoming", h.Movies.Upcoming)

	// Showtime and customer listings.
	e.GET("/showtimes", h.Showtimes.List)
	e.GET("/customers", h.Customers.List)
	e.GET("/customers/:customer_id/tickets", h.Tickets.CustomerHistory)

	// Ticket sales and the transactional purchase.
	e.POST("/tickets/purchase", h.Tickets.Purchase)
	e.GET("/tickets/today", h.Tickets.SoldToday)
	e.GET("/tickets", h.Tickets.List)

	// Reports.
	g := e.Group("/reports")
	g.GET("/movie-showtimes", h.Reports.MovieShowtimes)
	g.GET("/showtime-availability", h.Reports.ShowtimeAvailability)
	g.GET("/concessions/top-categories", h.Reports.TopConcessionCategories)
	g.GET("/movie-lifetime-sales", h.Reports.MovieLifetimeSales)
	g.GET("/upcoming-showtimes", h.Reports.UpcomingShowtimes)
	g.GET("/daily-ticket-sales", h.Reports.DailyTicketSales)
	g.GET("/movies/:movie_id/profit", h.Reports.MovieProfit)
}
