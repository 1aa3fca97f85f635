package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/repository"
)

// CustomerHandler serves the customer listing endpoint.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

// CustomerResponse is a customer as exposed over the API.
// MembershipStatus is true for members.
type CustomerResponse struct {
	CustomerID       int64  `json:"customer_id"`
	FName            string `json:"fname"`
	LName            string `json:"lname"`
	MembershipStatus bool   `json:"membership_status"`
}

// List returns all customers ordered by id.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.Customers.ListAll(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	out := make([]CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, CustomerResponse{
			CustomerID:       cu.CustomerID,
			FName:            cu.FName,
			LName:            cu.LName,
			MembershipStatus: cu.MembershipStatus,
		})
	}
	return c.JSON(http.StatusOK, out)
}
