// Package http exposes order placement over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	"github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
	"github.com/IT21177828/CTSE-Project/internal/shared/apierrors"
)

// orderRequest is the wire shape of the order placement request. The contact
// block rides along only to address the confirmation event.
type orderRequest struct {
	SKUCode     string  `json:"skuCode" binding:"required"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity" binding:"required"`
	UserDetails struct {
		Email     string `json:"email" binding:"required"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"userDetails" binding:"required"`
}

// API wires HTTP transport with the order workflow.
type API struct {
	workflows ports.WorkflowOrchestrator
	responder *apierrors.Responder
}

// NewAPI creates the order HTTP adapter.
func NewAPI(workflows ports.WorkflowOrchestrator) *API {
	responder := apierrors.NewResponder(
		func(err error) (apierrors.ErrorResponse, bool) {
			var outOfStock *application.OutOfStockError
			if errors.As(err, &outOfStock) {
				return apierrors.BadRequest(outOfStock.Error()), true
			}
			return apierrors.ErrorResponse{}, false
		},
	)
	return &API{workflows: workflows, responder: responder}
}

// Route binds one verb/path pair to its handler.
type Route struct {
	Method  string
	Pattern string
	Handler gin.HandlerFunc
}

// Routes returns the explicit routing table, built once at startup.
func (api *API) Routes() []Route {
	return []Route{
		{http.MethodPost, "/api/order", api.PlaceOrder},
	}
}

// Register installs the routing table on the router.
func (api *API) Register(router gin.IRouter) {
	for _, route := range api.Routes() {
		router.Handle(route.Method, route.Pattern, route.Handler)
	}
}

// Post /api/order
// Runs the placement flow and answers with a plain confirmation string. The
// body is intentionally not the order record; callers that need it can listen
// for the OrderPlaced event instead.
func (api *API) PlaceOrder(c *gin.Context) {
	var request orderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	input := ports.PlaceOrderInput{
		SKUCode:   request.SKUCode,
		Quantity:  request.Quantity,
		Price:     request.Price,
		Email:     request.UserDetails.Email,
		FirstName: request.UserDetails.FirstName,
		LastName:  request.UserDetails.LastName,
	}
	if _, err := api.workflows.PlaceOrder(c.Request.Context(), input); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, "Order Placed Successfully")
}
