// Package http exposes the inventory service over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/application"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
	"github.com/IT21177828/CTSE-Project/internal/shared/apierrors"
)

// inventoryPayload is the wire shape for inventory records.
type inventoryPayload struct {
	ID       int64  `json:"id"`
	SKUCode  string `json:"skuCode"`
	Quantity int    `json:"quantity"`
}

func toPayload(item *domain.Inventory) inventoryPayload {
	return inventoryPayload{ID: item.ID, SKUCode: item.SKUCode, Quantity: item.Quantity}
}

// API wires HTTP transport with the inventory service.
type API struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewAPI creates the inventory HTTP adapter.
func NewAPI(service ports.Service) *API {
	responder := apierrors.NewResponder(
		func(err error) (apierrors.ErrorResponse, bool) {
			if errors.Is(err, application.ErrInvalidInput) {
				return apierrors.BadRequest(err.Error()), true
			}
			return apierrors.ErrorResponse{}, false
		},
		func(err error) (apierrors.ErrorResponse, bool) {
			if errors.Is(err, ports.ErrNotFound) {
				return apierrors.NotFound("Item not found"), true
			}
			return apierrors.ErrorResponse{}, false
		},
		func(err error) (apierrors.ErrorResponse, bool) {
			if errors.Is(err, ports.ErrDuplicateSKU) {
				return apierrors.BadRequest(err.Error()), true
			}
			return apierrors.ErrorResponse{}, false
		},
	)
	return &API{service: service, responder: responder}
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
		{http.MethodGet, "/api/inventory/check", api.Check},
		{http.MethodGet, "/api/inventory/all", api.List},
		{http.MethodPost, "/api/inventory", api.Add},
		{http.MethodPut, "/api/inventory/:id", api.UpdateQuantity},
		{http.MethodDelete, "/api/inventory/:id", api.Delete},
		{http.MethodGet, "/api/inventory/item/:skuCode", api.GetBySKU},
	}
}

// Register installs the routing table on the router.
func (api *API) Register(router gin.IRouter) {
	for _, route := range api.Routes() {
		router.Handle(route.Method, route.Pattern, route.Handler)
	}
}

// Get /api/inventory/check?skuCode=&quantity=
// Check availability and reserve the quantity when in stock.
func (api *API) Check(c *gin.Context) {
	skuCode := c.Query("skuCode")
	if skuCode == "" {
		api.responder.BadRequest(c, "skuCode is required")
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		api.responder.BadRequest(c, "quantity must be an integer")
		return
	}
	inStock, err := api.service.IsInStock(c.Request.Context(), skuCode, quantity)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inStock)
}

// Get /api/inventory/all
func (api *API) List(c *gin.Context) {
	items, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	payloads := make([]inventoryPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, toPayload(item))
	}
	c.JSON(http.StatusOK, payloads)
}

// Post /api/inventory
func (api *API) Add(c *gin.Context) {
	var payload inventoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	item := &domain.Inventory{ID: payload.ID, SKUCode: payload.SKUCode, Quantity: payload.Quantity}
	saved, err := api.service.Add(c.Request.Context(), item)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPayload(saved))
}

// Put /api/inventory/:id?quantity=
func (api *API) UpdateQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		api.responder.BadRequest(c, "quantity must be an integer")
		return
	}
	updated, err := api.service.UpdateQuantity(c.Request.Context(), id, quantity)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(updated))
}

// Delete /api/inventory/:id
func (api *API) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/inventory/item/:skuCode
func (api *API) GetBySKU(c *gin.Context) {
	item, err := api.service.GetBySKU(c.Request.Context(), c.Param("skuCode"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(item))
}

func parseIDParam(c *gin.Context, responder *apierrors.Responder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responder.BadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}
