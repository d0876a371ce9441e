// Package http exposes the product catalog over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IT21177828/CTSE-Project/internal/domains/products/application"
	"github.com/IT21177828/CTSE-Project/internal/domains/products/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/products/ports"
	"github.com/IT21177828/CTSE-Project/internal/shared/apierrors"
)

type productPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func toPayload(product *domain.Product) productPayload {
	return productPayload{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}

// API wires HTTP transport with the catalog service.
type API struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewAPI creates the product HTTP adapter.
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
				return apierrors.NotFound("Product not found"), true
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
		{http.MethodPost, "/api/product", api.Create},
		{http.MethodGet, "/api/product/all", api.List},
		{http.MethodGet, "/api/product/:id", api.GetByID},
		{http.MethodPut, "/api/product/:id", api.Update},
		{http.MethodDelete, "/api/product/:id", api.Delete},
	}
}

// Register installs the routing table on the router.
func (api *API) Register(router gin.IRouter) {
	for _, route := range api.Routes() {
		router.Handle(route.Method, route.Pattern, route.Handler)
	}
}

// Post /api/product
func (api *API) Create(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product := &domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
	}
	saved, err := api.service.Create(c.Request.Context(), product)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPayload(saved))
}

// Get /api/product/all
func (api *API) List(c *gin.Context) {
	products, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	payloads := make([]productPayload, 0, len(products))
	for _, product := range products {
		payloads = append(payloads, toPayload(product))
	}
	c.JSON(http.StatusOK, payloads)
}

// Get /api/product/:id
func (api *API) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder)
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(product))
}

// Put /api/product/:id
func (api *API) Update(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder)
	if !ok {
		return
	}
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product := &domain.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
	}
	updated, err := api.service.Update(c.Request.Context(), product)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(updated))
}

// Delete /api/product/:id
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

func parseIDParam(c *gin.Context, responder *apierrors.Responder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responder.BadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}
