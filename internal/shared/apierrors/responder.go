package apierrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Mapper converts a domain or application error into an ErrorResponse.
// It reports false when it does not recognize the error.
type Mapper func(err error) (ErrorResponse, bool)

// Responder renders ErrorResponse bodies, trying each registered mapper
// before falling back to a generic 500.
type Responder struct {
	mappers []Mapper
}

// NewResponder creates a responder with the given mapper chain.
func NewResponder(mappers ...Mapper) *Responder {
	return &Responder{mappers: mappers}
}

// AddMapper appends a mapper to the chain.
func (r *Responder) AddMapper(mapper Mapper) {
	r.mappers = append(r.mappers, mapper)
}

// Respond writes the response with the request path filled in.
func (r *Responder) Respond(c *gin.Context, resp ErrorResponse) {
	if resp.Path == "" {
		resp.Path = c.Request.URL.Path
	}
	c.JSON(resp.Status, resp)
}

// RespondError maps err through the chain; unmapped errors become a
// generic 500 so internals never leak to callers.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if resp, ok := mapper(err); ok {
			r.Respond(c, resp)
			return
		}
	}
	r.Respond(c, Internal())
}

// BadRequest writes a 400 with the given message.
func (r *Responder) BadRequest(c *gin.Context, message string) {
	r.Respond(c, BadRequest(message))
}

// NotFound writes a 404 with the given message.
func (r *Responder) NotFound(c *gin.Context, message string) {
	r.Respond(c, NotFound(message))
}

// StatusFromError extracts the mapped status, defaulting to 500.
func (r *Responder) StatusFromError(err error) int {
	for _, mapper := range r.mappers {
		if resp, ok := mapper(err); ok {
			return resp.Status
		}
	}
	return http.StatusInternalServerError
}
