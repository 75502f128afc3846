package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/runnerr0/strand/internal/filter"
	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

const naturalLanguagePath = "filter-by-natural-language"

// Messages returned in {"error": ...} bodies.
const (
	msgInvalidBody   = `Invalid request body or missing "value" field`
	msgInvalidType   = `Invalid data type for "value" (must be string)`
	msgConflict      = "String already exists in the system"
	msgNotFound      = "String does not exist in the system"
	msgMissingQuery  = `Missing "query" parameter`
	msgBodyTooLarge  = "Request body too large"
	msgInternalError = "Internal server error"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

type listResponse struct {
	Data           []service.StringView `json:"data"`
	Count          int                  `json:"count"`
	FiltersApplied map[string]string    `json:"filters_applied"`
}

type interpretedQuery struct {
	Original      string         `json:"original"`
	ParsedFilters filter.Filters `json:"parsed_filters"`
}

type naturalResponse struct {
	Data             []service.StringView `json:"data"`
	Count            int                  `json:"count"`
	InterpretedQuery interpretedQuery     `json:"interpreted_query"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /strings
func (s *Server) handleCreate(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		s.fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	raw, ok := body["value"]
	if !ok || raw == nil {
		s.fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	value, ok := raw.(string)
	if !ok {
		s.fail(c, http.StatusUnprocessableEntity, msgInvalidType)
		return
	}

	rec, err := s.svc.Create(c.Request.Context(), value)
	if err != nil {
		s.failErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.ViewOf(*rec))
}

// GET /strings/{value} and GET /strings/filter-by-natural-language
func (s *Server) handleGet(c *gin.Context) {
	value := strings.TrimPrefix(c.Param("value"), "/")
	if value == naturalLanguagePath {
		s.handleNatural(c)
		return
	}

	rec, err := s.svc.Get(c.Request.Context(), value)
	if err != nil {
		s.failErr(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ViewOf(*rec))
}

// GET /strings
func (s *Server) handleList(c *gin.Context) {
	params := c.Request.URL.Query()

	f, err := filter.FromQuery(params)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.svc.List(c.Request.Context(), f)
	if err != nil {
		s.failErr(c, err)
		return
	}

	applied := make(map[string]string, len(params))
	for k, vs := range params {
		if len(vs) > 0 {
			applied[k] = vs[len(vs)-1]
		}
	}

	c.JSON(http.StatusOK, listResponse{
		Data:           service.ViewsOf(records),
		Count:          len(records),
		FiltersApplied: applied,
	})
}

// GET /strings/filter-by-natural-language?query=...
func (s *Server) handleNatural(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		s.fail(c, http.StatusBadRequest, msgMissingQuery)
		return
	}

	result, err := s.svc.Query(c.Request.Context(), query)
	if err != nil {
		s.failErr(c, err)
		return
	}

	c.JSON(http.StatusOK, naturalResponse{
		Data:  service.ViewsOf(result.Records),
		Count: len(result.Records),
		InterpretedQuery: interpretedQuery{
			Original:      result.Original,
			ParsedFilters: result.ParsedFilters,
		},
	})
}

// DELETE /strings/{value}
func (s *Server) handleDelete(c *gin.Context) {
	value := strings.TrimPrefix(c.Param("value"), "/")

	if err := s.svc.Delete(c.Request.Context(), value); err != nil {
		s.failErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorBody{Error: msg})
}

// failErr writes the response for err. Unexpected errors are logged.
func (s *Server) failErr(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			"error", err,
		)
	}
	s.fail(c, status, msg)
}

// statusFor maps service errors onto HTTP statuses and client messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, msgConflict
	case errors.Is(err, filter.ErrInvalidParam):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
