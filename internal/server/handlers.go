package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
)

// ConvertResponse is the JSON payload returned by /api/v1/convert.
type ConvertResponse struct {
	Miles    float64 `json:"miles"`
	Km       float32 `json:"km"`
	Strategy string  `json:"strategy"`
	Duration string  `json:"duration"`
}

// FibResponse is the JSON payload returned by /api/v1/fib.
type FibResponse struct {
	Miles int64  `json:"miles"`
	Km    uint64 `json:"km"`
}

// ErrorResponse is the standardized JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleHealth responds to health check requests with a 200 OK status and
// a JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleStrategies returns the list of available conversion strategies as
// a JSON array.
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"strategies": s.service.Strategies(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleConvert processes distance conversion requests. It parses the
// query parameters 'miles' (the distance) and 'strategy' (the conversion
// strategy), executes the conversion, and returns the result in JSON
// format.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	milesStr := r.URL.Query().Get("miles")
	if milesStr == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'miles' parameter")
		return
	}
	miles, err := strconv.ParseFloat(milesStr, 64)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'miles' parameter: must be a number")
		return
	}

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "linear"
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Convert(ctx, miles, strategy)
	duration := time.Since(start)

	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		s.writeErrorResponse(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, ConvertResponse{
		Miles:    res.Miles,
		Km:       res.Km,
		Strategy: res.Strategy,
		Duration: duration.String(),
	})
}

// handleFib processes integer Fibonacci conversion requests. The 'miles'
// parameter must be an integer between 1 and 93.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	milesStr := r.URL.Query().Get("miles")
	if milesStr == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'miles' parameter")
		return
	}
	miles, err := strconv.ParseInt(milesStr, 10, 64)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'miles' parameter: must be an integer")
		return
	}

	km, err := s.service.FibKilometers(miles)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, FibResponse{Miles: miles, Km: km})
}

// writeJSONResponse writes a JSON response with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
