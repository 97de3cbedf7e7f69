package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// apiError — конверт ошибки API.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

// writeDomainError переводит доменные ошибки в HTTP-статусы. Неизвестная
// ошибка считается отказом хранилища.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "session_not_found", "session does not exist or has expired")
	case errors.Is(err, domain.ErrProductNotFound):
		s.writeError(w, http.StatusNotFound, "product_not_found", "product does not exist")
	case errors.Is(err, domain.ErrCartEmpty):
		s.writeError(w, http.StatusConflict, "cart_empty", "cart has no items")
	default:
		s.logger.WithError(err).Error("request failed")
		s.writeError(w, http.StatusBadGateway, "storage_unavailable", "storage request failed")
	}
}
