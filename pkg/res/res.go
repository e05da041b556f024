package res

import (
	"encoding/json"
	"net/http"

	"github.com/Dhoini/invoice-dashboard/pkg/logger"
)

// ErrorResponse представляет формат JSON-ответа для ошибок.
type ErrorResponse struct {
	Error     string `json:"error"`                // Сообщение об ошибке (для пользователя)
	ErrorCode int    `json:"error_code,omitempty"` // Код ошибки (для программной обработки)
	Details   any    `json:"details,omitempty"`    // Детали ошибки
}

// JsonResponse отправляет JSON-ответ с заданным статусом.
func JsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// JsonErrorResponse отправляет JSON ответ ошибки. 5xx логируются как ошибки,
// остальное как предупреждения.
func JsonErrorResponse(w http.ResponseWriter, errResponse ErrorResponse, status int, log *logger.Logger) {
	JsonResponse(w, errResponse, status)
	if status >= http.StatusInternalServerError {
		log.Errorw("Error response", "status", status, "error", errResponse.Error, "details", errResponse.Details)
		return
	}
	log.Warnw("Error response", "status", status, "error", errResponse.Error)
}

// Error короткая форма JsonErrorResponse: код ошибки совпадает со статусом
func Error(w http.ResponseWriter, status int, message string, log *logger.Logger) {
	JsonErrorResponse(w, ErrorResponse{Error: message, ErrorCode: status}, status, log)
}
