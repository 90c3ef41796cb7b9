package common

import (
	"encoding/json"
	"go-quiz-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	e.SendWith(w, nil)
}

// SendWith writes the error as JSON. Internal errors are logged; fields let
// the caller attach request-scoped context such as the request id.
func (e *AppError) SendWith(w http.ResponseWriter, fields logrus.Fields) {
	if e.Err != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		})
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		entry.Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
