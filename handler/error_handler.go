package handler

import (
	"go-quiz-api/common"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorHandlingMiddleware adapts AppError-returning handlers to http.Handler.
// When the request carries an id, failures are logged with it for correlation.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appErr := next(w, r)
		if appErr == nil {
			return
		}
		if requestID, ok := r.Context().Value(RequestIDKey).(string); ok {
			appErr.SendWith(w, logrus.Fields{"request_id": requestID})
			return
		}
		appErr.Send(w)
	}
}
