package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/auth"
	"bookstore-be/internal/book"
	"bookstore-be/internal/lists"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/order"
	"bookstore-be/internal/user"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const statusSuccess = "Success"

const maxBodyBytes = 1 << 20

var errBadBody = apperror.Validation("Invalid request body.")

// Handler exposes the services over JSON.
type Handler struct {
	UserSvc  user.Service
	BookSvc  book.Service
	ListSvc  lists.Service
	OrderSvc order.Service
}

// writeError maps err to its status and public message. Anything that is
// not a known kind is logged and reported as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := apperror.Status(err)
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "rest"),
		zap.String("method", op),
		zap.Int("status", status),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Info("request rejected", zap.Error(err))
	}
	utils.WriteJSONError(w, apperror.Message(err), status)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

// identity is only called behind the access gate, which always sets it.
func identity(r *http.Request) auth.Identity {
	id, _ := utils.IdentityFromContext(r.Context())
	return id
}
