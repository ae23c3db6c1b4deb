package rest

import (
	"net/http"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/lists"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/metrics"
	"bookstore-be/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter wires every route. limiter may be nil.
func NewRouter(h *Handler, verifier auth.TokenVerifier, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(metrics.InstrumentHandler)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/sign-up", h.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/sign-in", h.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/get-all-books", h.GetAllBooks).Methods(http.MethodGet)
	api.HandleFunc("/get-recent-books", h.GetRecentBooks).Methods(http.MethodGet)
	api.HandleFunc("/get-book-by-id/{id}", h.GetBookByID).Methods(http.MethodGet)

	gated := api.NewRoute().Subrouter()
	gated.Use(middleware.AuthMiddleware(verifier))

	gated.HandleFunc("/get-user-information", h.GetUserInformation).Methods(http.MethodGet)
	gated.HandleFunc("/update-address", h.UpdateAddress).Methods(http.MethodPut)

	gated.HandleFunc("/add-book", h.AddBook).Methods(http.MethodPost)
	gated.HandleFunc("/update-book/{bookid}", h.UpdateBook).Methods(http.MethodPut)
	gated.HandleFunc("/delete-book/{bookid}", h.DeleteBook).Methods(http.MethodDelete)

	gated.HandleFunc("/add-book-to-favourite/{bookid}", h.addToList(lists.Favourites, "AddFavourite")).Methods(http.MethodPut)
	gated.HandleFunc("/remove-book-from-favourite/{bookid}", h.removeFromList(lists.Favourites, "RemoveFavourite")).Methods(http.MethodPut)
	gated.HandleFunc("/get-favourite-books", h.getList(lists.Favourites, "GetFavourites")).Methods(http.MethodGet)

	gated.HandleFunc("/add-to-cart/{bookid}", h.addToList(lists.Cart, "AddToCart")).Methods(http.MethodPut)
	gated.HandleFunc("/remove-from-cart/{bookid}", h.removeFromList(lists.Cart, "RemoveFromCart")).Methods(http.MethodPut)
	gated.HandleFunc("/get-user-cart", h.getList(lists.Cart, "GetCart")).Methods(http.MethodGet)

	gated.HandleFunc("/place-order", h.PlaceOrder).Methods(http.MethodPost)
	gated.HandleFunc("/reconcile-order/{id}", h.ReconcileOrder).Methods(http.MethodPost)
	gated.HandleFunc("/get-order-history", h.GetOrderHistory).Methods(http.MethodGet)
	gated.HandleFunc("/get-all-orders", h.GetAllOrders).Methods(http.MethodGet)
	gated.HandleFunc("/update-status/{id}", h.UpdateStatus).Methods(http.MethodPut)

	return r
}
