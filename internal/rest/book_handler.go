package rest

import (
	"net/http"

	"bookstore-be/internal/book"
	"bookstore-be/internal/utils"

	"github.com/gorilla/mux"
)

func (h *Handler) AddBook(w http.ResponseWriter, r *http.Request) {
	var in book.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "AddBook", err)
		return
	}

	b, err := h.BookSvc.Create(r.Context(), identity(r), in)
	if err != nil {
		writeError(w, r, "AddBook", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Response{
		Status:  statusSuccess,
		Message: "Book added successfully!",
		Data:    b,
	})
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var in book.UpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "UpdateBook", err)
		return
	}

	b, err := h.BookSvc.Update(r.Context(), identity(r), mux.Vars(r)["bookid"], in)
	if err != nil {
		writeError(w, r, "UpdateBook", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Book updated successfully.",
		Data:    b,
	})
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.BookSvc.Delete(r.Context(), identity(r), mux.Vars(r)["bookid"]); err != nil {
		writeError(w, r, "DeleteBook", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{Message: "Book deleted successfully."})
}

func (h *Handler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookSvc.List(r.Context())
	if err != nil {
		writeError(w, r, "GetAllBooks", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Books retrieved successfully.",
		Data:    books,
	})
}

func (h *Handler) GetRecentBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookSvc.ListRecent(r.Context())
	if err != nil {
		writeError(w, r, "GetRecentBooks", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Recent books retrieved successfully.",
		Data:    books,
	})
}

func (h *Handler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	b, err := h.BookSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "GetBookByID", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "Book retrieved successfully.",
		Data:    b,
	})
}
