package rest

import (
	"net/http"

	"bookstore-be/internal/book"
	"bookstore-be/internal/lists"
	"bookstore-be/internal/utils"

	"github.com/gorilla/mux"
)

type listMessages struct {
	added, alreadyPresent, removed, notPresent, retrieved string
}

var listText = map[lists.Kind]listMessages{
	lists.Favourites: {
		added:          "Book added to favourites.",
		alreadyPresent: "Book is already in favourites.",
		removed:        "Book removed from favourites.",
		notPresent:     "Book was not in favourites.",
		retrieved:      "Favourite books retrieved successfully.",
	},
	lists.Cart: {
		added:          "Book added to cart.",
		alreadyPresent: "Book is already in the cart.",
		removed:        "Book removed from cart.",
		notPresent:     "Book was not in the cart.",
		retrieved:      "User cart retrieved successfully.",
	},
}

func (h *Handler) addToList(kind lists.Kind, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.ListSvc.Add(r.Context(), kind, identity(r).ID, mux.Vars(r)["bookid"])
		if err != nil {
			writeError(w, r, op, err)
			return
		}

		msg := listText[kind].added
		if res.Present {
			msg = listText[kind].alreadyPresent
		}
		utils.WriteJSON(w, http.StatusOK, utils.Response{Status: statusSuccess, Message: msg})
	}
}

func (h *Handler) removeFromList(kind lists.Kind, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.ListSvc.Remove(r.Context(), kind, identity(r).ID, mux.Vars(r)["bookid"])
		if err != nil {
			writeError(w, r, op, err)
			return
		}

		msg := listText[kind].removed
		if !res.Present {
			msg = listText[kind].notPresent
		}
		utils.WriteJSON(w, http.StatusOK, utils.Response{Status: statusSuccess, Message: msg, Data: nonNilIDs(res.Items)})
	}
}

func (h *Handler) getList(kind lists.Kind, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := h.ListSvc.Get(r.Context(), kind, identity(r).ID)
		if err != nil {
			writeError(w, r, op, err)
			return
		}
		if books == nil {
			books = []book.Book{}
		}

		utils.WriteJSON(w, http.StatusOK, utils.Response{
			Status:  statusSuccess,
			Message: listText[kind].retrieved,
			Data:    books,
		})
	}
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
