package rest

import (
	"net/http"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/user"
	"bookstore-be/internal/utils"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInUser struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
}

type signInResponse struct {
	Message string     `json:"message"`
	User    signInUser `json:"user"`
	Token   string     `json:"token"`
}

type addressRequest struct {
	Address string `json:"address"`
}

type addressResponse struct {
	Message string `json:"message"`
	User    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Address  string `json:"address"`
	} `json:"user"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "SignUp", err)
		return
	}

	if _, err := h.UserSvc.Register(r.Context(), in); err != nil {
		writeError(w, r, "SignUp", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Response{Message: "User registered successfully."})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "SignIn", err)
		return
	}

	token, u, err := h.UserSvc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, "SignIn", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, signInResponse{
		Message: "Sign-in successful.",
		User: signInUser{
			ID:       u.ID,
			Email:    u.Email,
			Username: u.Username,
			Role:     u.Role,
		},
		Token: token,
	})
}

func (h *Handler) GetUserInformation(w http.ResponseWriter, r *http.Request) {
	p, err := h.UserSvc.GetProfile(r.Context(), identity(r).ID)
	if err != nil {
		writeError(w, r, "GetUserInformation", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Response{
		Status:  statusSuccess,
		Message: "User information retrieved successfully.",
		Data:    p,
	})
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var in addressRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, "UpdateAddress", err)
		return
	}

	u, err := h.UserSvc.UpdateAddress(r.Context(), identity(r).ID, in.Address)
	if err != nil {
		writeError(w, r, "UpdateAddress", err)
		return
	}

	resp := addressResponse{Message: "Address updated successfully."}
	resp.User.ID = u.ID
	resp.User.Username = u.Username
	resp.User.Address = u.Address
	utils.WriteJSON(w, http.StatusOK, resp)
}
