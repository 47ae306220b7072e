package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dviradani/amazon-backend/internal/auth"
	"github.com/dviradani/amazon-backend/internal/domain"
	"github.com/dviradani/amazon-backend/internal/store"
)

// SignUpInput defines the expected input for creating a user account.
type SignUpInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1"`
}

// SignInInput defines the expected input for authenticating.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the payload returned by both signup and signin.
type AuthResponse struct {
	ID    int64  `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *HTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ERROR: SignUp failed to hash password: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	createdUser, err := h.userStore.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			respondWithError(w, http.StatusBadRequest, "email already exists")
			return
		}
		log.Printf("ERROR: SignUp store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.respondWithAuth(w, createdUser)
}

func (h *HTTPHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input SignInInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// Unknown email and wrong password both report the same undifferentiated
	// 401, so credential probing cannot distinguish them.
	user, err := h.userStore.GetUserByEmail(r.Context(), input.Email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Printf("ERROR: SignIn store operation failed: %v", err)
		}
		respondWithError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	h.respondWithAuth(w, user)
}

// GetUsers is a diagnostic placeholder kept for the storefront's auth probe.
func (h *HTTPHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (h *HTTPHandler) respondWithAuth(w http.ResponseWriter, user *domain.User) {
	token, err := auth.GenerateToken(user, h.authCfg.JWTSecret, h.authCfg.TokenTTL)
	if err != nil {
		log.Printf("ERROR: Failed to generate token for user %d: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondWithJSON(w, http.StatusOK, AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
