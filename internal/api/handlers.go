package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/10xdevs/flashgen/internal/auth"
	"github.com/10xdevs/flashgen/internal/core"
	"github.com/10xdevs/flashgen/internal/review"
	"github.com/10xdevs/flashgen/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

const minPasswordLen = 8

type APIHandler struct {
	store       *store.Store
	generations *core.GenerationService
	flashcards  *core.FlashcardService
	stats       *core.StatsService
	reviews     *review.Manager
	jwtSecret   string
	log         *zap.SugaredLogger
}

func NewAPIHandler(
	st *store.Store,
	generations *core.GenerationService,
	flashcards *core.FlashcardService,
	stats *core.StatsService,
	reviews *review.Manager,
	jwtSecret string,
	log *zap.SugaredLogger,
) *APIHandler {
	return &APIHandler{
		store:       st,
		generations: generations,
		flashcards:  flashcards,
		stats:       stats,
		reviews:     reviews,
		jwtSecret:   jwtSecret,
		log:         log,
	}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required", nil)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := auth.ValidateJWT(tokenString, h.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
			return
		}

		user, err := h.store.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user", nil)
				return
			}
			h.log.Errorw("failed to resolve user identity", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process user identity", nil)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}

	fields := make(map[string]string)
	if !strings.Contains(req.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", fields)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Errorw("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password", nil)
		return
	}

	user := store.User{Email: req.Email, PasswordHash: hash}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered", nil)
			return
		}
		h.log.Errorw("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", nil)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required", nil)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Errorw("failed to look up user", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
		return
	}

	token, err := auth.GenerateJWT(user.ID, h.jwtSecret)
	if err != nil {
		h.log.Errorw("failed to generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetUserStats(r.Context(), userIDFrom(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
