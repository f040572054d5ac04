package users

import (
	"encoding/json"
	"net/http"
	"time"

	"animal-registry/internal/middleware"
	"animal-registry/internal/platform/logger"
	"animal-registry/internal/platform/respond"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(map[string]any{"module": "users"})

	r.Route("/api/v1/users", func(ur chi.Router) {
		ur.Post("/register", registerHandler(svc, log))
		ur.Post("/login", loginHandler(svc, log))
		ur.With(middleware.RequireClaims).Get("/me", meHandler(svc, log))
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.RuneLength(MinUsernameLength, MaxUsernameLength),
			is.Alphanumeric,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(MinPasswordLength, MaxPasswordLength),
		),
	)
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// registerHandler godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  users.registerRequest  true  "Credenciales"
// @Success      201  {object}  users.userResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/users/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			respond.Fail(w, log, err)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{Username: req.Username, Password: req.Password})
		if err != nil {
			respond.Fail(w, log, err)
			return
		}

		log.Info("user registered", map[string]any{"user_id": u.ID})
		respond.JSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary      Login (OAuth2 password form)
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  users.tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid form")
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if username == "" || password == "" {
			respond.Detail(w, http.StatusBadRequest, "username and password are required")
			return
		}

		tok, err := svc.Login(r.Context(), username, password)
		if err != nil {
			if respond.StatusFor(err) == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
	}
}

// meHandler godoc
// @Summary      Usuario actual
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  users.userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.Current(r.Context(), claims)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
