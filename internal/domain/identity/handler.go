package identity

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

const userContextKey = "auth_user"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the auth endpoints onto the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)
	api.GET("/auth/info", h.info, AuthMiddleware(h.svc))
}

type registerRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	DOB        string   `json:"dob"`
	Gender     string   `json:"gender"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	BloodGroup string   `json:"bloodGroup"`
	Allergies  []string `json:"allergies"`
	Conditions []string `json:"conditions"`
}

func (h *Handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.KindValidation, "invalid request body")
	}

	in := RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		HeightCm:   req.Height,
		WeightKg:   req.Weight,
		Allergies:  req.Allergies,
		Conditions: req.Conditions,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return apperr.New(apperr.KindValidation, "dob must be in YYYY-MM-DD format")
		}
		in.DOB = &dob
	}
	if req.Gender != "" {
		in.Gender = &req.Gender
	}
	if req.BloodGroup != "" {
		in.BloodGroup = &req.BloodGroup
	}

	u, token, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.KindValidation, "invalid request body")
	}

	u, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token,
	})
}

func (h *Handler) info(c echo.Context) error {
	u, err := UserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// AuthMiddleware resolves the bearer token and stores the authenticated user
// in the request context. Requests without a valid token never reach the
// wrapped handler.
func AuthMiddleware(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return apperr.New(apperr.KindAuthentication, "missing bearer token")
			}

			u, err := svc.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// UserFromContext returns the user stored by AuthMiddleware.
func UserFromContext(c echo.Context) (*User, error) {
	u, ok := c.Get(userContextKey).(*User)
	if !ok || u == nil {
		return nil, apperr.New(apperr.KindAuthentication, "not authenticated")
	}
	return u, nil
}
