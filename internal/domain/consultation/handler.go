package consultation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmed/quickmed/internal/domain/identity"
	"github.com/quickmed/quickmed/internal/platform/apperr"
	"github.com/quickmed/quickmed/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires history persistence and retrieval. Both endpoints act
// on the authenticated user only.
func (h *Handler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	api.POST("/gemini/save-history", h.saveHistory, auth)
	api.GET("/auth/chat-history", h.chatHistory, auth)
}

type saveRequest struct {
	Symptoms     []string `json:"symptoms"`
	Diagnosis    string   `json:"diagnosis"`
	Treatment    *string  `json:"treatment"`
	Medications  *string  `json:"medications"`
	HomeRemedies *string  `json:"homeRemedies"`
	FileAnalysis *string  `json:"fileAnalysis"`
}

func (h *Handler) saveHistory(c echo.Context) error {
	u, err := identity.UserFromContext(c)
	if err != nil {
		return err
	}

	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.KindValidation, "invalid request body")
	}

	rec, err := h.svc.Save(c.Request().Context(), u.ID, SaveInput{
		Symptoms:     req.Symptoms,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Medications:  req.Medications,
		HomeRemedies: req.HomeRemedies,
		FileAnalysis: req.FileAnalysis,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) chatHistory(c echo.Context) error {
	u, err := identity.UserFromContext(c)
	if err != nil {
		return err
	}

	p := pagination.FromContext(c)
	if p.Limit > historyLimit {
		p.Limit = historyLimit
	}

	records, total, err := h.svc.ListRecent(c.Request().Context(), u.ID, p.Limit, p.Offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, p.Limit, p.Offset))
}
