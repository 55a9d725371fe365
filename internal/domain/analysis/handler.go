package analysis

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmed/quickmed/internal/platform/apperr"
	"github.com/quickmed/quickmed/internal/platform/report"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/gemini/cause", h.section(SectionCause, "Success"))
	api.POST("/gemini/treatment", h.section(SectionTreatment, "Treatment analysis completed successfully"))
	api.POST("/gemini/medication", h.section(SectionMedication, "Success"))
	api.POST("/gemini/home-remedies", h.section(SectionHomeRemedies, "Home remedies analysis completed successfully"))
	api.POST("/gemini/analyze", h.analyze)
	api.POST("/gemini/upload", h.upload)
}

type symptomsRequest struct {
	Symptoms       []string      `json:"symptoms"`
	PatientDetails *Demographics `json:"patientDetails"`
}

func (h *Handler) section(section Section, successMessage string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req symptomsRequest
		if err := c.Bind(&req); err != nil {
			return apperr.New(apperr.KindValidation, "invalid request body")
		}

		text, err := h.svc.AnalyzeSection(c.Request().Context(), section, req.Symptoms, req.PatientDetails)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]string{
			"responseText": text,
			"message":      successMessage,
		})
	}
}

func (h *Handler) analyze(c echo.Context) error {
	var req symptomsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.KindValidation, "invalid request body")
	}

	sections, err := h.svc.Analyze(c.Request().Context(), req.Symptoms, req.PatientDetails)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"sections": sections})
}

func (h *Handler) upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperr.New(apperr.KindValidation, "no file received")
	}

	src, err := header.Open()
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "unreadable upload", err)
	}
	defer src.Close()

	// Read one byte past the cap so oversized uploads are detectable without
	// buffering the whole excess.
	data, err := io.ReadAll(io.LimitReader(src, report.MaxFileSize+1))
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "unreadable upload", err)
	}

	f := report.File{
		Name:      header.Filename,
		MediaType: header.Header.Get(echo.HeaderContentType),
		Size:      header.Size,
		Data:      data,
	}

	text, err := h.svc.AnalyzeReport(c.Request().Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrUnsupportedType):
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, report.ErrUnsupportedType.Msg)
		case errors.Is(err, report.ErrTooLarge):
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, report.ErrTooLarge.Msg)
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"responseText": text,
	})
}
