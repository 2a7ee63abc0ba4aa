package mapping

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ivr/ivr/internal/domain/resolver"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/manufacturers", h.ListManufacturers)
	api.GET("/manufacturers/:id/schema", h.GetSchema)
	api.POST("/manufacturers/:id/resolve", h.Resolve)
	api.POST("/mappings/confirm", h.ConfirmMapping)
}

func (h *Handler) ListManufacturers(c echo.Context) error {
	items, err := h.svc.Manufacturers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"manufacturers": items,
		"total":         len(items),
	})
}

func (h *Handler) GetSchema(c echo.Context) error {
	schema, err := h.svc.GetSchema(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrUnknownManufacturer) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown manufacturer")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, schema)
}

func (h *Handler) Resolve(c echo.Context) error {
	var rc resolver.Context
	if err := c.Bind(&rc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.ResolveForManufacturer(c.Request().Context(), c.Param("id"), &rc)
	if errors.Is(err, ErrUnknownManufacturer) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown manufacturer")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

type confirmMappingRequest struct {
	ManufacturerID string  `json:"manufacturer_id"`
	PartnerField   string  `json:"partner_field"`
	CanonicalField string  `json:"canonical_field"`
	Confidence     float64 `json:"confidence"`
}

func (h *Handler) ConfirmMapping(c echo.Context) error {
	var req confirmMappingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ManufacturerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "manufacturer_id is required")
	}
	schema, err := h.svc.ConfirmMapping(c.Request().Context(),
		req.ManufacturerID, req.PartnerField, req.CanonicalField, req.Confidence)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, schema)
}
