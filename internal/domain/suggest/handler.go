package suggest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ivr/ivr/internal/domain/canonical"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/suggestions", h.Suggest)
}

type suggestRequest struct {
	Labels []string `json:"labels"`
	// Fields carries document-extraction output; labels are pulled
	// from it alongside any in Labels.
	Fields []extractedField `json:"fields,omitempty"`
	// CandidateFields restricts similarity matching to the given
	// canonical field ids. Empty means the whole catalog.
	CandidateFields []string `json:"candidate_fields,omitempty"`
}

type extractedField struct {
	Label       string  `json:"label"`
	SampleValue string  `json:"sample_value,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

type labelSuggestions struct {
	Label       string       `json:"label"`
	Suggestions []Suggestion `json:"suggestions"`
	Band        string       `json:"band,omitempty"`
}

func (h *Handler) Suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	labels := req.Labels
	for _, f := range req.Fields {
		if f.Label != "" {
			labels = append(labels, f.Label)
		}
	}
	if len(labels) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "labels is required")
	}

	candidates := canonical.All()
	if len(req.CandidateFields) > 0 {
		candidates = candidates[:0:0]
		for _, id := range req.CandidateFields {
			if f, ok := canonical.Lookup(id); ok {
				candidates = append(candidates, f)
			}
		}
	}

	ctx := c.Request().Context()
	out := make([]labelSuggestions, 0, len(labels))
	for _, label := range labels {
		ranked := h.engine.Rank(h.engine.Suggest(ctx, label, candidates))
		ls := labelSuggestions{Label: label, Suggestions: ranked}
		if len(ranked) > 0 {
			ls.Band = ExplainConfidence(ranked[0].Confidence * 100)
		}
		out = append(out, ls)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": out,
		"total":   len(out),
	})
}
