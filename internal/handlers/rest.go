package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"myzone/internal/models"
)

// DateTZ is the body of convert requests and responses. A response with
// every field empty means no conversion was performed.
type DateTZ struct {
	Time      string `json:"time"`
	Converted string `json:"converted"`
	Zone      string `json:"zone"`
}

type TimezoneResponse struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Offset  int      `json:"offset"`
	Aliases []string `json:"aliases,omitempty"`
}

// Convert renders a host date in the caller's timezone.
func (h *Handler) Convert(c *gin.Context) {
	var req DateTZ
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.dateFor(h.getCurrentUser(c), req.Time))
}

// dateFor converts raw into the timezone stored in prefs. Without one the
// result is empty, same as for an unparsable date.
func (h *Handler) dateFor(prefs models.Preferences, raw string) DateTZ {
	tz, ok := prefs.Timezone()
	if !ok {
		log.Debug().Str("date", raw).Msg("No timezone selected")
		return DateTZ{}
	}

	res := h.converter.ConvertOrEmpty(raw, tz)
	return DateTZ{
		Time:      res.String(),
		Converted: res.Time,
		Zone:      res.Abbreviation,
	}
}

// Timezones lists the catalog, optionally filtered by the q parameter.
func (h *Handler) Timezones(c *gin.Context) {
	matches := h.catalog.Search(c.Query("q"))

	list := make([]TimezoneResponse, len(matches))
	for i, tz := range matches {
		list[i] = TimezoneResponse{ID: tz.ID, Label: tz.Label, Offset: tz.Offset, Aliases: tz.Aliases}
	}

	c.JSON(http.StatusOK, gin.H{
		"timezones": list,
		"selected":  selected(h.getCurrentUser(c)),
	})
}

// selected is the stored timezone of prefs, or "" when there is none.
func selected(prefs models.Preferences) string {
	tz, _ := prefs.Timezone()
	return tz
}
