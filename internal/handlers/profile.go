package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	C "myzone/internal/constants"
	"myzone/internal/models"
)

func (h *Handler) profileData(c *gin.Context, profileUser *models.User) gin.H {
	current := h.getCurrentUser(c)
	tz := selected(profileUser)

	data := gin.H{
		"title":       fmt.Sprintf("%s's Profile", profileUser.Username),
		"profileUser": profileUser,
		"memberSince": h.converter.Format(profileUser.CreatedAt),
		"showPanel":   current.Owns(profileUser),
	}

	if current.Owns(profileUser) {
		lang := c.GetHeader("Accept-Language")
		data["labels"] = h.translator.Labels(lang, map[string]any{"Timezone": tz})
		data["timezones"] = h.catalog
		data["selectedTZ"] = tz
		data["help"] = h.renderMarkdown(h.config.PanelHelp)

		switch {
		case c.Query("saved") != "":
			data["notice"] = h.translator.T(lang, "PanelSaved", nil)
		case c.Query("cleared") != "":
			data["notice"] = h.translator.T(lang, "PanelCleared", nil)
		}
	}

	return h.page(c, data)
}

// ProfileView shows a profile. The timezone panel is only rendered for
// the profile owner.
func (h *Handler) ProfileView(c *gin.Context) {
	profileUser, err := h.authService.GetUserByUsername(c.Param("username"))
	if err != nil {
		h.renderError(c, "Error", "User not found", http.StatusNotFound)
		return
	}

	h.renderTemplate(c, h.profileData(c, profileUser), C.ProfilePath)
}

// ProfileTimezone stores the timezone picked in the profile panel.
func (h *Handler) ProfileTimezone(c *gin.Context) {
	user := h.getCurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	id := c.PostForm("timezone")
	if id != "" {
		tz, ok := h.catalog.Lookup(id)
		if !ok {
			data := h.profileData(c, user)
			data["error"] = h.translator.T(c.GetHeader("Accept-Language"), "PanelInvalid", map[string]any{"Timezone": id})
			h.renderTemplateStatus(c, data, C.ProfilePath, http.StatusBadRequest)
			return
		}
		// Aliases are stored as the identifier the panel lists.
		id = tz.ID
	}

	if err := h.authService.SetTimezone(user, id); err != nil {
		log.Error().Err(err).Uint("user", user.ID).Msg("Failed to store timezone")
		h.renderError(c, "Error", "Failed to update profile", http.StatusInternalServerError)
		return
	}

	notice := "saved"
	if id == "" {
		notice = "cleared"
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"?"+notice+"=1")
}
