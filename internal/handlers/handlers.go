package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"

	"myzone/internal/auth"
	"myzone/internal/config"
	C "myzone/internal/constants"
	"myzone/internal/convert"
	"myzone/internal/i18n"
	"myzone/internal/middleware"
	"myzone/internal/models"
	"myzone/internal/renderers"
	"myzone/internal/timezones"
)

type Handler struct {
	authService *auth.Service
	config      *config.Config
	converter   *convert.Converter
	catalog     timezones.Catalog
	translator  *i18n.Translator
	markdown    goldmark.Markdown
}

func New(authService *auth.Service, cfg *config.Config, converter *convert.Converter, catalog timezones.Catalog, translator *i18n.Translator) *Handler {
	return &Handler{
		authService: authService,
		config:      cfg,
		converter:   converter,
		catalog:     catalog,
		translator:  translator,
		markdown:    renderers.NewMarkdown(),
	}
}

func (h *Handler) getCurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.UserKey); exists {
		return user.(*models.User)
	}
	return nil
}

func (h *Handler) renderMarkdown(content string) string {
	var buf strings.Builder
	if err := h.markdown.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// page adds the keys every layout needs.
func (h *Handler) page(c *gin.Context, data gin.H) gin.H {
	data["siteName"] = h.config.SiteName
	data["restPrefix"] = C.RESTPrefix
	data["user"] = h.getCurrentUser(c)
	return data
}

func (h *Handler) renderError(c *gin.Context, title, message string, status int) {
	data := h.page(c, gin.H{
		"title":   title,
		"message": message,
	})
	h.renderTemplateStatus(c, data, C.ErrorPath, status)
}

func (h *Handler) renderTemplateStatus(c *gin.Context, data gin.H, templatePath string, status int) {
	t, ok := C.Tmpl[templatePath]
	if !ok {
		log.Error().Str("template", templatePath).Msg("Template not found")
		c.String(http.StatusInternalServerError, "Template not found")
		return
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		log.Error().Err(err).Str("template", templatePath).Msg("Template execution error")
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := io.Copy(c.Writer, buf); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func (h *Handler) renderTemplate(c *gin.Context, data gin.H, templatePath string) {
	h.renderTemplateStatus(c, data, templatePath, http.StatusOK)
}

// Home page
func (h *Handler) Home(c *gin.Context) {
	data := h.page(c, gin.H{
		"title": "Home",
		"now":   h.converter.Format(time.Now()),
	})
	h.renderTemplate(c, data, C.HomePath)
}

// Auth handlers
func (h *Handler) LoginForm(c *gin.Context) {
	if h.getCurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.renderTemplate(c, h.page(c, gin.H{"title": "Login"}), C.LoginPath)
}

func (h *Handler) Login(c *gin.Context) {
	if h.getCurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")
	remember := c.PostForm("remember") == "on"

	if username == "" || password == "" {
		data := h.page(c, gin.H{
			"title": "Login",
			"error": "Username and password are required",
		})
		h.renderTemplateStatus(c, data, C.LoginPath, http.StatusBadRequest)
		return
	}

	_, token, err := h.authService.Login(username, password)
	if err != nil {
		log.Info().Str("username", username).Err(err).Msg("Login failed")
		data := h.page(c, gin.H{
			"title": "Login",
			"error": "Invalid credentials",
		})
		h.renderTemplateStatus(c, data, C.LoginPath, http.StatusBadRequest)
		return
	}

	maxAge := 86400 // 1 day
	if remember {
		maxAge = 86400 * 30 // 30 days
	}
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", false, true)

	c.Redirect(http.StatusFound, "/profile/"+username)
}

func (h *Handler) SignupForm(c *gin.Context) {
	if h.getCurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.renderTemplate(c, h.page(c, gin.H{"title": "Sign Up"}), C.SignupPath)
}

func (h *Handler) Signup(c *gin.Context) {
	if h.getCurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	signupError := func(message string) {
		data := h.page(c, gin.H{
			"title": "Sign Up",
			"error": message,
		})
		h.renderTemplateStatus(c, data, C.SignupPath, http.StatusBadRequest)
	}

	switch {
	case username == "" || password == "":
		signupError("All fields are required")
		return
	case password != confirmPassword:
		signupError("Passwords do not match")
		return
	case len(password) < 6:
		signupError("Password must be at least 6 characters long")
		return
	}

	user, err := h.authService.Register(username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			signupError(err.Error())
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Registration failed")
		h.renderError(c, "Error", "Registration failed", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign token")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}
	c.SetCookie(middleware.CookieName, token, 86400*30, "/", "", false, true)
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
