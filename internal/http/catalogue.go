package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/siitecch/learn-api/internal/domain"
	"github.com/siitecch/learn-api/internal/log"
	"github.com/siitecch/learn-api/internal/queue"
	"github.com/siitecch/learn-api/internal/repo"
)

type languageSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
}

// ListLanguages godoc
// @Summary Catalogue index
// @Tags languages
// @Produce json
// @Success 200 {array} languageSummary
// @Router /api/languages [get]
func (h *Handler) ListLanguages(c *gin.Context) {
	langs, err := h.Store.ListLanguages(c.Request.Context())
	if err != nil {
		log.L.Error("list languages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch languages."})
		return
	}
	out := make([]languageSummary, 0, len(langs))
	for _, l := range langs {
		out = append(out, languageSummary{ID: l.ID, Name: l.Name, Slug: l.Slug, Description: l.Description})
	}
	c.JSON(http.StatusOK, out)
}

// GetLanguageBySlug returns the full nested document. The :id path segment
// doubles as the public slug on this route.
func (h *Handler) GetLanguageBySlug(c *gin.Context) {
	l, err := h.Store.FindLanguageBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.L.Error("find language", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Language not found."})
		return
	}
	c.JSON(http.StatusOK, l)
}

type createLanguageReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateLanguage godoc
// @Summary Add a language
// @Tags languages
// @Accept json
// @Produce json
// @Param payload body createLanguageReq true "name, slug, description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/languages [post]
func (h *Handler) CreateLanguage(c *gin.Context) {
	var in createLanguageReq
	if err := c.ShouldBindJSON(&in); err != nil ||
		strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Slug) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and slug are required"})
		return
	}
	l := &domain.Language{
		Name:        strings.TrimSpace(in.Name),
		Slug:        in.Slug,
		Description: in.Description,
		Categories:  []domain.Category{},
	}
	if err := h.Store.CreateLanguage(c.Request.Context(), l); err != nil {
		if err == repo.ErrSlugExists {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Slug already exists"})
			return
		}
		log.L.Error("create language", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add language"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Language added successfully!", "languageId": l.ID})
}

type categoryReq struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	VideoLink string `json:"video_link"`
}

// AddCategory appends a new category subdocument and reports its id.
func (h *Handler) AddCategory(c *gin.Context) {
	langID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Language not found"})
		return
	}
	var in categoryReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	cat := &domain.Category{
		Name:      in.Name,
		Content:   in.Content,
		VideoLink: in.VideoLink,
		Examples:  []domain.Example{},
	}
	if err := h.Store.AddCategory(c.Request.Context(), langID, cat); err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Language not found"})
			return
		}
		log.L.Error("add category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category added successfully!", "categoryId": cat.ID})
}

type categoryName struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	langID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Language not found"})
		return
	}
	l, err := h.Store.FindLanguageByID(c.Request.Context(), langID)
	if err != nil {
		log.L.Error("find language", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
		return
	}
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Language not found"})
		return
	}
	out := make([]categoryName, 0, len(l.Categories))
	for _, cat := range l.Categories {
		out = append(out, categoryName{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

// GetCategory looks the category up by subdocument id across all languages
// and attaches the owning language id.
func (h *Handler) GetCategory(c *gin.Context) {
	catID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	l, err := h.Store.FindLanguageByCategoryID(c.Request.Context(), catID)
	if err != nil {
		log.L.Error("find category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch category"})
		return
	}
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	for _, cat := range l.Categories {
		if cat.ID == catID {
			c.JSON(http.StatusOK, gin.H{
				"id":          cat.ID,
				"name":        cat.Name,
				"content":     cat.Content,
				"video_link":  cat.VideoLink,
				"examples":    cat.Examples,
				"language_id": l.ID,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
}

// UpdateCategory overwrites name/content/video_link on the subdocument.
func (h *Handler) UpdateCategory(c *gin.Context) {
	catID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	var in categoryReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.Store.UpdateCategory(c.Request.Context(), catID, in.Name, in.Content, in.VideoLink); err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		log.L.Error("update category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

type videoReq struct {
	VideoURL string `json:"videoUrl"`
}

func (h *Handler) SetCategoryVideo(c *gin.Context) {
	var in videoReq
	if err := c.ShouldBindJSON(&in); err != nil || in.VideoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Video URL is required"})
		return
	}
	langID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Language not found"})
		return
	}
	catID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	cat, err := h.Store.SetCategoryVideo(c.Request.Context(), langID, catID, in.VideoURL)
	if err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		log.L.Error("set category video", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Video link updated successfully", "category": cat})
}

func (h *Handler) CountVideos(c *gin.Context) {
	n, err := h.Store.CountVideos(c.Request.Context())
	if err != nil {
		log.L.Error("count videos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count video links"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalVideos": n})
}

type feedbackReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateFeedback godoc
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param payload body feedbackReq true "name, email, subject(optional), message"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/feedback [post]
func (h *Handler) CreateFeedback(c *gin.Context) {
	var in feedbackReq
	if err := c.ShouldBindJSON(&in); err != nil ||
		in.Name == "" || in.Email == "" || in.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and message are required"})
		return
	}
	f := &domain.Feedback{Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message}
	if err := h.Store.CreateFeedback(c.Request.Context(), f); err != nil {
		log.L.Error("create feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send feedback"})
		return
	}

	reqID := c.GetString(requestIDKey)
	go h.Events.Publish(c.Request.Context(), "learn.events", "feedback.received",
		queue.FeedbackReceived{FeedbackID: f.ID, Email: f.Email, Subject: f.Subject}, reqID)

	c.JSON(http.StatusCreated, gin.H{"message": "Feedback received successfully!"})
}

func (h *Handler) RecordVisit(c *gin.Context) {
	v, err := h.Store.RecordVisit(c.Request.Context(), time.Now())
	if err != nil {
		log.L.Error("record visit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record visit"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVisits(c *gin.Context) {
	visits, err := h.Store.ListVisits(c.Request.Context())
	if err != nil {
		log.L.Error("list visits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch visits"})
		return
	}
	c.JSON(http.StatusOK, visits)
}

// Ping keeps the database connection warm and doubles as the liveness probe.
func (h *Handler) Ping(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.String(http.StatusInternalServerError, "Error keeping database connection alive")
		return
	}
	c.String(http.StatusOK, "Database connection is active")
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
