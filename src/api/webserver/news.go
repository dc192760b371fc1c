package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/types"
)

type News struct {
	db        *gorm.DB
	store     images.Store
	publicURL string
	sanitizer *bluemonday.Policy
}

func NewNews(db *gorm.DB, store images.Store, publicURL string) News {
	// News bodies allow light markup, everything else is stripped.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	sanitizer.AllowElements("h1", "h2", "h3", "h4")
	sanitizer.AllowAttrs("href").OnElements("a")
	sanitizer.RequireParseableURLs(true)
	sanitizer.RequireNoFollowOnLinks(true)

	return News{db: db, store: store, publicURL: publicURL, sanitizer: sanitizer}
}

func (h News) List(c *gin.Context) {
	var posts []types.News
	if err := h.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	for i := range posts {
		posts[i].ImageURL = h.imageRef(&posts[i])
	}
	c.JSON(http.StatusOK, posts)
}

func (h News) Get(c *gin.Context) {
	var post types.News
	if err := h.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "news post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	post.ImageURL = h.imageRef(&post)
	c.JSON(http.StatusOK, post)
}

func (h News) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(h.sanitizer.Sanitize(c.PostForm("content")))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "title is required"})
		return
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "content is required"})
		return
	}

	stored, _, status, err := storeImage(c, h.store, "image")
	if err != nil {
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}

	post := types.News{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		ImageURL:  stored.URL,
		ImageData: stored.Data,
		ImageType: stored.ContentType,
	}
	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	post.ImageURL = h.imageRef(&post)
	c.JSON(http.StatusOK, post)
}

func (h News) Update(c *gin.Context) {
	var post types.News
	if err := h.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "news post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if v := strings.TrimSpace(c.PostForm("title")); v != "" {
		post.Title = v
	}
	if v := strings.TrimSpace(h.sanitizer.Sanitize(c.PostForm("content"))); v != "" {
		post.Content = v
	}

	stored, present, status, err := storeImage(c, h.store, "image")
	if err != nil {
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}
	if present {
		post.ImageURL = stored.URL
		post.ImageData = stored.Data
		post.ImageType = stored.ContentType
	}

	if err := h.db.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	post.ImageURL = h.imageRef(&post)
	c.JSON(http.StatusOK, post)
}

func (h News) Delete(c *gin.Context) {
	res := h.db.Delete(&types.News{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "news post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h News) imageRef(n *types.News) string {
	if n.ImageURL != "" {
		return n.ImageURL
	}
	if len(n.ImageData) > 0 {
		return h.publicURL + "/api/news-image/" + n.ID
	}
	return ""
}
