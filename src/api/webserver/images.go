package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/types"
)

// Images serves inline-stored picture bytes back with their content type.
// External-host deployments never hit these routes: the records carry final
// URLs instead of blobs.
type Images struct {
	db *gorm.DB
}

func NewImages(db *gorm.DB) Images {
	return Images{db: db}
}

func (h Images) Animal(c *gin.Context) {
	var animal types.Animal
	if err := h.db.Select("image_data", "image_type").First(&animal, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "image not found"})
		return
	}
	h.serve(c, animal.ImageData, animal.ImageType)
}

func (h Images) News(c *gin.Context) {
	var post types.News
	if err := h.db.Select("image_data", "image_type").First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "image not found"})
		return
	}
	h.serve(c, post.ImageData, post.ImageType)
}

func (h Images) GiftCard(c *gin.Context) {
	var sub types.GiftCardSubmission
	if err := h.db.Select("image_data", "image_type").First(&sub, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "image not found"})
		return
	}
	h.serve(c, sub.ImageData, sub.ImageType)
}

func (h Images) serve(c *gin.Context, data []byte, contentType string) {
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "image not found"})
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
