package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/types"
)

type Animals struct {
	db        *gorm.DB
	store     images.Store
	publicURL string
}

func NewAnimals(db *gorm.DB, store images.Store, publicURL string) Animals {
	return Animals{db: db, store: store, publicURL: publicURL}
}

func (h Animals) List(c *gin.Context) {
	var animals []types.Animal
	if err := h.db.Order("created_at DESC").Find(&animals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	for i := range animals {
		animals[i].ImageURL = h.imageRef(&animals[i])
	}
	c.JSON(http.StatusOK, animals)
}

func (h Animals) Get(c *gin.Context) {
	var animal types.Animal
	if err := h.db.First(&animal, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "animal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	animal.ImageURL = h.imageRef(&animal)
	c.JSON(http.StatusOK, animal)
}

func (h Animals) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "name is required"})
		return
	}

	stored, _, status, err := storeImage(c, h.store, "image")
	if err != nil {
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}

	animal := types.Animal{
		ID:          uuid.NewString(),
		Name:        name,
		Species:     strings.TrimSpace(c.PostForm("species")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       strings.TrimSpace(c.PostForm("price")),
		ImageURL:    stored.URL,
		ImageData:   stored.Data,
		ImageType:   stored.ContentType,
	}
	if err := h.db.Create(&animal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	animal.ImageURL = h.imageRef(&animal)
	c.JSON(http.StatusOK, animal)
}

func (h Animals) Update(c *gin.Context) {
	var animal types.Animal
	if err := h.db.First(&animal, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "animal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if v := strings.TrimSpace(c.PostForm("name")); v != "" {
		animal.Name = v
	}
	if v := strings.TrimSpace(c.PostForm("species")); v != "" {
		animal.Species = v
	}
	if v := strings.TrimSpace(c.PostForm("description")); v != "" {
		animal.Description = v
	}
	if v := strings.TrimSpace(c.PostForm("price")); v != "" {
		animal.Price = v
	}

	stored, present, status, err := storeImage(c, h.store, "image")
	if err != nil {
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}
	if present {
		animal.ImageURL = stored.URL
		animal.ImageData = stored.Data
		animal.ImageType = stored.ContentType
	}

	if err := h.db.Save(&animal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	animal.ImageURL = h.imageRef(&animal)
	c.JSON(http.StatusOK, animal)
}

func (h Animals) Delete(c *gin.Context) {
	res := h.db.Delete(&types.Animal{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "animal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Animals) imageRef(a *types.Animal) string {
	if a.ImageURL != "" {
		return a.ImageURL
	}
	if len(a.ImageData) > 0 {
		return h.publicURL + "/api/image/" + a.ID
	}
	return ""
}
