package webserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/notify"
	"github.com/softpaws/rescue-backend/src/api/types"
)

type GiftCards struct {
	db        *gorm.DB
	store     images.Store
	sink      notify.Sink
	publicURL string
}

func NewGiftCards(db *gorm.DB, store images.Store, sink notify.Sink, publicURL string) GiftCards {
	return GiftCards{db: db, store: store, sink: sink, publicURL: publicURL}
}

// Submit accepts a multipart gift-card proof, persists it pending and pushes
// a best-effort notification. The response never depends on the notification.
func (h GiftCards) Submit(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	amountRaw := strings.TrimSpace(c.PostForm("amount"))
	note := strings.TrimSpace(c.PostForm("note"))
	method := strings.TrimSpace(c.PostForm("paymentMethod"))

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "name is required"})
		return
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "email is required"})
		return
	}
	if !isValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid email format"})
		return
	}
	if amountRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "amount is required"})
		return
	}
	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "amount must be a positive number"})
		return
	}
	if method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "paymentMethod is required"})
		return
	}

	fh, err := c.FormFile("giftCardImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "giftCardImage is required"})
		return
	}
	contentType := images.ContentType(fh)
	if !images.IsImage(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "giftCardImage must be an image"})
		return
	}

	path, cleanup, err := images.SaveUpload(fh)
	if err != nil {
		if errors.Is(err, images.ErrTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
			return
		}
		log.WithError(err).Error("failed to stage gift card image")
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	defer cleanup()

	stored, err := h.store.Store(c.Request.Context(), path, contentType)
	if err != nil {
		log.WithError(err).Error("failed to store gift card image")
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	sub := types.GiftCardSubmission{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		Amount:        amount,
		Note:          note,
		PaymentMethod: method,
		ImageURL:      stored.URL,
		ImageData:     stored.Data,
		ImageType:     stored.ContentType,
		Status:        types.StatusPending,
	}
	if err := h.db.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	imageRef := h.imageRef(&sub)
	h.sink.Notify(context.Background(), notify.Event{
		Kind: notify.KindSubmission,
		Text: fmt.Sprintf("New gift card submission\nFrom: %s <%s>\nAmount: %.2f\nMethod: %s\nNote: %s\nID: %s",
			name, email, amount, method, truncate(note, 200), sub.ID),
		ImageURL: imageRef,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission received, pending verification",
		"submission": sub,
	})
}

// List returns all submissions newest first, images as fetchable references.
func (h GiftCards) List(c *gin.Context) {
	var subs []types.GiftCardSubmission
	if err := h.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	for i := range subs {
		subs[i].ImageURL = h.imageRef(&subs[i])
	}
	c.JSON(http.StatusOK, subs)
}

// UpdateStatus moves a submission through the pending -> verified|rejected
// machine. Terminal states reject further transitions.
func (h GiftCards) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status types.SubmissionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"err": "status must be pending, verified or rejected"})
		return
	}

	var sub types.GiftCardSubmission
	if err := h.db.First(&sub, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if err := sub.Status.Transition(req.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"err": err.Error()})
		return
	}

	previous := sub.Status
	if err := h.db.Model(&sub).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	sub.Status = req.Status

	h.sink.Notify(context.Background(), notify.Event{
		Kind: notify.KindSubmissionStatus,
		Text: fmt.Sprintf("Submission %s: %s -> %s\nFrom: %s <%s>\nAmount: %.2f",
			sub.ID, previous, sub.Status, sub.Name, sub.Email, sub.Amount),
	})

	sub.ImageURL = h.imageRef(&sub)
	c.JSON(http.StatusOK, sub)
}

// imageRef resolves the submission image to a fetchable URL regardless of
// storage strategy. Inline rows are served by /api/giftcard-image/:id.
func (h GiftCards) imageRef(sub *types.GiftCardSubmission) string {
	if sub.ImageURL != "" {
		return sub.ImageURL
	}
	if len(sub.ImageData) > 0 {
		return h.publicURL + "/api/giftcard-image/" + sub.ID
	}
	return ""
}
