package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/softpaws/rescue-backend/src/api/images"
)

// storeImage stages and stores an optional multipart image field. present is
// false when the request carries no file. The returned status distinguishes
// client input problems from upstream storage failures.
func storeImage(c *gin.Context, store images.Store, field string) (stored images.Stored, present bool, status int, err error) {
	fh, ferr := c.FormFile(field)
	if ferr != nil {
		return images.Stored{}, false, 0, nil
	}

	contentType := images.ContentType(fh)
	if !images.IsImage(contentType) {
		return images.Stored{}, true, http.StatusBadRequest, fmt.Errorf("%s must be an image", field)
	}

	path, cleanup, serr := images.SaveUpload(fh)
	if serr != nil {
		if errors.Is(serr, images.ErrTooLarge) {
			return images.Stored{}, true, http.StatusBadRequest, serr
		}
		log.WithError(serr).WithField("field", field).Error("failed to stage upload")
		return images.Stored{}, true, http.StatusInternalServerError, serr
	}
	defer cleanup()

	stored, serr = store.Store(c.Request.Context(), path, contentType)
	if serr != nil {
		log.WithError(serr).WithField("field", field).Error("failed to store image")
		return images.Stored{}, true, http.StatusInternalServerError, serr
	}
	return stored, true, 0, nil
}
