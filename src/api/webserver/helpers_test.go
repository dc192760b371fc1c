package webserver

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// sinkRecorder captures events so tests can assert on notification content
// without any transport.
type sinkRecorder struct {
	events []notify.Event
}

func (s *sinkRecorder) Notify(_ context.Context, ev notify.Event) {
	s.events = append(s.events, ev)
}

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// multipartBody builds a multipart form with the given text fields and an
// optional file part named fileField.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename, contentType string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postJSONMethod(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var submissionColumns = []string{
	"id", "name", "email", "amount", "note", "payment_method",
	"image_url", "image_data", "image_type", "status", "created_at", "updated_at",
}

var chatColumns = []string{"id", "name", "email", "created_at", "updated_at"}

var chatMessageColumns = []string{"id", "chat_id", "sender", "text", "created_at"}
