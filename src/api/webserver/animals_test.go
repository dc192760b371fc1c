package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/types"
)

var animalColumns = []string{
	"id", "name", "species", "description", "price",
	"image_url", "image_data", "image_type", "created_at", "updated_at",
}

func animalsRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := mockDB(t)
	h := NewAnimals(db, images.NewInline(), testPublicURL)

	r := gin.New()
	r.GET("/animals", h.List)
	r.GET("/animals/:id", h.Get)
	r.POST("/animals", h.Create)
	r.PUT("/animals/:id", h.Update)
	r.DELETE("/animals/:id", h.Delete)
	return r, mock
}

func TestAnimalCreateRequiresName(t *testing.T) {
	r, mock := animalsRouter(t)

	body, contentType := multipartBody(t, map[string]string{"species": "dog"}, "", "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/animals", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalCreateWithInlineImage(t *testing.T) {
	r, mock := animalsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `animals`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	fields := map[string]string{
		"name":        "Rex",
		"species":     "dog",
		"description": "friendly shepherd mix",
		"price":       "free",
	}
	body, contentType := multipartBody(t, fields, "image", "rex.png", "image/png", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/animals", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var animal types.Animal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &animal))
	assert.Equal(t, "Rex", animal.Name)
	assert.NotEmpty(t, animal.ID)
	assert.Equal(t, testPublicURL+"/api/image/"+animal.ID, animal.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalCreateWithoutImage(t *testing.T) {
	r, mock := animalsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `animals`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body, contentType := multipartBody(t, map[string]string{"name": "Whiskers"}, "", "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/animals", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var animal types.Animal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &animal))
	assert.Empty(t, animal.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalListResolvesImageRefs(t *testing.T) {
	r, mock := animalsRouter(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `animals` ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(animalColumns).
			AddRow("a-2", "Rex", "dog", "", "free", "", []byte{1, 2}, "image/png", now, now).
			AddRow("a-1", "Whiskers", "cat", "", "", "https://i.example.com/w.png", nil, "", now.Add(-time.Hour), now))

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var animals []types.Animal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &animals))
	require.Len(t, animals, 2)
	assert.Equal(t, testPublicURL+"/api/image/a-2", animals[0].ImageURL)
	assert.Equal(t, "https://i.example.com/w.png", animals[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalGetNotFound(t *testing.T) {
	r, mock := animalsRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `animals` WHERE id = (.+)").
		WillReturnRows(sqlmock.NewRows(animalColumns))

	req := httptest.NewRequest(http.MethodGet, "/animals/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalUpdateKeepsUnsetFields(t *testing.T) {
	r, mock := animalsRouter(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `animals` WHERE id = (.+)").
		WillReturnRows(sqlmock.NewRows(animalColumns).
			AddRow("a-1", "Rex", "dog", "friendly", "free", "", nil, "", now, now))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `animals` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, contentType := multipartBody(t, map[string]string{"name": "Rexy"}, "", "", "", nil)
	req := httptest.NewRequest(http.MethodPut, "/animals/a-1", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var animal types.Animal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &animal))
	assert.Equal(t, "Rexy", animal.Name)
	assert.Equal(t, "dog", animal.Species)
	assert.Equal(t, "friendly", animal.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalDelete(t *testing.T) {
	r, mock := animalsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `animals`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "/animals/a-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalDeleteNotFound(t *testing.T) {
	r, mock := animalsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `animals`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "/animals/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
