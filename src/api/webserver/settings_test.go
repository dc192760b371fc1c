package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpaws/rescue-backend/src/api/types"
)

var paymentMethodColumns = []string{"id", "label", "details", "active", "position"}

func settingsRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := mockDB(t)
	h := NewSettings(db)

	r := gin.New()
	r.GET("/settings", h.Get)
	r.POST("/settings", h.Replace)
	return r, mock
}

func TestSettingsGetOrdersByPosition(t *testing.T) {
	r, mock := settingsRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `payment_methods` ORDER BY position ASC").
		WillReturnRows(sqlmock.NewRows(paymentMethodColumns).
			AddRow(1, "PayPal", "donate@softpaws.org", true, 0).
			AddRow(2, "Bank transfer", "IBAN DE00...", true, 1))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PaymentMethods []types.PaymentMethod `json:"paymentMethods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.PaymentMethods, 2)
	assert.Equal(t, "PayPal", resp.PaymentMethods[0].Label)
	assert.Equal(t, "Bank transfer", resp.PaymentMethods[1].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsReplaceValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing list", `{}`},
		{"blank label", `{"paymentMethods":[{"label":"   "}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, mock := settingsRouter(t)

			w := postJSONMethod(t, r, http.MethodPost, "/settings", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSettingsReplaceSwapsList(t *testing.T) {
	r, mock := settingsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `payment_methods`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `payment_methods`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	body := `{"paymentMethods":[
		{"label":"PayPal","details":"donate@softpaws.org"},
		{"label":"Gift cards","details":"Amazon or Steam","active":false,"position":5}
	]}`
	w := postJSONMethod(t, r, http.MethodPost, "/settings", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		PaymentMethods []types.PaymentMethod `json:"paymentMethods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.PaymentMethods, 2)

	// omitted fields get defaults, explicit ones survive
	assert.True(t, resp.PaymentMethods[0].Active)
	assert.Equal(t, 0, resp.PaymentMethods[0].Position)
	assert.False(t, resp.PaymentMethods[1].Active)
	assert.Equal(t, 5, resp.PaymentMethods[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsReplaceEmptyListClears(t *testing.T) {
	r, mock := settingsRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `payment_methods`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	w := postJSONMethod(t, r, http.MethodPost, "/settings", `{"paymentMethods":[]}`)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
