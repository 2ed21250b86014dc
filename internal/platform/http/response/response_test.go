package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Message(c, http.StatusOK, "Recipe deleted")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Recipe deleted"}`, w.Body.String())
}

func TestError_HidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
	}{
		{"client error", http.StatusBadRequest},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/recipes", nil)

			Error(c, tt.status, "Error reading recipes", errors.New("open /srv/data/recipes.json: permission denied"))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"message":"Error reading recipes"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "/srv/data")
		})
	}
}
