package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"recipebox/internal/feature/group/domain/entity"
	"recipebox/internal/feature/group/usecase"
)

// mockGroupUsecase is a func-field mock of GroupUsecase.
type mockGroupUsecase struct {
	ListAllFunc     func(ctx context.Context) ([]entity.Group, error)
	ListForUserFunc func(ctx context.Context, rawUserID string) ([]entity.Group, error)
}

func (m *mockGroupUsecase) ListAll(ctx context.Context) ([]entity.Group, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []entity.Group{}, nil
}

func (m *mockGroupUsecase) ListForUser(ctx context.Context, rawUserID string) ([]entity.Group, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, rawUserID)
	}
	return []entity.Group{}, nil
}

func family() entity.Group {
	return entity.Group{
		"id":    json.RawMessage(`1`),
		"name":  json.RawMessage(`"Family"`),
		"users": json.RawMessage(`[1,2]`),
	}
}

func serve(h *GroupHandler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/api/groups", h.List)
	r.GET("/api/groups/user/:userId", h.ListForUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGroupHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		listFunc       func(ctx context.Context) ([]entity.Group, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: returns groups verbatim",
			listFunc:       func(ctx context.Context) ([]entity.Group, error) { return []entity.Group{family()}, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"name":"Family","users":[1,2]}]`,
		},
		{
			name:           "failure: usecase error",
			listFunc:       func(ctx context.Context) ([]entity.Group, error) { return nil, errors.New("EOF") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error reading groups"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewGroupHandler(&mockGroupUsecase{ListAllFunc: tt.listFunc}), "/api/groups")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestGroupHandler_ListForUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		listFunc       func(ctx context.Context, rawUserID string) ([]entity.Group, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: member groups",
			path: "/api/groups/user/2",
			listFunc: func(ctx context.Context, rawUserID string) ([]entity.Group, error) {
				if rawUserID != "2" {
					return nil, errors.New("wrong id")
				}
				return []entity.Group{family()}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"name":"Family","users":[1,2]}]`,
		},
		{
			name: "success: no groups",
			path: "/api/groups/user/7",
			listFunc: func(ctx context.Context, rawUserID string) ([]entity.Group, error) {
				return []entity.Group{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: non numeric id",
			path: "/api/groups/user/abc",
			listFunc: func(ctx context.Context, rawUserID string) ([]entity.Group, error) {
				return nil, usecase.ErrInvalidUserID
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid user id"}`,
		},
		{
			name: "failure: storage error",
			path: "/api/groups/user/1",
			listFunc: func(ctx context.Context, rawUserID string) ([]entity.Group, error) {
				return nil, errors.New("corrupt")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error reading groups"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewGroupHandler(&mockGroupUsecase{ListForUserFunc: tt.listFunc}), tt.path)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
