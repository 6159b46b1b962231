// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

func newRouter(c *catalog.Catalog) http.Handler {
	handler := catalog.NewHandler(c)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	router.Route("/categories/{id}", handler.CategoryRoutes)
	for _, level := range catalog.Levels {
		router.Route("/"+level.Path+"/{id}", handler.NodeRoutes(level))
	}
	return router
}

func serve(router http.Handler, method, target, body string, role sec.UserRole) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if role != "" {
		claims := &sec.AuthClaims{UserID: 7, Role: string(role)}
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func dataOf(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return body.Data
}

/*
TestHandler_Hierarchy creates and reads one branch of the tree.
*/
func TestHandler_Hierarchy(t *testing.T) {
	c, _ := newCatalog()
	router := newRouter(c)

	recorder := serve(router, http.MethodPost, "/categories", `{"categoryNumber":12,"titleEn":"Family"}`, sec.RoleEditor)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	categoryID := int64(dataOf(t, recorder)["id"].(float64))

	recorder = serve(router, http.MethodPost, "/books", `{"categoryId":`+itoa(categoryID)+`,"bookNumber":1}`, sec.RoleEditor)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	book := dataOf(t, recorder)
	assert.Equal(t, float64(1), book["bookNumber"])

	bookID := int64(book["id"].(float64))
	recorder = serve(router, http.MethodPost, "/chapters", `{"bookId":`+itoa(bookID)+`,"position":3}`, sec.RoleEditor)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = serve(router, http.MethodGet, "/books/"+itoa(bookID)+"/chapters", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"position":3`)

	recorder = serve(router, http.MethodGet, "/categories/"+itoa(categoryID)+"/books", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"categoryId":`+itoa(categoryID))

	recorder = serve(router, http.MethodPut, "/books/"+itoa(bookID), `{"bookNumber":2}`, sec.RoleEditor)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, float64(2), dataOf(t, recorder)["bookNumber"])
}

/*
TestHandler_Roles keeps writes for editors and category deletes for admins.
*/
func TestHandler_Roles(t *testing.T) {
	c, _ := newCatalog()
	router := newRouter(c)

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/categories", `{"categoryNumber":12,"titleEn":"x"}`, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodPost, "/categories", `{"categoryNumber":12,"titleEn":"x"}`, sec.RoleReader).Code)

	recorder := serve(router, http.MethodPost, "/categories", `{"categoryNumber":12,"titleEn":"x"}`, sec.RoleEditor)
	require.Equal(t, http.StatusCreated, recorder.Code)
	target := "/categories/" + itoa(int64(dataOf(t, recorder)["id"].(float64)))

	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodDelete, target, "", sec.RoleReviewer).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, target, "", sec.RoleAdmin).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, target, "", "").Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
