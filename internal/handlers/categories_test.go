package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/catalog/internal/handlers/testutil"
)

func TestCategoryAndSubcategoryRoutes(t *testing.T) {
	env := testutil.NewEnv(t)

	categoryID := env.Create("/api/v1/category/create", map[string]any{"name": "Beverages"})
	subID := env.Create("/api/v1/sub-category/create", map[string]any{"name": "Juices", "categoryId": categoryID})

	resp := env.Request(http.MethodGet, "/api/v1/sub-category/show/"+subID, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var sub struct {
		Name       string  `json:"name"`
		CategoryID *string `json:"categoryId"`
		Category   *struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	testutil.DecodeInto(t, testutil.DecodeResponse(t, resp).Result, &sub)
	require.Equal(t, "Juices", sub.Name)
	require.NotNil(t, sub.CategoryID)
	require.Equal(t, categoryID, *sub.CategoryID)
	require.NotNil(t, sub.Category)
	require.Equal(t, "Beverages", sub.Category.Name)

	resp = env.Request(http.MethodGet, "/api/v1/sub-category/index", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Subcategories fetched successfully", testutil.DecodeResponse(t, resp).Message)

	resp = env.Request(http.MethodPatch, "/api/v1/sub-category/update/"+subID, map[string]any{"categoryId": ""})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = env.Request(http.MethodGet, "/api/v1/sub-category/show/"+subID, nil)
	sub.CategoryID = nil
	sub.Category = nil
	testutil.DecodeInto(t, testutil.DecodeResponse(t, resp).Result, &sub)
	require.Nil(t, sub.CategoryID)

	resp = env.Request(http.MethodGet, "/api/v1/category/index", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Categories fetched successfully", testutil.DecodeResponse(t, resp).Message)
}

func TestSubcategoryCreateWithUnknownCategory(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodPost, "/api/v1/sub-category/create", map[string]any{
		"name":       "Juices",
		"categoryId": "00000000-0000-4000-8000-000000000000",
	})
	require.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
	require.Equal(t, "Category with the provided ID does not exist", testutil.DecodeResponse(t, resp).Message)
}

func TestCategoryNameLengthValidated(t *testing.T) {
	env := testutil.NewEnv(t)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	resp := env.Request(http.MethodPost, "/api/v1/category/create", map[string]any{"name": string(long)})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	require.Contains(t, testutil.DecodeResponse(t, resp).Message, "at most 64")
}
