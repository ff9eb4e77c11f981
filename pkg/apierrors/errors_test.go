package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/x", h)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type detailList struct {
	Detail []FieldError `json:"detail"`
}

func TestHandleError_NotFound(t *testing.T) {
	w := serve(t, func(c *gin.Context) { HandleError(c, NewNotFound("Paper not found")) }, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Paper not found"}`, w.Body.String())
}

func TestHandleError_UnknownErrorBecomes500(t *testing.T) {
	w := serve(t, func(c *gin.Context) { HandleError(c, errors.New("disk on fire")) }, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "disk on fire")
}

func TestFromBindError_MissingRequiredFields(t *testing.T) {
	type req struct {
		Title   *string `json:"title" binding:"required"`
		Content *string `json:"content" binding:"required"`
	}
	w := serve(t, func(c *gin.Context) {
		var r req
		err := c.ShouldBindJSON(&r)
		require.Error(t, err)
		HandleError(c, FromBindError(err))
	}, `{"title":"only"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var got detailList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Detail, 1)
	require.Equal(t, "missing", got.Detail[0].Type)
	require.Equal(t, []string{"body", "content"}, got.Detail[0].Loc)
	require.Equal(t, "Field required", got.Detail[0].Msg)
}

func TestFromBindError_WrongType(t *testing.T) {
	type req struct {
		Title string `json:"title"`
	}
	w := serve(t, func(c *gin.Context) {
		var r req
		HandleError(c, FromBindError(c.ShouldBindJSON(&r)))
	}, `{"title":5}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var got detailList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Detail, 1)
	require.Equal(t, []string{"body", "title"}, got.Detail[0].Loc)
	require.Equal(t, "string_type", got.Detail[0].Type)
}

func TestFromBindError_MalformedAndEmptyBody(t *testing.T) {
	var target struct {
		Title string `json:"title"`
	}
	for name, body := range map[string]string{
		"malformed": `{"title":`,
		"empty":     ``,
		"garbage":   `not json`,
	} {
		t.Run(name, func(t *testing.T) {
			w := serve(t, func(c *gin.Context) {
				HandleError(c, FromBindError(c.ShouldBindJSON(&target)))
			}, body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var got detailList
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got.Detail, 1)
			require.Equal(t, []string{"body"}, got.Detail[0].Loc)
		})
	}
}

func TestCustomError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("inner")
	e := New500(inner)
	require.ErrorIs(t, e, inner)
	require.Equal(t, "Internal Server Error", e.Error())

	v := NewValidation(FieldError{Loc: []string{"body", "title"}, Msg: "Field required", Type: "missing"})
	require.Equal(t, "Validation error: body.title: Field required", v.Error())
}
