package post_http_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	model "blog-post-service/internal/domain/models"
	mockpost "blog-post-service/mocks/service"
)

func TestUpdatePostHandler_UpdatePost(t *testing.T) {
	t.Run("SuccessViaMethodOverride", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(samplePost(), nil)
		svc.On("UpdatePost", mock.Anything, int64(9), &model.UpdatePostDTO{Title: "New", Content: "Body"}).
			Return(&model.Post{ID: 9, Title: "New", Content: "Body"}, nil)

		req := formRequest(http.MethodPost, "/posts/9", url.Values{"_method": {"PUT"}, "title": {"New"}, "content": {"Body"}})
		rec := serve(newRouter(t, svc, 2<<20), req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/posts", rec.Header().Get("Location"))
		cookie := flashCookie(rec)
		require.NotNil(t, cookie)
		msg, _ := url.QueryUnescape(cookie.Value)
		assert.Equal(t, "Post updated successfully!", msg)
	})

	t.Run("SuccessWithImagePatch", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(samplePost(), nil)
		svc.On("UpdatePost", mock.Anything, int64(9), mock.MatchedBy(func(dto *model.UpdatePostDTO) bool {
			return dto.FeaturedImage != nil && dto.FeaturedImage.Extension == ".png"
		})).Return(&model.Post{ID: 9}, nil)

		req := multipartRequest(t, "/posts/9", map[string]string{"_method": "PATCH", "title": "New", "content": "Body"}, &upload{"new.png", pngBytes})
		rec := serve(newRouter(t, svc, 2<<20), req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("SuccessViaOverrideHeader", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(samplePost(), nil)
		svc.On("UpdatePost", mock.Anything, int64(9), mock.Anything).Return(&model.Post{ID: 9}, nil)

		req := formRequest(http.MethodPost, "/posts/9", url.Values{"title": {"New"}, "content": {"Body"}})
		req.Header.Set("X-HTTP-Method-Override", "put")
		rec := serve(newRouter(t, svc, 2<<20), req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("NotFoundBeforeValidation", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(nil, custom_errors.ErrPostNotFound)

		rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPut, "/posts/9", url.Values{}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(samplePost(), nil)

		rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPut, "/posts/9", url.Values{"title": {""}, "content": {"Body"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "The title field is required.")
		assert.Contains(t, body, `action="/posts/9"`)
		svc.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(9)).Return(samplePost(), nil)
		svc.On("UpdatePost", mock.Anything, int64(9), mock.Anything).Return(nil, errors.New("db down"))

		rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPut, "/posts/9", url.Values{"title": {"New"}, "content": {"Body"}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
		assert.Nil(t, flashCookie(rec))
	})
}
