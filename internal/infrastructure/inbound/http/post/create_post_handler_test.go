package post_http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	model "blog-post-service/internal/domain/models"
	file_storage "blog-post-service/internal/domain/ports/output/storage"
	mockpost "blog-post-service/mocks/service"
)

func TestCreatePostHandler_CreateForm(t *testing.T) {
	svc := mockpost.NewService(t)

	rec := serve(newRouter(t, svc, 2<<20), httptest.NewRequest(http.MethodGet, "/posts/create", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/posts"`)
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.NotContains(t, body, `name="_method"`)
}

func TestCreatePostHandler_StorePost(t *testing.T) {
	t.Run("SuccessWithImage", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("CreatePost", mock.Anything, mock.MatchedBy(func(dto *model.CreatePostDTO) bool {
			return dto.Title == "Hello" &&
				dto.Content == "World" &&
				dto.FeaturedImage != nil &&
				dto.FeaturedImage.ContentType == "image/png" &&
				dto.FeaturedImage.Extension == ".png" &&
				dto.FeaturedImage.Filename == "cover.png"
		})).Return(&model.Post{ID: 1}, nil)

		req := multipartRequest(t, "/posts", map[string]string{"title": "Hello", "content": "World"}, &upload{"cover.png", pngBytes})
		rec := serve(newRouter(t, svc, 2<<20), req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/posts", rec.Header().Get("Location"))
		cookie := flashCookie(rec)
		require.NotNil(t, cookie)
		msg, err := url.QueryUnescape(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "Post created successfully!", msg)
	})

	t.Run("SuccessWithoutImage", func(t *testing.T) {
		svc := mockpost.NewService(t)
		svc.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World"}).Return(&model.Post{ID: 1}, nil)

		rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPost, "/posts", url.Values{"title": {"  Hello "}, "content": {"World"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	validationCases := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		message string
	}{
		{
			name: "MissingTitle",
			req: func(t *testing.T) *http.Request {
				return formRequest(http.MethodPost, "/posts", url.Values{"content": {"World"}})
			},
			message: "The title field is required.",
		},
		{
			name: "BlankContent",
			req: func(t *testing.T) *http.Request {
				return formRequest(http.MethodPost, "/posts", url.Values{"title": {"Hello"}, "content": {"   "}})
			},
			message: "The content field is required.",
		},
		{
			name: "TitleTooLong",
			req: func(t *testing.T) *http.Request {
				return formRequest(http.MethodPost, "/posts", url.Values{"title": {strings.Repeat("a", 256)}, "content": {"World"}})
			},
			message: "The title field must not be greater than 255 characters.",
		},
		{
			name: "NotAnImage",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/posts", map[string]string{"title": "Hello", "content": "World"}, &upload{"notes.png", []byte("plain text pretending to be a png")})
			},
			message: "The featured image field must be a file of type: jpeg, png, gif, webp.",
		},
		{
			name: "ImageTooLarge",
			req: func(t *testing.T) *http.Request {
				big := append(append([]byte{}, pngBytes...), make([]byte, 4096)...)
				return multipartRequest(t, "/posts", map[string]string{"title": "Hello", "content": "World"}, &upload{"big.png", big})
			},
			message: "The featured image field must not be greater than 2 kilobytes.",
		},
	}

	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mockpost.NewService(t)

			rec := serve(newRouter(t, svc, 2048), tc.req(t))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
			assert.Nil(t, flashCookie(rec))
			svc.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
		})
	}

	t.Run("KeepsInputOnValidationError", func(t *testing.T) {
		svc := mockpost.NewService(t)

		rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPost, "/posts", url.Values{"title": {"Draft title"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="Draft title"`)
	})

	failureCases := []struct {
		name string
		err  error
	}{
		{name: "DatabaseError", err: custom_errors.ErrDatabaseQuery},
		{name: "StorageError", err: file_storage.ErrFileStore},
		{name: "UnknownError", err: errors.New("boom")},
	}

	for _, tc := range failureCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mockpost.NewService(t)
			svc.On("CreatePost", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := serve(newRouter(t, svc, 2<<20), formRequest(http.MethodPost, "/posts", url.Values{"title": {"Hello"}, "content": {"World"}}))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			assert.Nil(t, flashCookie(rec))
		})
	}
}
