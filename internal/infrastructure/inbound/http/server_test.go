package delivery_http_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	post_service "blog-post-service/internal/application/service/post"
	"blog-post-service/internal/infrastructure/config"
	delivery_http "blog-post-service/internal/infrastructure/inbound/http"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
	"blog-post-service/internal/infrastructure/logger"
	"blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	"blog-post-service/internal/infrastructure/outbound/repository/post/memory"
	"blog-post-service/internal/infrastructure/outbound/storage/disk"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type testApp struct {
	handler http.Handler
	repo    *memory.PostRepository
	disk    *disk.PublicDisk
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	repo := memory.NewPostRepository(log)
	publicDisk := disk.NewPublicDisk(afero.NewMemMapFs(), "/storage", log, metrics)
	svc := post_service.NewPostService(repo, publicDisk, log, metrics)

	api := post_http.NewPostHTTPService(svc, publicDisk, 2<<20, log)
	server, err := delivery_http.NewServer(config.HTTPServer{Mode: gin.TestMode, MaxUploadBytes: 2 << 20}, api, publicDisk.FileSystem(), log, metrics)
	require.NoError(t, err)

	return &testApp{handler: server.Handler(), repo: repo, disk: publicDisk}
}

// do sends the request with the cookies collected so far, like a browser would.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		a.cookies = removeCookie(a.cookies, c.Name)
		if c.MaxAge >= 0 {
			a.cookies = append(a.cookies, c)
		}
	}
	return rec
}

func removeCookie(cookies []*http.Cookie, name string) []*http.Cookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

func postForm(t *testing.T, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("featured_image", "image.png")
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(image))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestServer_PostLifecycle(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	rec := app.do(postForm(t, "/posts", map[string]string{"title": "First", "content": "Body"}, pngBytes))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post created successfully!")

	rec = app.do(httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.NotContains(t, rec.Body.String(), "Post created successfully!")

	posts, err := app.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	created := posts[0]
	require.NotNil(t, created.FeaturedImage)
	oldImage := *created.FeaturedImage
	assert.True(t, strings.HasPrefix(oldImage, post_service.FeaturedImageDir+"/"))
	assert.True(t, strings.HasSuffix(oldImage, ".png"))

	rec = app.do(httptest.NewRequest(http.MethodGet, "/storage/"+oldImage, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())

	target := "/posts/" + itoa(created.ID)
	rec = app.do(postForm(t, target, map[string]string{"_method": "PUT", "title": "First edited", "content": "Body"}, pngBytes))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := app.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First edited", updated.Title)
	require.NotNil(t, updated.FeaturedImage)
	assert.NotEqual(t, oldImage, *updated.FeaturedImage)

	exists, err := app.disk.Exists(ctx, oldImage)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = app.disk.Exists(ctx, *updated.FeaturedImage)
	require.NoError(t, err)
	assert.True(t, exists)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Contains(t, rec.Body.String(), "Post updated successfully!")

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(url.Values{"_method": {"DELETE"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = app.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	exists, err = app.disk.Exists(ctx, *updated.FeaturedImage)
	require.NoError(t, err)
	assert.False(t, exists)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Contains(t, rec.Body.String(), "Post deleted successfully")
	assert.Contains(t, rec.Body.String(), "No posts yet.")

	rec = app.do(httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Post deleted successfully")
}

func TestServer_UpdateWithoutImageKeepsFile(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.Equal(t, http.StatusSeeOther, app.do(postForm(t, "/posts", map[string]string{"title": "A", "content": "B"}, pngBytes)).Code)
	posts, err := app.repo.List(ctx)
	require.NoError(t, err)
	image := *posts[0].FeaturedImage

	rec := app.do(postForm(t, "/posts/"+itoa(posts[0].ID), map[string]string{"_method": "PATCH", "title": "A2", "content": "B2"}, nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := app.repo.GetByID(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, image, *got.FeaturedImage)
	exists, err := app.disk.Exists(ctx, image)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestServer_OversizedBodyIsRejected(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	huge := append(append([]byte{}, pngBytes...), make([]byte, 3<<20)...)

	t.Run("create re-renders with image error", func(t *testing.T) {
		rec := app.do(postForm(t, "/posts", map[string]string{"title": "Big", "content": "Body"}, huge))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "The featured image field must not be greater than 2048 kilobytes.")
		posts, err := app.repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("override update answers content too large", func(t *testing.T) {
		require.Equal(t, http.StatusSeeOther, app.do(postForm(t, "/posts", map[string]string{"title": "Small", "content": "Body"}, nil)).Code)
		posts, err := app.repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)

		rec := app.do(postForm(t, "/posts/"+itoa(posts[0].ID), map[string]string{"_method": "PUT", "title": "Changed", "content": "Body"}, huge))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		got, err := app.repo.GetByID(ctx, posts[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Small", got.Title)
	})
}

func TestServer_Routes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "root redirects", method: http.MethodGet, path: "/", wantCode: http.StatusFound},
		{name: "health", method: http.MethodGet, path: "/healthz", wantCode: http.StatusOK, wantBody: "ok"},
		{name: "create form", method: http.MethodGet, path: "/posts/create", wantCode: http.StatusOK, wantBody: "Create Post"},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantCode: http.StatusNotFound, wantBody: "Not Found"},
		{name: "missing stored file", method: http.MethodGet, path: "/storage/images/missing.png", wantCode: http.StatusNotFound},
		{name: "storage directory listing hidden", method: http.MethodGet, path: "/storage/", wantCode: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, path: "/posts/create", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
