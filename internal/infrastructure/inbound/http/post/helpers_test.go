package post_http_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	post_service "blog-post-service/internal/domain/ports/input/post"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
	"blog-post-service/internal/infrastructure/inbound/http/views"
	"blog-post-service/internal/infrastructure/logger"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type publicURLs struct{}

func (publicURLs) URL(path string) string { return "/storage/" + path }

func newRouter(t *testing.T, svc post_service.Service, maxUploadBytes int64) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := views.Parse()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	post_http.NewPostHTTPService(svc, publicURLs{}, maxUploadBytes, logger.New("test")).RegisterRoutes(r)
	return middleware.MethodOverride(r)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type upload struct {
	filename string
	data     []byte
}

func multipartRequest(t *testing.T, target string, values map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile("featured_image", file.filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(file.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "notif_success" {
			return c
		}
	}
	return nil
}
