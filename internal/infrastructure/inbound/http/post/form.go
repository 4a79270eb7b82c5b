package post_http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	model "blog-post-service/internal/domain/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const featuredImageField = "featured_image"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type PostFormInternal struct {
	Title   string `form:"title" validate:"required,max=255"`
	Content string `form:"content" validate:"required"`
}

type PostIDInternal struct {
	ID int64 `validate:"required,gt=0"`
}

// postForm is a bound and checked form submission. Errors maps a field name to the message shown
// next to it and is empty when the submission can be passed to the service.
type postForm struct {
	Title   string
	Content string
	Image   *model.ImageUpload
	Errors  map[string]string
}

func (f *postForm) valid() bool { return len(f.Errors) == 0 }

func (f *postForm) view() formView {
	return formView{Title: f.Title, Content: f.Content}
}

func parsePostID(c *gin.Context, validate *validator.Validate) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("post"), 10, 64)
	if err != nil {
		return 0, false
	}
	if err := validate.Struct(&PostIDInternal{ID: id}); err != nil {
		return 0, false
	}
	return id, true
}

func bindPostForm(c *gin.Context, validate *validator.Validate, maxUploadBytes int64) *postForm {
	var req PostFormInternal
	form := &postForm{Errors: map[string]string{}}
	if err := c.ShouldBind(&req); err != nil {
		if bodyTooLarge(err) {
			form.Errors[featuredImageField] = imageTooLargeMessage(maxUploadBytes)
		} else {
			form.Errors["title"] = "The form could not be read."
		}
		return form
	}

	form.Title = strings.TrimSpace(req.Title)
	form.Content = strings.TrimSpace(req.Content)
	req.Title, req.Content = form.Title, form.Content

	if err := validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				form.Errors[strings.ToLower(fe.Field())] = fieldMessage(fe)
			}
		}
	}

	image, err := readFeaturedImage(c, maxUploadBytes)
	switch {
	case errors.Is(err, ErrImageTooLarge):
		form.Errors[featuredImageField] = imageTooLargeMessage(maxUploadBytes)
	case err != nil:
		form.Errors[featuredImageField] = "The featured image field must be a file of type: jpeg, png, gif, webp."
	default:
		form.Image = image
	}

	return form
}

func imageTooLargeMessage(maxUploadBytes int64) string {
	return fmt.Sprintf("The featured image field must not be greater than %d kilobytes.", maxUploadBytes/1024)
}

func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// readFeaturedImage returns nil when no file was attached. The content type is sniffed from the
// file itself, the client supplied header is ignored.
func readFeaturedImage(c *gin.Context, maxUploadBytes int64) (*model.ImageUpload, error) {
	fh, err := c.FormFile(featuredImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		if bodyTooLarge(err) {
			return nil, ErrImageTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if fh.Size > maxUploadBytes {
		return nil, ErrImageTooLarge
	}
	if fh.Size == 0 {
		return nil, ErrInvalidImage
	}

	mtype, err := sniff(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, ErrInvalidImage
	}

	return &model.ImageUpload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

func sniff(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mimetype.DetectReader(f)
}
