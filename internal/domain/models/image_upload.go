package model

import "io"

// ImageUpload is an attached file that already passed form validation.
// Extension is derived from the sniffed content type and includes the leading dot.
type ImageUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Extension   string
	Open        func() (io.ReadCloser, error)
}
