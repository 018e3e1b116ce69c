package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

// readUploads drains the first file attached under each field name of
// a multipart form into an opaque field-name → bytes map: the HTTP
// layer never interprets a file's contents, it only hands the bytes
// on to the parser that understands the relevant wire format (atomic
// file, formula file, input file).
func readUploads(c *gin.Context) (map[string][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	out := make(map[string][]byte, len(form.File))
	for field, files := range form.File {
		if len(files) == 0 {
			continue
		}
		data, err := readFormFile(files[0])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		out[field] = data
	}
	return out, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// singleUpload is a convenience for handlers that expect exactly one
// file, under any field name, or a raw request body when no multipart
// form was sent at all.
func singleUpload(c *gin.Context) ([]byte, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		uploads, err := readUploads(c)
		if err != nil {
			return nil, err
		}
		for _, data := range uploads {
			return data, nil
		}
		return nil, fmt.Errorf("no file attached")
	}
	defer c.Request.Body.Close()
	return io.ReadAll(c.Request.Body)
}
