package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/apperr"
)

// ParamID parses a positive numeric route parameter
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("Invalid " + name + ".")
	}
	return uint(id), nil
}

// FormValue returns the first non-empty form value among names
func FormValue(c *fiber.Ctx, names ...string) string {
	for _, name := range names {
		if v := c.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

// FormUint is FormValue for numeric ids; 0 when absent or malformed
func FormUint(c *fiber.Ctx, names ...string) uint {
	id, err := strconv.ParseUint(FormValue(c, names...), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// FormFile opens an optional multipart file. It returns nil when the field is
// missing or empty; the returned func closes the file and is always safe to call.
func FormFile(c *fiber.Ctx, field string) (*storage.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperr.Internal("Failed to read uploaded file.", err)
	}

	// browsers send octet-stream for unknown types; let the extension decide instead
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == fiber.MIMEOctetStream {
		contentType = ""
	}

	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
