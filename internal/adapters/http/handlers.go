package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// uploadField is the multipart field that carries the GeoJSON file.
const uploadField = "file"

var errNoUpload = errors.New("no GeoJSON file uploaded")

// readUpload returns the uploaded GeoJSON document. A multipart request must
// carry it in the "file" field; anything else is taken as the raw body.
func readUpload(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile(uploadField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	if len(c.Request().Header.MultipartFormBoundary()) > 0 {
		return nil, errNoUpload
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, errNoUpload
	}
	// Body is only valid inside the handler.
	return append([]byte(nil), body...), nil
}

// IndexHandler serves the upload form.
func IndexHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, fiber.StatusOK, newPageData(deps.Profiles.Filename()))
	}
}

// UploadFormHandler converts a file posted from the form and renders the
// page again with either a download button or the error message.
func UploadFormHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := newPageData(deps.Profiles.Filename())

		raw, err := readUpload(c)
		if err != nil {
			page.Error = conversionFailedMessage
			return renderPage(c, fiber.StatusBadRequest, page)
		}

		res, err := deps.Profiles.Convert(c.UserContext(), raw)
		if err != nil {
			page.Error = conversionFailedMessage
			return renderPage(c, fiber.StatusUnprocessableEntity, page)
		}

		return renderPage(c, fiber.StatusOK, page.withResult(res))
	}
}

// ConvertDXFHandler returns the converted drawing as a file attachment.
func ConvertDXFHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := readUpload(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		res, err := deps.Profiles.Convert(c.UserContext(), raw)
		if err != nil {
			return errConversion(c, err)
		}

		c.Attachment(res.Filename)
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set("X-Conversion-Id", res.Event.ID)
		c.Set("X-Profile-Points", strconv.Itoa(res.Event.Points))
		return c.Send(res.Data)
	}
}

// ProfileJSONHandler returns the flattened profile and its grid range.
func ProfileJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := readUpload(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		sum, err := deps.Profiles.Profile(c.UserContext(), raw)
		if err != nil {
			return errConversion(c, err)
		}
		return c.JSON(sum)
	}
}
