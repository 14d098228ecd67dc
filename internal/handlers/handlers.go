package handlers

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/middleware"
	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

// requireCaller fetches the identity RequireAuth attached.
func requireCaller(c *fiber.Ctx) (models.Caller, error) {
	caller, ok := middleware.Caller(c)
	if !ok {
		return models.Caller{}, utils.Unauthorized("please login to continue")
	}
	return caller, nil
}

// pageLimit coerces non-numeric page/limit query params to the defaults.
func pageLimit(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = repository.DefaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = repository.DefaultLimit
	}
	return repository.ClampPage(page), repository.ClampLimit(limit)
}

func readFileHeader(fh *multipart.FileHeader) (*services.FileUpload, error) {
	if err := utils.ValidateFileHeader(fh); err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, utils.Internal("cannot open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, utils.Internal("cannot read uploaded file")
	}
	return &services.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// fileFromForm returns nil when the field is absent.
func fileFromForm(c *fiber.Ctx, field string) (*services.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readFileHeader(fh)
}

func filesFromForm(c *fiber.Ctx, field string) ([]services.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	headers := form.File[field]
	uploads := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		up, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *up)
	}
	return uploads, nil
}
