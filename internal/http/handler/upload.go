package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cookbook/internal/service"
	"cookbook/internal/storage"
)

// UploadMessage acknowledges a stored upload.
const UploadMessage = "File uploaded successfully"

// Upload stores the multipart field "file".
//
//	@Summary	Upload a file
//	@Tags		uploads
//	@Accept		mpfd
//	@Produce	json
//	@Param		file	formData	file	true	"File"
//	@Success	201		{object}	storage.ObjectInfo
//	@Failure	400		{object}	errorPayload
//	@Router		/upload [post]
func Upload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		info, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": UploadMessage,
			"file":    info,
		})
	}
}

// Download streams back a stored upload by the key Upload returned.
//
//	@Summary	Download an uploaded file
//	@Tags		uploads
//	@Produce	octet-stream
//	@Param		key	path		string	true	"Object key"
//	@Success	200	{file}		binary
//	@Failure	404	{object}	errorPayload
//	@Router		/upload/{key} [get]
func Download(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.Open(c.UserContext(), c.Params("*"))
		switch {
		case errors.Is(err, service.ErrKeyRequired):
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file key is required")
		case errors.Is(err, storage.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		case err != nil:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}
