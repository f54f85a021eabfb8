package handler

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// AttachmentHandler serves the files attached to tracking records.
type AttachmentHandler struct {
	attachments ports.AttachmentService
	maxBytes    int64
}

// NewAttachmentHandler returns a handler that rejects request bodies larger
// than maxBytes plus room for the multipart envelope.
func NewAttachmentHandler(attachments ports.AttachmentService, maxBytes int64) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, maxBytes: maxBytes}
}

// envelope bounds the multipart overhead allowed on top of the file itself.
const envelope = 1 << 20

// List handles GET /archivos/:id_indicador/:gestion.
//
// @Summary      Attachments of a tracking record
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id_indicador  path     int  true  "Indicator id"
// @Param        gestion       path     int  true  "Year"
// @Success      200           {array}  domain.Attachment
// @Router       /archivos/{id_indicador}/{gestion} [get]
func (h *AttachmentHandler) List(c echo.Context) error {
	indicatorID, err := idParam(c, "id_indicador")
	if err != nil {
		return err
	}
	year, err := yearParam(c, "gestion")
	if err != nil {
		return err
	}
	list, err := h.attachments.List(c.Request().Context(), indicatorID, year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Upload handles POST /archivos (multipart/form-data).
//
// @Summary      Attach a file to a tracking record
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id_indicador  formData  int     true   "Indicator id"
// @Param        gestion       formData  int     true   "Year"
// @Param        descripcion   formData  string  false  "Description"
// @Param        archivo       formData  file    true   "File"
// @Success      201           {object}  domain.Attachment
// @Failure      400           {object}  errorResponse
// @Failure      413           {object}  errorResponse
// @Router       /archivos [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	if h.maxBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxBytes+envelope)
	}

	var form uploadForm
	if err := c.Bind(&form); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return domain.ErrFileTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	fh, err := c.FormFile("archivo")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return domain.ErrFileTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "archivo is required")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return domain.ErrFileTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	a, err := h.attachments.Upload(c.Request().Context(), ports.UploadInput{
		IndicatorID:  form.IndicatorID,
		Year:         form.Year,
		Description:  form.Description,
		OriginalName: fh.Filename,
		Content:      src,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Delete handles DELETE /archivos/:id.
//
// @Summary      Delete an attachment
// @Tags         attachments
// @Security     BearerAuth
// @Param        id   path  string  true  "Attachment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /archivos/{id} [delete]
func (h *AttachmentHandler) Delete(c echo.Context) error {
	if err := h.attachments.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /archivos/download/:id.
//
// @Summary      Download an attachment
// @Tags         attachments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path  string  true  "Attachment id"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /archivos/download/{id} [get]
func (h *AttachmentHandler) Download(c echo.Context) error {
	a, rc, err := h.attachments.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(a.OriginalName))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": a.OriginalName}))
	return c.Stream(http.StatusOK, contentType, rc)
}
