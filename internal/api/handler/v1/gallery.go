package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

const maxImageSize = 10 << 20 // 10 MiB

type GalleryService interface {
	AddImage(ctx context.Context, actor domain.Actor, image domain.GalleryImage, filename string, data []byte) (domain.GalleryImage, error)
	ListImages(ctx context.Context, eventID uint) ([]domain.GalleryImage, error)
	DeleteImage(ctx context.Context, actor domain.Actor, id uint) error
}

type GalleryHandler struct {
	svc  GalleryService
	uSvc UserService
}

func NewGalleryHandler(svc GalleryService, uSvc UserService) *GalleryHandler {
	return &GalleryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListImages godoc
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Param        event_id  query     int  false  "filter by event"
// @Success      200  {array}   domain.GalleryImage
// @Failure      500  {object}  response.Err
// @Router       /gallery [get]
func (h *GalleryHandler) HandleListImages(ctx *gin.Context) {
	var eventID uint
	if raw := ctx.Query("event_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("event_id must be a positive integer")))
			return
		}
		eventID = uint(v)
	}

	images, err := h.svc.ListImages(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListImages -> h.svc.ListImages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, images)
}

// HandleUploadImage godoc
// @Summary      Upload a gallery image
// @Description  Reviewer only. Multipart form with an "image" file, optional "caption" and "event_id" fields.
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Param        image     formData  file    true   "image file"
// @Param        caption   formData  string  false  "caption"
// @Param        event_id  formData  int     false  "event the image belongs to"
// @Success      201  {object}  domain.GalleryImage
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery [post]
// @Security BearerAuth
func (h *GalleryHandler) HandleUploadImage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("an image file is required")))
		return
	}
	if fileHeader.Size > maxImageSize {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("image exceeds the 10MB limit")))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> fileHeader.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> io.ReadAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	image := domain.GalleryImage{
		Caption: ctx.PostForm("caption"),
	}
	if raw := ctx.PostForm("event_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("event_id must be a positive integer")))
			return
		}
		eventID := uint(v)
		image.EventID = &eventID
	}

	created, err := h.svc.AddImage(ctx.Request.Context(), actorOf(user), image, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleUploadImage -> h.svc.AddImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteImage godoc
// @Summary      Delete a gallery image
// @Description  Admin team only.
// @Tags         gallery
// @Produce      json
// @Param        imageID  path      int  true  "image ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{imageID} [delete]
// @Security BearerAuth
func (h *GalleryHandler) HandleDeleteImage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	imageID, err := parseUintParam(ctx, "imageID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteImage(ctx.Request.Context(), actorOf(user), imageID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteImage -> h.svc.DeleteImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
