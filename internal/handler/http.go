package handler

import (
	"errors"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	"github.com/Sameer-09816/api/internal/service"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint.
const Version = "1.1.0"

type ThreadResponse struct {
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Avatar   string   `json:"avatar,omitempty"`
	Caption  string   `json:"caption,omitempty"`
	URL      []string `json:"url,omitempty"`
	Username string   `json:"username,omitempty"`
}

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type HTTPHandler struct {
	cfg         *config.Config
	downloadSvc *service.DownloadService
}

func NewHTTPHandler(cfg *config.Config, downloadSvc *service.DownloadService) *HTTPHandler {
	return &HTTPHandler{
		cfg:         cfg,
		downloadSvc: downloadSvc,
	}
}

func (h *HTTPHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/download", h.handleDownload)
	app.Get("/health", h.handleHealth)
}

func (h *HTTPHandler) handleDownload(c *fiber.Ctx) error {
	urlOrID := c.Query("url_or_id")

	thread, err := h.downloadSvc.Download(c.UserContext(), urlOrID)
	if err != nil {
		return err
	}

	return c.JSON(ThreadResponse{
		OK:       true,
		Message:  "Content retrieved successfully",
		Avatar:   thread.Avatar,
		Caption:  thread.Caption,
		URL:      thread.URLs,
		Username: thread.Username,
	})
}

func (h *HTTPHandler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// HandleError is installed as the Fiber error handler. Every failure
// that escapes a handler is translated here, so a broken upstream or a
// bad request never takes the worker down.
func (h *HTTPHandler) HandleError(c *fiber.Ctx, err error) error {
	status, message := classifyError(err)

	log.WithFields(log.Fields{
		"path":   c.Path(),
		"status": status,
		"error":  err,
	}).Error("request failed")

	resp := ErrorResponse{OK: false, Message: message}
	if h.cfg.Debug {
		resp.Detail = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func classifyError(err error) (int, string) {
	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "Invalid Threads URL or ID format"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "Content not found"
	case errors.Is(err, domain.ErrTimeout):
		return fiber.StatusGatewayTimeout, "Upstream request timed out"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "Error processing your request"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Error processing your request"
	}
}
