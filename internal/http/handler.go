package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alpr-service/internal/config"
	"alpr-service/internal/domain/recognition"
	"alpr-service/internal/http/middleware"
	"alpr-service/internal/registry"
	"alpr-service/internal/service"
	"alpr-service/internal/storage"
)

type Handler struct {
	recognitions *service.RecognitionService
	registry     *service.RegistryService
	config       *config.Config
	log          zerolog.Logger
	snapshots    *storage.SnapshotStore
}

func NewHandler(
	recognitions *service.RecognitionService,
	reg *service.RegistryService,
	cfg *config.Config,
	log zerolog.Logger,
	snapshots *storage.SnapshotStore,
) *Handler {
	return &Handler{
		recognitions: recognitions,
		registry:     reg,
		config:       cfg,
		log:          log,
		snapshots:    snapshots,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public endpoints
	public := r.Group("/api/v1")
	{
		public.POST("/recognitions", h.createRecognition)
		public.GET("/registry/lookup", h.lookupPlate)
		public.GET("/registry/search", h.searchRegistry)
		public.GET("/plates", h.listPlates)
		public.GET("/events", h.listEvents)
	}

	// Protected endpoints
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.POST("/registry", h.registerVehicle)
		protected.DELETE("/registry/:plate", h.deregisterVehicle)
		protected.GET("/events/export", h.exportEvents)
		protected.POST("/recognitions/:id/snapshot", h.uploadSnapshot)
		protected.POST("/events/cleanup", h.cleanupEvents)
	}
}

func (h *Handler) createRecognition(c *gin.Context) {
	var payload recognition.EventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if payload.EventTime.IsZero() {
		payload.EventTime = time.Now()
	}

	h.log.Info().
		Str("plate_text", payload.PlateText).
		Str("camera_id", payload.CameraID).
		Msg("processing recognition event")

	result, err := h.recognitions.ProcessIncomingEvent(c.Request.Context(), payload, h.config.Camera.Model)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.log.Warn().
				Err(err).
				Str("plate_text", payload.PlateText).
				Str("camera_id", payload.CameraID).
				Msg("invalid input for recognition event")
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		h.log.Error().
			Err(err).
			Str("plate_text", payload.PlateText).
			Str("camera_id", payload.CameraID).
			Msg("failed to process recognition event")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":     "ok",
		"event_id":   result.EventID,
		"validation": result.Validation,
		"lookup":     result.Lookup,
		"registered": result.Registered,
	})
}

func (h *Handler) lookupPlate(c *gin.Context) {
	plateQuery := strings.TrimSpace(c.Query("plate"))
	if plateQuery == "" {
		c.JSON(http.StatusBadRequest, errorResponse("plate parameter is required"))
		return
	}

	validated, lookup, err := h.recognitions.ResolvePlate(plateQuery)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"validation": validated,
		"lookup":     lookup,
	}))
}

func (h *Handler) searchRegistry(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("owner"))
	state := strings.TrimSpace(c.Query("state"))

	switch {
	case owner != "":
		c.JSON(http.StatusOK, successResponse(h.registry.FindByOwner(owner)))
	case state != "":
		c.JSON(http.StatusOK, successResponse(h.registry.FindByStateCode(state)))
	default:
		c.JSON(http.StatusBadRequest, errorResponse("owner or state parameter is required"))
	}
}

func (h *Handler) listPlates(c *gin.Context) {
	plateQuery := strings.TrimSpace(c.Query("plate"))
	if plateQuery == "" {
		c.JSON(http.StatusBadRequest, errorResponse("plate parameter is required"))
		return
	}

	plates, err := h.recognitions.FindPlates(c.Request.Context(), plateQuery)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(plates))
}

func (h *Handler) listEvents(c *gin.Context) {
	var plateQuery *string
	if plate := strings.TrimSpace(c.Query("plate")); plate != "" {
		plateQuery = &plate
	}

	var from, to *string
	if f := strings.TrimSpace(c.Query("from")); f != "" {
		from = &f
	}
	if t := strings.TrimSpace(c.Query("to")); t != "" {
		to = &t
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := parseInt(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := parseInt(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	events, err := h.recognitions.FindEvents(c.Request.Context(), plateQuery, from, to, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(events))
}

func (h *Handler) registerVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok || !principal.CanManageRegistry() {
		c.JSON(http.StatusForbidden, errorResponse("insufficient permissions"))
		return
	}

	var req struct {
		PlateNumber string `json:"plate_number" binding:"required"`
		OwnerName   string `json:"owner_name" binding:"required"`
		State       string `json:"state"`
		VehicleType string `json:"vehicle_type"`
		Color       string `json:"color"`
		Year        int    `json:"year"`
		PlateType   string `json:"plate_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	rec, err := h.registry.Register(c.Request.Context(), registry.Record{
		PlateNumber: req.PlateNumber,
		OwnerName:   req.OwnerName,
		State:       req.State,
		VehicleType: req.VehicleType,
		Color:       req.Color,
		Year:        req.Year,
		PlateType:   req.PlateType,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(rec))
}

func (h *Handler) deregisterVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok || !principal.CanManageRegistry() {
		c.JSON(http.StatusForbidden, errorResponse("insufficient permissions"))
		return
	}

	if err := h.registry.Deregister(c.Request.Context(), c.Param("plate")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) exportEvents(c *gin.Context) {
	var plateQuery *string
	if plate := strings.TrimSpace(c.Query("plate")); plate != "" {
		plateQuery = &plate
	}
	var from, to *string
	if f := strings.TrimSpace(c.Query("from")); f != "" {
		from = &f
	}
	if t := strings.TrimSpace(c.Query("to")); t != "" {
		to = &t
	}

	buf, err := h.recognitions.ExportEvents(c.Request.Context(), plateQuery, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := "alpr-events-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) uploadSnapshot(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse("snapshot storage is not configured"))
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	fileHeader, err := c.FormFile("snapshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("snapshot file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("failed to read snapshot file"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.snapshots.UploadSnapshot(c.Request.Context(), eventID, file, fileHeader.Size, contentType, fileHeader.Filename)
	if err != nil {
		h.log.Error().Err(err).Str("event_id", eventID.String()).Msg("failed to upload snapshot")
		c.JSON(http.StatusInternalServerError, errorResponse("failed to upload snapshot"))
		return
	}

	if err := h.recognitions.AttachSnapshot(c.Request.Context(), eventID, url); err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("event_id", eventID.String()).
		Str("snapshot_url", url).
		Msg("snapshot uploaded")

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"snapshot_url": url,
	})
}

func (h *Handler) cleanupEvents(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok || !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, errorResponse("insufficient permissions"))
		return
	}

	days := h.config.EventRetentionDays
	if d := c.Query("days"); d != "" {
		if parsed, err := parseInt(d); err == nil && parsed > 0 {
			days = parsed
		}
	}

	deleted, err := h.recognitions.CleanupOldEvents(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"deleted": deleted,
		"days":    days,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
