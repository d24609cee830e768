package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"passwordSimBackend/internal/core/domain"
	"passwordSimBackend/internal/port"
	"passwordSimBackend/internal/shared"
)

// Handler is the thin boundary over the core services. It owns no state
// beyond the injected services and masks matched plaintexts before display.
type Handler struct {
	attacks port.AttackService
	devices port.DeviceService
}

func NewHandler(attacks port.AttackService, devices port.DeviceService) *Handler {
	return &Handler{
		attacks: attacks,
		devices: devices,
	}
}

type attackRequest struct {
	TargetDigest string              `json:"targetDigest" binding:"required"`
	Method       domain.AttackMethod `json:"method" binding:"required"`
	Params       domain.AttackParams `json:"params"`
}

type attackResponse struct {
	domain.AttackResult
	MaskedPassword string `json:"maskedPassword,omitempty"`
}

func (h *Handler) RunAttack(c *gin.Context) {
	var req attackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Method == domain.MethodDictionary && req.Params.WordlistPath == "" {
		req.Params.WordlistPath = shared.State.WordlistPath
	}

	result, err := h.attacks.RunAttack(c.Request.Context(), domain.AttackRequest{
		TargetDigest: req.TargetDigest,
		Method:       req.Method,
		Params:       req.Params,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := attackResponse{AttackResult: *result}
	if result.Success {
		resp.MaskedPassword = maskPassword(result.Password)
		resp.Password = ""
	}
	c.JSON(http.StatusOK, resp)
}

type generateDigestRequest struct {
	Plaintext string `json:"plaintext"`
}

func (h *Handler) GenerateDigest(c *gin.Context) {
	var req generateDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	digest, err := h.attacks.GenerateDigest(c.Request.Context(), req.Plaintext)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest": digest})
}

type validateDigestRequest struct {
	Digest string `json:"digest" binding:"required"`
}

func (h *Handler) ValidateDigest(c *gin.Context) {
	var req validateDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.attacks.ValidateDigest(c.Request.Context(), req.Digest))
}

func (h *Handler) ListSamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"samples": h.attacks.Samples(c.Request.Context())})
}

func (h *Handler) AttackStatistics(c *gin.Context) {
	stats, err := h.attacks.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"aiConfigured": shared.State.AIConfigured(),
		"sampleCount":  len(h.attacks.Samples(c.Request.Context())),
	})
}

type createDeviceRequest struct {
	Type          domain.DeviceType    `json:"type" binding:"required"`
	SecurityLevel domain.SecurityLevel `json:"securityLevel" binding:"required"`
	Code          string               `json:"code"`
}

func (h *Handler) CreateDevice(c *gin.Context) {
	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.devices.Create(c.Request.Context(), req.Type, req.SecurityLevel, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.devices.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (h *Handler) DetectDevice(c *gin.Context) {
	device, err := h.devices.Detect(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

type unlockRequest struct {
	Code   string `json:"code" binding:"required"`
	Method string `json:"method"`
}

func (h *Handler) UnlockDevice(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Method == "" {
		req.Method = "manual"
	}

	outcome, err := h.devices.Unlock(c.Request.Context(), c.Param("id"), req.Code, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) ResetDevice(c *gin.Context) {
	if err := h.devices.Reset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

func (h *Handler) QuickSetup(c *gin.Context) {
	devices, err := h.devices.QuickSetup(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"devices": devices})
}

func (h *Handler) UnlockStatistics(c *gin.Context) {
	stats, err := h.devices.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// respondError maps the typed domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrSuspiciousDigest):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDeviceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDeviceLockedOut):
		status = http.StatusLocked
	case errors.Is(err, domain.ErrAIUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidDigest),
		errors.Is(err, domain.ErrEmptyPlaintext),
		errors.Is(err, domain.ErrUnknownMethod),
		errors.Is(err, domain.ErrLengthLimit),
		errors.Is(err, domain.ErrUnknownDevice),
		errors.Is(err, domain.ErrUnknownSecurity):
		status = http.StatusBadRequest
	default:
		shared.Logger.Error("unhandled request error", "error", err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// maskPassword hides all but a short prefix of a matched plaintext.
func maskPassword(password string) string {
	runes := []rune(password)
	if len(runes) <= 2 {
		return "***"
	}
	return string(runes[:2]) + "***"
}
