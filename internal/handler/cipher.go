package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cipherloom-go/internal/cache"
	"github.com/cipherloom-go/internal/config"
	"github.com/cipherloom-go/internal/encryption"
	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/metrics"
	"github.com/cipherloom-go/internal/trace"
)

// CipherRequest is the body of /api/v1/encrypt and /api/v1/decrypt. Either
// Cipher or Preset names the cipher; Params override a preset's params.
type CipherRequest struct {
	Cipher  string                 `json:"cipher"`
	Preset  string                 `json:"preset"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params"`
}

// CipherResult is the data of a successful cipher response
type CipherResult struct {
	Cipher    encryption.Kind      `json:"cipher"`
	Direction encryption.Direction `json:"direction"`
	Result    string               `json:"result"`
	Cached    bool                 `json:"cached,omitempty"`
}

// BatchRequest is the body of /api/v1/batch
type BatchRequest struct {
	Jobs []encryption.Job `json:"jobs"`
}

// CipherHandler handles /api/v1/* routes
type CipherHandler struct {
	cfg   *config.Config
	cache *cache.Cache
}

// NewCipherHandler creates a new cipher handler. results may be nil to
// disable caching.
func NewCipherHandler(cfg *config.Config, results *cache.Cache) *CipherHandler {
	return &CipherHandler{cfg: cfg, cache: results}
}

// ListCiphers returns the registered ciphers and configured presets
func (h *CipherHandler) ListCiphers(c *gin.Context) {
	presets := make([]config.Preset, 0, len(h.cfg.Cipher.Presets))
	for _, p := range h.cfg.Cipher.Presets {
		presets = append(presets, p)
	}
	RespondSuccess(c.Writer, gin.H{
		"ciphers": encryption.Describe(),
		"presets": presets,
	})
}

// Encrypt handles POST /api/v1/encrypt
func (h *CipherHandler) Encrypt(c *gin.Context) {
	h.handle(c, encryption.DirEncrypt)
}

// Decrypt handles POST /api/v1/decrypt
func (h *CipherHandler) Decrypt(c *gin.Context) {
	h.handle(c, encryption.DirDecrypt)
}

func (h *CipherHandler) handle(c *gin.Context, dir encryption.Direction) {
	ctx := c.Request.Context()
	logger := trace.Logger(ctx)

	var req CipherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c.Writer, logger, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	kind, params, err := h.resolve(req.Cipher, req.Preset, req.Params)
	if err != nil {
		RespondError(c.Writer, logger, err)
		return
	}

	result, cached, err := h.run(c, kind, dir, req.Message, params)
	if err != nil {
		RespondError(c.Writer, logger, err)
		return
	}

	RespondSuccess(c.Writer, CipherResult{
		Cipher:    kind,
		Direction: dir,
		Result:    result,
		Cached:    cached,
	})
}

// Batch handles POST /api/v1/batch. Failed jobs are reported inline.
func (h *CipherHandler) Batch(c *gin.Context) {
	ctx := c.Request.Context()
	logger := trace.Logger(ctx)

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c.Writer, logger, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}
	if limit := h.cfg.Cipher.MaxBatchJobs; limit > 0 && len(req.Jobs) > limit {
		RespondError(c.Writer, logger, errors.NewBadRequest(fmt.Sprintf("batch has %d jobs, limit is %d", len(req.Jobs), limit)))
		return
	}

	jobs := make([]encryption.Job, len(req.Jobs))
	for i, job := range req.Jobs {
		jobs[i] = h.expandPreset(job)
	}

	start := time.Now()
	results, err := encryption.RunBatch(ctx, h.baseParams(), jobs, h.cfg.Cipher.BatchConcurrency)
	if err != nil {
		RespondError(c.Writer, logger, errors.NewInternalWithCause("batch interrupted", err))
		return
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info().Int("jobs", len(jobs)).Int("failed", failed).Dur("elapsed", time.Since(start)).Msg("batch complete")

	RespondSuccess(c.Writer, gin.H{"results": results})
}

// baseParams returns the defaults every request starts from
func (h *CipherHandler) baseParams() encryption.Params {
	base := encryption.DefaultParams()
	if f := h.cfg.Cipher.DefaultFiller; f != "" {
		base.Filler = f
	}
	return base
}

// resolve picks the cipher kind and params from a cipher name or preset
func (h *CipherHandler) resolve(cipher, preset string, raw map[string]interface{}) (encryption.Kind, encryption.Params, error) {
	base := h.baseParams()

	if preset != "" {
		p, ok := h.cfg.Preset(preset)
		if !ok {
			return "", base, errors.NewNotFound(fmt.Sprintf("unknown preset: %s", preset))
		}
		var err error
		if base, err = base.Merge(p.Params); err != nil {
			return "", base, err
		}
		cipher = p.Cipher
	}

	kind, err := encryption.ParseKind(cipher)
	if err != nil {
		return "", base, err
	}
	params, err := base.Merge(raw)
	if err != nil {
		return "", base, err
	}
	return kind, params, nil
}

// expandPreset replaces a job naming a preset with the preset's cipher and
// params, job params taking precedence
func (h *CipherHandler) expandPreset(job encryption.Job) encryption.Job {
	if encryption.IsRegistered(encryption.Kind(job.Cipher)) {
		return job
	}
	p, ok := h.cfg.Preset(job.Cipher)
	if !ok {
		return job
	}

	merged := make(map[string]interface{}, len(p.Params)+len(job.Params))
	for k, v := range p.Params {
		merged[k] = v
	}
	for k, v := range job.Params {
		merged[k] = v
	}
	job.Cipher = p.Cipher
	job.Params = merged
	return job
}

func (h *CipherHandler) run(c *gin.Context, kind encryption.Kind, dir encryption.Direction, message string, params encryption.Params) (string, bool, error) {
	ctx := c.Request.Context()
	exec := func() (string, error) {
		start := time.Now()
		out, err := encryption.Run(ctx, kind, dir, message, params)
		metrics.ObserveCipher(string(kind), string(dir), time.Since(start), err)
		return out, err
	}

	if h.cache == nil {
		out, err := exec()
		return out, false, err
	}

	out, hit, err := h.cache.GetOrLoad(cacheKey(kind, dir, message, params), exec)
	metrics.ObserveCache(hit)
	return out, hit, err
}

func cacheKey(kind encryption.Kind, dir encryption.Direction, message string, params encryption.Params) string {
	p, _ := json.Marshal(params)
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(dir))
	h.Write([]byte{0})
	h.Write(p)
	h.Write([]byte{0})
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
