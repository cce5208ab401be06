package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/timeline-detective/core"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/outwriter"
	"github.com/huangsam/timeline-detective/internal/timeline"
	"github.com/huangsam/timeline-detective/schema"
)

// handler holds common dependencies for the API handlers.
type handler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// health handles GET /health
func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Timeline Detective API is running",
	})
}

// summary handles POST /api/v1/summary
func (h *handler) summary(c *gin.Context) {
	cfg := h.baseCfg.Clone()
	tl, source, err := h.loadTimeline(c, cfg)
	if err != nil {
		loadFailed(c, err)
		return
	}

	summary := timeline.Summarize(tl)
	summary.Source = source
	success(c, gin.H{
		"message": summary.Message(),
		"summary": summary,
	})
}

// analyze handles POST /api/v1/analyze
func (h *handler) analyze(c *gin.Context) {
	cfg := h.baseCfg.Clone()

	overrides := contract.Overrides{
		Lat:         c.PostForm("lat"),
		Lng:         c.PostForm("lng"),
		Granularity: c.PostForm("granularity"),
		Timezone:    c.PostForm("timezone"),
		Start:       c.PostForm("start"),
		End:         c.PostForm("end"),
	}
	if r := c.PostForm("radius"); r != "" {
		radius, err := strconv.Atoi(r)
		if err != nil {
			badRequest(c, "Invalid radius parameter")
			return
		}
		overrides.Radius = &radius
	}
	if err := contract.ApplyOverrides(cfg, overrides); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := cfg.RequireCenter(); err != nil {
		badRequest(c, "lat and lng are required")
		return
	}

	tl, _, err := h.loadTimeline(c, cfg)
	if err != nil {
		loadFailed(c, err)
		return
	}

	result := core.AnalyzeTimeline(tl, cfg)

	if schema.OutputMode(c.DefaultQuery("format", c.PostForm("format"))) == schema.CSVOut {
		c.Header("Content-Disposition", "attachment; filename="+outwriter.DefaultCSVFileName)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := outwriter.WriteResultsCSV(c.Writer, result); err != nil {
			_ = c.Error(err)
		}
		return
	}

	success(c, result)
}

// loadTimeline decodes the uploaded "file" part. A request that carries no
// upload at all falls back to the file the server was started with, then to
// the stored import. Broken multipart bodies and uploads under another field
// name are load errors.
func (h *handler) loadTimeline(c *gin.Context, cfg *contract.Config) (*schema.Timeline, string, error) {
	header, err := c.FormFile("file")
	switch {
	case err == nil:
	case errors.Is(err, http.ErrNotMultipart):
		return h.loadFallback(c, cfg)
	case errors.Is(err, http.ErrMissingFile):
		if form := c.Request.MultipartForm; form != nil && len(form.File) > 0 {
			return nil, "", &timeline.LoadError{
				Status: timeline.StatusNoFile,
				Err:    fmt.Errorf("upload must use the %q field", "file"),
			}
		}
		return h.loadFallback(c, cfg)
	default:
		return nil, "", &timeline.LoadError{Status: timeline.StatusReadError, Err: err}
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	tl, err := timeline.Load(c.Request.Context(), f, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, "", err
	}
	return tl, header.Filename, nil
}

func (h *handler) loadFallback(c *gin.Context, cfg *contract.Config) (*schema.Timeline, string, error) {
	cfg.Import = false
	return core.LoadTimeline(c.Request.Context(), cfg, h.mgr)
}
