// internal/api/handlers/reorder_handler.go
package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mcampagna/riordino/internal/config"
	"github.com/mcampagna/riordino/internal/domain"
	"github.com/mcampagna/riordino/internal/report"
	"github.com/mcampagna/riordino/internal/service"
	"github.com/mcampagna/riordino/internal/vendors"
)

type ReorderHandler struct {
	reorderService *service.ReorderService
	cfg            *config.Config
}

func NewReorderHandler(reorderService *service.ReorderService, cfg *config.Config) *ReorderHandler {
	return &ReorderHandler{reorderService: reorderService, cfg: cfg}
}

// Compute handles the upload of one or more sales exports plus the optional
// vendor reference, runs the engine and returns the run summaries. The
// computation is synchronous: a single SAP export is small enough that the
// caller just waits for its workbooks.
func (h *ReorderHandler) Compute(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	params, err := h.readParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vendorRef, err := h.readVendorRef(c, form.File["vendors"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := report.SortAlphabetical
	if c.PostForm("sort") == string(report.SortRelevance) {
		mode = report.SortRelevance
	}

	uploaded, err := h.saveUploads(c, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploads"})
		return
	}

	summaries, err := h.reorderService.ProcessFiles(c.Request.Context(), uploaded, params, vendorRef, mode)
	if err != nil {
		status := http.StatusInternalServerError
		if domain.IsValidationError(err) || domain.IsConfigError(err) {
			status = http.StatusUnprocessableEntity
		}
		log.Error().Err(err).Msg("failed to process sales exports")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}

// VendorTemplate extracts the vendor list of an uploaded export and returns
// the reference CSV skeleton to fill in.
func (h *ReorderHandler) VendorTemplate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	uploaded, err := h.saveUploads(c, []*multipart.FileHeader{file})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	path, err := h.reorderService.WriteVendorTemplate(uploaded[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to build vendor template")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(path, "vendors_template.csv")
}

// Download serves a previously generated workbook from the output directory.
func (h *ReorderHandler) Download(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	if name == "." || name == "/" || strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}

	path := filepath.Join(h.cfg.App.OutputDir, name)
	c.FileAttachment(path, name)
}

func (h *ReorderHandler) readParams(c *gin.Context) (domain.ReorderParameters, error) {
	defaults := h.cfg.Reorder
	params := domain.ReorderParameters{
		LeadTimeDays: defaults.LeadTimeDays,
		CoverageDays: defaults.CoverageDays,
		SafetyDays:   defaults.SafetyDays,
	}

	fields := []struct {
		name string
		dest *int
	}{
		{"lead_time", &params.LeadTimeDays},
		{"coverage", &params.CoverageDays},
		{"safety", &params.SafetyDays},
	}
	for _, field := range fields {
		raw := strings.TrimSpace(c.PostForm(field.name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return params, &domain.ConfigError{Field: field.name, Value: raw}
		}
		*field.dest = value
	}
	return params, nil
}

func (h *ReorderHandler) readVendorRef(c *gin.Context, headers []*multipart.FileHeader) (map[string]domain.VendorInfo, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	f, err := headers[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vendors.Load(f)
}

func (h *ReorderHandler) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]*domain.UploadedFile, error) {
	uploaded := make([]*domain.UploadedFile, 0, len(files))
	for i, file := range files {
		// Index prefix keeps uploads sharing a basename from clobbering
		// each other within one request.
		filePath := filepath.Join(h.cfg.App.UploadDir, strconv.Itoa(i)+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, filePath); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			return nil, err
		}
		uploaded = append(uploaded, &domain.UploadedFile{
			Filename: file.Filename,
			Path:     filePath,
			Size:     file.Size,
		})
	}
	return uploaded, nil
}
