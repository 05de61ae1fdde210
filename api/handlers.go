package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pagestamp/pagestamp/analyze"
	"github.com/pagestamp/pagestamp/merge"
	"github.com/pagestamp/pagestamp/overlay"
	"github.com/pagestamp/pagestamp/unlock"
)

type server struct {
	config *Config
	log    *slog.Logger
	comp   *overlay.Compositor
	merger *merge.Merger
}

func newServer(config *Config) *server {
	log := slog.Default()
	return &server{
		config: config,
		log:    log,
		comp:   overlay.NewCompositor(nil),
		merger: merge.NewMerger(log),
	}
}

// handleUpload stores a PDF in the temp directory and returns its path
// for later calls.
func (s *server) handleUpload(c *gin.Context) {
	inFile, name, ok := s.saveUpload(c, "pdf", "upload")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": name, "path": inFile})
}

// handleAnalyze reports detected headers and footers as JSON.
func (s *server) handleAnalyze(c *gin.Context) {
	inFile, _, ok := s.saveUpload(c, "pdf", "analysis")
	if !ok {
		return
	}
	defer s.cleanupLater(inFile)

	mode, err := parseMode(c.DefaultPostForm("mode", "combined"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := analyze.DefaultConfig()
	if v := c.PostForm("max_pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_pages must be a positive integer"})
			return
		}
		cfg.MaxPages = n
	}

	report := analyze.NewAnalyzerWithConfig(cfg).Analyze(inFile, mode)
	c.JSON(http.StatusOK, report)
}

// handleProcess stamps header/footer text onto the uploaded file and
// returns the result for download.
func (s *server) handleProcess(c *gin.Context) {
	opts := overlay.Options{
		HeaderText:  c.PostForm("header"),
		FooterText:  c.PostForm("footer"),
		NormalizeA4: c.PostForm("normalize_a4") == "true",
	}
	if opts.HeaderText == "" && opts.FooterText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "header or footer text is required"})
		return
	}
	structured := c.PostForm("structured") == "true"

	s.servePDFOperation(c, "stamped", func(inFile, outFile string) error {
		if structured {
			err := overlay.StampStructured(inFile, outFile, opts)
			if !errors.Is(err, overlay.ErrNonASCII) {
				return err
			}
		}
		err := s.comp.Stamp(inFile, outFile, opts)
		if errors.Is(err, overlay.ErrLossyEncoding) {
			s.log.Warn("stamped with lossy text encoding", slog.String("error", err.Error()))
			return nil
		}
		return err
	})
}

// handleMerge combines several uploaded PDFs into one download.
func (s *server) handleMerge(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	files := form.File["pdfs"]
	if len(files) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least two PDF files are required"})
		return
	}

	if err := ensureTempDir(s.config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	uniqueID := generateUniqueID()
	var inputs []string
	for i, fh := range files {
		if fh.Size > s.config.MaxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file %s exceeds the size limit", fh.Filename)})
			return
		}
		inFile := filepath.Join(s.config.TempDir, fmt.Sprintf("merge_%s_%d.pdf", uniqueID, i))
		if err := c.SaveUploadedFile(fh, inFile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
			return
		}
		inputs = append(inputs, inFile)
	}
	defer s.cleanupLater(inputs...)

	outFile := filepath.Join(s.config.TempDir, "merged_"+uniqueID+".pdf")
	opts := merge.Options{
		Output:         outFile,
		AddPageNumbers: c.PostForm("page_numbers") == "true",
	}

	res, err := s.merger.Merge(inputs, opts)
	if err != nil {
		s.log.Error("merge failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncateError(err)})
		return
	}
	defer s.cleanupLater(res.Output)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="merged.pdf"`)
	c.File(res.Output)
}

// handleUnlock removes encryption from the uploaded file.
func (s *server) handleUnlock(c *gin.Context) {
	password := c.PostForm("password")
	s.servePDFOperation(c, "unlocked", func(inFile, outFile string) error {
		return unlock.Unlock(inFile, outFile, password)
	})
}

// handlePageNumbers stamps running page numbers onto the uploaded file.
func (s *server) handlePageNumbers(c *gin.Context) {
	opts := overlay.NumberOptions{
		Template: c.PostForm("template"),
		Position: c.PostForm("position"),
	}
	if v := c.PostForm("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a positive integer"})
			return
		}
		opts.Start = n
	}

	s.servePDFOperation(c, "numbered", func(inFile, outFile string) error {
		return overlay.AddPageNumbers(inFile, outFile, opts)
	})
}

// servePDFOperation saves the uploaded "pdf" field, runs the operation,
// and streams the produced file back as a download named after the
// original upload.
func (s *server) servePDFOperation(c *gin.Context, suffix string, operation func(inFile, outFile string) error) {
	inFile, originalName, ok := s.saveUpload(c, "pdf", "input")
	if !ok {
		return
	}
	defer s.cleanupLater(inFile)

	uniqueID := strings.TrimSuffix(filepath.Base(inFile), ".pdf")
	outFile := filepath.Join(s.config.TempDir, "output_"+uniqueID+"_"+suffix+".pdf")

	if err := operation(inFile, outFile); err != nil {
		os.Remove(outFile)
		s.log.Error("pdf operation failed",
			slog.String("operation", suffix), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncateError(err)})
		return
	}
	if _, err := os.Stat(outFile); os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation did not produce an output file"})
		return
	}
	defer s.cleanupLater(outFile)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(originalName, suffix)))
	c.File(outFile)
}

// saveUpload validates and stores the uploaded field in the temp
// directory. It writes the HTTP error response itself on failure.
func (s *server) saveUpload(c *gin.Context, field, prefix string) (path, originalName string, ok bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return "", "", false
	}
	defer file.Close()

	if err := validatePDFFile(file, header.Size, s.config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	if err := ensureTempDir(s.config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return "", "", false
	}

	path = filepath.Join(s.config.TempDir, prefix+"_"+generateUniqueID()+".pdf")
	out, err := os.Create(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return "", "", false
	}
	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return "", "", false
	}
	return path, sanitizeFilename(header.Filename), true
}

func parseMode(v string) (analyze.Mode, error) {
	switch v {
	case "combined", "":
		return analyze.Combined, nil
	case "structured":
		return analyze.Structured, nil
	case "heuristic":
		return analyze.Heuristic, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want combined, structured or heuristic)", v)
}
