package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/pdftext"
	importservice "github.com/FACorreiaa/statement-importer/internal/domain/import/service"
	"github.com/FACorreiaa/statement-importer/pkg/interceptors"
	"github.com/FACorreiaa/statement-importer/pkg/storage"
)

// DefaultMaxUploadBytes bounds the multipart body when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

const (
	msgNoText     = "No extractable text. The PDF may be scanned."
	msgUnreadable = "The file is not a readable PDF document."
)

// Archiver keeps a copy of each uploaded statement.
type Archiver interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, contentType string, r io.Reader) (*storage.FileInfo, error)
}

// ImportHandler handles statement uploads
type ImportHandler struct {
	importSvc *importservice.ImportService
	archive   Archiver
	maxUpload int64
	logger    *slog.Logger
}

// NewImportHandler creates a new import handler. archive may be nil.
func NewImportHandler(importSvc *importservice.ImportService, archive Archiver, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importSvc: importSvc,
		archive:   archive,
		maxUpload: DefaultMaxUploadBytes,
		logger:    logger,
	}
}

// WithMaxUploadBytes sets the largest accepted request body
func (h *ImportHandler) WithMaxUploadBytes(n int64) *ImportHandler {
	if n > 0 {
		h.maxUpload = n
	}
	return h
}

// ImportPDF handles POST /api/expenses/import/pdf. The statement is read from
// the multipart field "file". With preview=true the normalized text is returned
// and nothing is stored.
func (h *ImportHandler) ImportPDF(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := interceptors.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid user id")
		return
	}

	preview := false
	if v := r.URL.Query().Get("preview"); v != "" {
		preview, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "preview must be true or false")
			return
		}
	}

	data, filename, status, msg := h.readUpload(w, r)
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	if preview {
		p, err := h.importSvc.Preview(data)
		if err != nil {
			h.writeImportError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	h.archiveUpload(r.Context(), userID, filename, data)

	result, err := h.importSvc.Import(r.Context(), userID, data)
	if err != nil {
		h.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// archiveUpload stores a copy of an imported statement. Failures are logged only.
func (h *ImportHandler) archiveUpload(ctx context.Context, userID uuid.UUID, filename string, data []byte) {
	if h.archive == nil {
		return
	}
	info, err := h.archive.Upload(ctx, userID, filename, "application/pdf", bytes.NewReader(data))
	if err != nil {
		h.logger.Warn("failed to archive statement", slog.String("user_id", userID.String()), "error", err)
		return
	}
	h.logger.Debug("statement archived", slog.String("file_id", info.ID.String()), slog.Int64("size", info.Size))
}

// readUpload returns the uploaded file, or a non-zero status with a message.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", http.StatusBadRequest, "file too large"
		}
		return nil, "", http.StatusBadRequest, "expected multipart form upload"
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", http.StatusBadRequest, "file is required"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", http.StatusBadRequest, "failed to read file"
	}
	if len(data) == 0 {
		return nil, "", http.StatusBadRequest, "file is empty"
	}
	return data, header.Filename, 0, ""
}

func (h *ImportHandler) writeImportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pdftext.ErrNoExtractableText):
		writeError(w, http.StatusBadRequest, msgNoText)
	case errors.Is(err, pdftext.ErrUnreadableDocument):
		writeError(w, http.StatusBadRequest, msgUnreadable)
	default:
		h.logger.Error("statement import failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "import failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
