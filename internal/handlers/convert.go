package handlers

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/codec"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/convert"
	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/models"
)

// HandleConvert accepts a multipart upload of HEIC/HEIF files, converts
// them into a fresh session, and returns per-file outcomes plus the
// session ID for the later archive download.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "Invalid upload or upload too large: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		h.writeError(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	quality := codec.DefaultQuality
	if q := r.FormValue("quality"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 || parsed > 100 {
			h.writeError(w, "quality must be an integer between 1 and 100", http.StatusBadRequest)
			return
		}
		quality = parsed
	}

	var reqs []convert.Request
	var failed []models.FailedFile
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}
		if !convert.IsHEIC(fh.Filename) {
			failed = append(failed, models.FailedFile{Name: fh.Filename, Error: "not a HEIC/HEIF file"})
			continue
		}
		data, err := readUpload(fh)
		if err != nil {
			failed = append(failed, models.FailedFile{Name: fh.Filename, Error: "failed to read upload: " + err.Error()})
			continue
		}
		reqs = append(reqs, convert.Request{Name: fh.Filename, Data: data})
	}

	id, err := h.manager.Create()
	if err != nil {
		h.writeError(w, "Failed to create session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	slog.Info("Conversion session created", "session_id", id, "files", len(files))

	results, err := h.manager.Populate(id, reqs, quality)
	if err != nil {
		h.manager.Expire(id)
		h.writeError(w, "Conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var converted []models.ConvertedFile
	for _, res := range results {
		if !res.Succeeded() {
			failed = append(failed, models.FailedFile{Name: res.Name, Error: res.Err.Error()})
			continue
		}
		width, height := jpegDimensions(res.Data)
		converted = append(converted, models.ConvertedFile{
			Original:  res.Name,
			Converted: res.Output,
			Size:      int64(len(res.Data)),
			Width:     width,
			Height:    height,
		})
	}

	if len(converted) == 0 {
		// Nothing to download later; release the session now.
		h.manager.Expire(id)
		h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  "No files were converted",
			Failed: failed,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, models.ConvertResponse{
		Success:        true,
		SessionID:      id,
		Converted:      converted,
		Failed:         failed,
		TotalConverted: len(converted),
		TotalFailed:    len(failed),
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// jpegDimensions reads the pixel size of the converted output.
// Best-effort: a decode failure just reports zero dimensions.
func jpegDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to read output dimensions", "err", err)
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
