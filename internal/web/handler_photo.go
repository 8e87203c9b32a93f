package web

import (
	"bytes"
	"io"
	"net/http"

	"github.com/roomboard/roomboard/internal/service"
)

const maxPhotoSize = 10 * 1024 * 1024 // 10 MB

// allowedImageTypes is the set of MIME types accepted for listing photos.
// net/http.DetectContentType covers JPEG, PNG, and GIF by magic bytes; WebP
// is sniffed separately because the WHATWG spec (and therefore the stdlib)
// has no WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// handleUploadPhoto stores a listing photo and returns the URL to place in a
// room record's photoUrl field. The record service itself never interprets
// the URL; it is an opaque string.
func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if s.identity(r) == nil {
		s.writeError(w, service.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeJSON(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "image file required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "failed to read image")
		return
	}

	mime, ok := allowedImageMIME(data)
	if !ok {
		writeJSON(w, http.StatusBadRequest, "unsupported image format")
		return
	}

	key, err := s.photoStg.Save(r.Context(), "room", mime, bytes.NewReader(data))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"photoUrl": "/photos/" + key})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	reader, mime, err := s.photoStg.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, "photo not found")
		return
	}
	defer func() { _ = reader.Close() }()

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error().Err(err).Msg("failed to stream photo")
	}
}
