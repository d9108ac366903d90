package validators

import (
	"bytes"
	"io"
	"net/http"

	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
)

// MIME allow-lists for the two upload surfaces.
var (
	ImageTypes = []string{"image/png", "image/jpeg"}
	PDFTypes   = []string{"application/pdf"}
)

const mimeSniffLen = 512

// FormFile reads the named multipart field, enforces the size cap and
// checks the sniffed content type against allowed. The returned reader
// replays the whole file.
func FormFile(r *http.Request, field string, maxBytes int64, allowed []string) (io.Reader, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File not attached.")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
	}
	if int64(len(data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File too large.")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File not attached.")
	}

	sniff := data
	if len(sniff) > mimeSniffLen {
		sniff = sniff[:mimeSniffLen]
	}
	contentType := http.DetectContentType(sniff)
	if !typeAllowed(contentType, allowed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File type not allowed.").
			WithDetails(map[string]any{"field": field, "contentType": contentType})
	}
	return bytes.NewReader(data), nil
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if contentType == t {
			return true
		}
	}
	return false
}
