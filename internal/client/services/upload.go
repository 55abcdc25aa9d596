package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/client/client"
)

// MaxUploadSize bounds the file accepted by UploadService.
const MaxUploadSize = 64 << 20

// ErrUploadTooLarge is returned before any request is sent.
var ErrUploadTooLarge = fmt.Errorf("upload exceeds %d bytes", MaxUploadSize)

// UploadService sends body-analysis files (CSV keypoints or video).
type UploadService struct {
	caller Caller
}

func NewUploadService(c Caller) *UploadService {
	return &UploadService{caller: c}
}

// Upload posts r as a multipart "file" field. The whole body is buffered
// so a refresh-and-retry can replay it.
func (s *UploadService) Upload(ctx context.Context, filename string, r io.Reader) (*api.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, api.UploadFormField, filepath.Base(filename)))
	h.Set("Content-Type", contentTypeOf(filename))
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}

	n, err := io.Copy(part, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n > MaxUploadSize {
		return nil, ErrUploadTooLarge
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := s.caller.Do(ctx, client.Request{
		Method:      http.MethodPost,
		Path:        api.PathBodyUpload,
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(filename), err)
	}

	var out api.UploadResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

func contentTypeOf(filename string) string {
	switch ext := filepath.Ext(filename); ext {
	case ".csv":
		return "text/csv"
	case "":
		return "application/octet-stream"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
