package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
	"github.com/glimmerpics/glimmer/internal/pkg/env"
)

const (
	// deliveryHost is the CDN host whose URLs we know how to rewrite.
	// Anything else passes through untouched.
	deliveryHost = "res.cloudinary.com"

	// uploadMarker is the fixed path segment transformation instructions
	// are inserted after.
	uploadMarker = "/upload/"
)

var (
	widthToken = regexp.MustCompile(`\bw_\d+\b`)

	// transformSegment recognizes a transformation path segment: it must
	// lead with a width token, so public ids that merely contain a
	// width-looking substring never match.
	transformSegment = regexp.MustCompile(`^w_\d+(,|$)`)
)

// Config holds the unsigned-upload settings for the media CDN.
type Config struct {
	CloudName    string
	UploadPreset string
	APIBase      string // override for tests; defaults to the CDN API
}

// LoadConfig loads media gateway configuration from environment variables.
func LoadConfig() Config {
	return Config{
		CloudName:    env.GetEnv("MEDIA_CLOUD_NAME", ""),
		UploadPreset: env.GetEnv("MEDIA_UPLOAD_PRESET", ""),
		APIBase:      env.GetEnv("MEDIA_API_BASE", "https://api.cloudinary.com/v1_1"),
	}
}

// Gateway uploads raw image files to the media CDN and rewrites canonical
// delivery URLs into size-optimized ones.
type Gateway struct {
	cfg  Config
	http *http.Client
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the raw file to the CDN's unsigned upload endpoint and returns
// the canonical delivery URL.
func (g *Gateway) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if g.cfg.CloudName == "" {
		return "", apperrors.ConfigurationMissingf("MEDIA_CLOUD_NAME is not set")
	}
	if g.cfg.UploadPreset == "" {
		return "", apperrors.ConfigurationMissingf("MEDIA_UPLOAD_PRESET is not set")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.WriteField("upload_preset", g.cfg.UploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(g.cfg.APIBase, "/"), g.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.http.Do(req)
	if err != nil {
		return "", apperrors.RemoteUnavailablef("media upload failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil && resp.StatusCode < 300 {
		return "", apperrors.RemoteUnavailablef("failed to decode upload response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := parsed.Error.Message
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", apperrors.UploadRejectedf("%s", reason)
	}

	if parsed.SecureURL == "" {
		return "", apperrors.RemoteUnavailablef("upload response carried no delivery URL")
	}

	log.Infof("[Media] Uploaded %s -> %s", filename, parsed.SecureURL)
	return parsed.SecureURL, nil
}

// BuildDeliveryURL rewrites a canonical delivery URL to request the given
// display width. Idempotent: a URL that already carries a width token gets
// only the numeric part replaced. Foreign URLs pass through unchanged.
func BuildDeliveryURL(canonicalURL string, targetWidth int) string {
	parsed, err := url.Parse(canonicalURL)
	if err != nil || parsed.Host != deliveryHost {
		return canonicalURL
	}

	idx := strings.Index(canonicalURL, uploadMarker)
	if idx < 0 {
		return canonicalURL
	}

	// Only the path segment directly after the marker can carry an existing
	// transformation; anything further in is version or public id.
	pos := idx + len(uploadMarker)
	rest := canonicalURL[pos:]
	segment := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		segment = rest[:slash]
	}

	if transformSegment.MatchString(segment) {
		rewritten := widthToken.ReplaceAllString(segment, fmt.Sprintf("w_%d", targetWidth))
		return canonicalURL[:pos] + rewritten + rest[len(segment):]
	}

	transform := fmt.Sprintf("w_%d,c_limit,f_auto,q_auto/", targetWidth)
	return canonicalURL[:pos] + transform + rest
}
