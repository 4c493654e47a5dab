// Package azure uploads blobs to Azure Blob Storage using Shared Key
// authorization over the plain REST surface.
package azure

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

const (
	apiVersion     = "2021-08-06"
	requestTimeout = 30 * time.Second
)

// Uploader is the surface services depend on so tests can stub storage.
type Uploader interface {
	Upload(ctx context.Context, blobName, contentType string, data []byte) (string, error)
	Container() string
}

// Client talks to a single storage account and container.
type Client struct {
	httpClient  *http.Client
	accountName string
	accountKey  []byte
	container   string
	endpoint    string
	logger      *logger.Logger
}

// NewClient validates credentials and returns a ready client.
func NewClient(cfg config.AzureBlobConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.AccountName) == "" {
		return nil, errors.New("storage account name is required")
	}
	if strings.TrimSpace(cfg.Container) == "" {
		return nil, errors.New("storage container is required")
	}

	key, err := base64.StdEncoding.DecodeString(cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("decoding storage account key: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("storage account key is required")
	}

	endpoint := fmt.Sprintf("https://%s.blob.%s", cfg.AccountName, cfg.EndpointSuffix)

	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		accountName: cfg.AccountName,
		accountKey:  key,
		container:   cfg.Container,
		endpoint:    endpoint,
		logger:      logg,
	}, nil
}

// Container returns the configured container name.
func (c *Client) Container() string {
	if c == nil {
		return ""
	}
	return c.container
}

// Upload performs a Put Blob call and returns the blob URL.
func (c *Client) Upload(ctx context.Context, blobName, contentType string, data []byte) (string, error) {
	if strings.TrimSpace(blobName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "blob name is required")
	}

	blobURL := fmt.Sprintf("%s/%s/%s", c.endpoint, c.container, url.PathEscape(blobName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, blobURL, bytes.NewReader(data))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building upload request")
	}

	now := time.Now().UTC().Format(http.TimeFormat)
	req.Header.Set("x-ms-blob-type", "BlockBlob")
	req.Header.Set("x-ms-date", now)
	req.Header.Set("x-ms-version", apiVersion)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.ContentLength = int64(len(data))

	auth := c.authorizationHeader(http.MethodPut, req.Header, len(data), c.container, blobName)
	req.Header.Set("Authorization", auth)

	if c.logger != nil {
		c.logger.Info(ctx, fmt.Sprintf("uploading blob %s (%d bytes)", blobName, len(data)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading blob")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Warn(ctx, fmt.Sprintf("blob upload failed with status %d: %s", resp.StatusCode, string(body)))
		}
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("blob storage returned status %d", resp.StatusCode))
	}

	return blobURL, nil
}

func (c *Client) authorizationHeader(verb string, headers http.Header, contentLength int, container, blobName string) string {
	stringToSign := buildStringToSign(verb, headers, contentLength, c.accountName, container, blobName)
	mac := hmac.New(sha256.New, c.accountKey)
	mac.Write([]byte(stringToSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("SharedKey %s:%s", c.accountName, signature)
}

func buildStringToSign(verb string, headers http.Header, contentLength int, account, container, blobName string) string {
	length := ""
	if contentLength > 0 {
		length = fmt.Sprint(contentLength)
	}

	parts := []string{
		verb,
		"", // Content-Encoding
		"", // Content-Language
		length,
		"", // Content-MD5
		headers.Get("Content-Type"),
		"", // Date, superseded by x-ms-date
		"", // If-Modified-Since
		"", // If-Match
		"", // If-None-Match
		"", // If-Unmodified-Since
		"", // Range
		canonicalizedHeaders(headers),
		fmt.Sprintf("/%s/%s/%s", account, container, blobName),
	}
	return strings.Join(parts, "\n")
}

func canonicalizedHeaders(headers http.Header) string {
	var keys []string
	for key := range headers {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "x-ms-") {
			keys = append(keys, lower)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+":"+strings.TrimSpace(headers.Get(key)))
	}
	return strings.Join(lines, "\n")
}
