package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrNotConfigured = errors.New("image upload key is not set")
	ErrUpload        = errors.New("image upload failed")
)

// MaxImageBytes caps profile and rider photos.
const MaxImageBytes = 5 << 20

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client uploads photos to the image host and returns their public URL.
type Client struct {
	httpClient *http.Client
	uploadURL  string
	apiKey     string
}

func NewClient(uploadURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploadURL:  uploadURL,
		apiKey:     apiKey,
	}
}

func (c *Client) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(part, io.LimitReader(image, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if n > MaxImageBytes {
		return "", fmt.Errorf("%w: image larger than %d bytes", ErrUpload, MaxImageBytes)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := c.uploadURL + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpload, err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return "", fmt.Errorf("%w: status %d %s", ErrUpload, resp.StatusCode, out.Error.Message)
	}

	if out.Data.DisplayURL != "" {
		return out.Data.DisplayURL, nil
	}
	return out.Data.URL, nil
}
