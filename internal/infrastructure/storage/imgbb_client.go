package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"undulcito/internal/domain/service"
)

const imgbbUploadURL = "https://api.imgbb.com/1/upload"

// ImgbbClient uploads images to imgbb.com with an API key.
type ImgbbClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewImgbbClient(apiKey string) *ImgbbClient {
	return &ImgbbClient{
		apiKey:     apiKey,
		endpoint:   imgbbUploadURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ImgbbClient) Upload(ctx context.Context, image service.ImageUpload) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("imgbb api key is not configured")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", image.Filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image.Body); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+url.QueryEscape(c.apiKey), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgbb upload: %w", err)
	}
	defer resp.Body.Close()

	var body imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("imgbb upload: status %d: unreadable response: %w", resp.StatusCode, err)
	}
	if !body.Success || body.Data.URL == "" {
		msg := body.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("imgbb upload failed: %s", msg)
	}

	return body.Data.URL, nil
}
