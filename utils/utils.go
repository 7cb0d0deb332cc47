package utils

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"math/big"
	"strings"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/types"

	"github.com/gofiber/fiber/v2"
)

const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingID returns PCL-<YYYYMMDD>-<5 uppercase base36 chars> for the booking day.
// src defaults to crypto/rand when nil.
func GenerateTrackingID(now time.Time, src io.Reader) (string, error) {
	if src == nil {
		src = rand.Reader
	}

	var sb strings.Builder
	sb.WriteString("PCL-")
	sb.WriteString(now.Format("20060102"))
	sb.WriteByte('-')

	base := big.NewInt(int64(len(trackingAlphabet)))
	for i := 0; i < 5; i++ {
		n, err := rand.Int(src, base)
		if err != nil {
			return "", err
		}
		sb.WriteByte(trackingAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeEmail lowercases and trims an email for lookups and comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if looksLikeCredentials(c.Path()) {
		return "[CREDENTIALS_REMOVED]"
	}
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// auth payloads carry passwords and provider tokens
func looksLikeCredentials(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// redactHeaders drops the bearer token and session cookies from a raw header block.
func redactHeaders(raw []byte) string {
	lines := strings.Split(string(raw), "\r\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "authorization:") ||
			strings.HasPrefix(lower, "cookie:") ||
			strings.HasPrefix(lower, "set-cookie:") {
			name := line[:strings.IndexByte(line, ':')]
			lines[i] = name + ": [REDACTED]"
		}
	}
	return strings.Join(lines, "\r\n")
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestID, _ := c.Locals(constants.LocalsRequestID).(string)

	return types.LogEntry{
		RequestID:       requestID,
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  redactHeaders(c.Request().Header.Header()),
		ResponseHeaders: redactHeaders(c.Response().Header.Header()),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
