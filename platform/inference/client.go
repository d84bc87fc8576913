package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medscan_gateway/models"
)

// Client talks to the external model backend. Every call is one-shot:
// no retries, no cancellation beyond the context.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ProgressFunc receives bytes sent so far and the request body total.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil {
			p.onProgress(p.sent, p.total)
		}
	}
	return n, err
}

// AnalyzeImage posts the staged image as a multipart body (field "file")
// to the given endpoint path and decodes the backend's analysis fields.
func (c *Client) AnalyzeImage(ctx context.Context, path string, scan *models.StagedScan, onProgress ProgressFunc) (*models.BackendAnalysis, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", scan.Filename)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(scan.Data); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}

	total := int64(body.Len())
	reader := &progressReader{r: body, total: total, onProgress: onProgress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("inference backend returned %s for %s", resp.Status, path)
	}

	var parsed models.BackendAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ChatWithReport sends one message plus the stored report and returns
// the single AI reply.
func (c *Client) ChatWithReport(ctx context.Context, message, report string) (string, error) {
	payload, err := json.Marshal(models.ChatBackendReq{Message: message, Report: report})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat_with_report/", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat backend returned %s", resp.Status)
	}

	var parsed models.ChatBackendRes
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	return parsed.Response, nil
}

// SearchDoctors queries the directory. Empty specialty means "any";
// the backend interprets it.
func (c *Client) SearchDoctors(ctx context.Context, location, specialty string) ([]models.DoctorRecord, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("specialty", specialty)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/search-doctors?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("doctor directory returned %s", resp.Status)
	}

	var doctors []models.DoctorRecord
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// BookAppointment posts a validated appointment request. Only
// success/failure is acknowledged.
func (c *Client) BookAppointment(ctx context.Context, booking *models.AppointmentRequest) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/book-appointment/", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("booking backend returned %s", resp.Status)
	}
	return nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		fmt.Printf("Error closing response body, %v", err)
	}
}
