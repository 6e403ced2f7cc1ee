package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
}

// FileAttachment is the single optional binary part of a multipart request.
type FileAttachment struct {
	FieldName string
	Filename  string
	Content   []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

var ErrTimeout = errors.New("request timed out")

type Client struct {
	httpClient *http.Client
}

func CreateClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SendRequest sends an HTTP request based on the given HttpRequest struct
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) (Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewBuffer(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %v", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	return c.do(request)
}

// SendMultipartRequest encodes the given fields, plus an optional file
// attachment, as a multipart/form-data body and sends it.
func (c *Client) SendMultipartRequest(ctx context.Context, method string, url string, fields map[string]string, file *FileAttachment) (Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return Response{}, fmt.Errorf("failed to write multipart field %s: %v", key, err)
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.Filename)
		if err != nil {
			return Response{}, fmt.Errorf("failed to create multipart file part: %v", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return Response{}, fmt.Errorf("failed to write multipart file part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		return Response{}, fmt.Errorf("failed to finalize multipart body: %v", err)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %v", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(request)
}

func (c *Client) do(request *http.Request) (Response, error) {
	response, err := c.httpClient.Do(request)
	if err != nil {
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return Response{}, ErrTimeout
		}
		return Response{}, fmt.Errorf("request failed: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Response{StatusCode: response.StatusCode}, fmt.Errorf("failed to read response body: %v", err)
	}

	return Response{StatusCode: response.StatusCode, Body: body}, nil
}
