package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20 // 1MB
)

// Client envuelve *http.Client con el contrato de errores del front:
// todo falla como *Error (red, status no-2xx o JSON inválido).
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, los paths relativos se resuelven contra él
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimSpace(baseURL)
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	c := New(timeout)
	if tr == nil {
		tr = http.DefaultTransport
	}
	c.HTTP.Transport = tr
	return c
}

// Request describe una llamada. Body nil => sin body.
type Request struct {
	Method  string
	Path    string // URL absoluta o path relativo a BaseURL
	Headers map[string]string
	Body    any
}

// Response es una respuesta 2xx ya leída.
// Body es el JSON parseado (map/slice/...) o, si no era JSON, el texto crudo.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       any
	Raw        []byte
	JSON       bool
}

// Decode vuelca el body en out. Body vacío => no toca out.
func (r *Response) Decode(out any) error {
	if r == nil || out == nil || len(bytes.TrimSpace(r.Raw)) == 0 {
		return nil
	}
	if !r.JSON {
		return &Error{
			Kind:       KindParse,
			HTTPStatus: r.StatusCode,
			Message:    "invalid json response",
			Payload:    r.Body,
		}
	}
	if err := json.Unmarshal(r.Raw, out); err != nil {
		return &Error{
			Kind:       KindParse,
			HTTPStatus: r.StatusCode,
			Message:    "unexpected response shape",
			Payload:    r.Body,
			Err:        err,
		}
	}
	return nil
}

// Do es el primitivo: arma URL, headers JSON, manda, y normaliza la respuesta.
func (c *Client) Do(ctx context.Context, in Request) (*Response, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(in.Path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in.Body != nil {
		b, err := json.Marshal(in.Body)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := in.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	// Siempre JSON, con o sin body.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	for k, v := range in.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindNetwork,
			Message: "network error",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, &Error{
			Kind:       KindNetwork,
			HTTPStatus: resp.StatusCode,
			Message:    "network error",
			Err:        err,
		}
	}

	parsed, isJSON := parseBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:       KindStatus,
			HTTPStatus: resp.StatusCode,
			Message:    messageFor(resp.StatusCode, parsed, isJSON),
			Payload:    parsed,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       parsed,
		Raw:        raw,
		JSON:       isJSON,
	}, nil
}

// DoJSON hace Do + Decode(out). Devuelve los headers de la respuesta (cookies, etc).
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) (http.Header, error) {
	resp, err := c.Do(ctx, Request{Method: method, Path: pathOrURL, Headers: headers, Body: in})
	if err != nil {
		return nil, err
	}
	if err := resp.Decode(out); err != nil {
		return resp.Header, err
	}
	return resp.Header, nil
}

func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Headers: headers})
}

func (c *Client) Post(ctx context.Context, path string, headers map[string]string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Headers: headers, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, headers map[string]string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Headers: headers, Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, headers map[string]string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Headers: headers, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Headers: headers})
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	return JoinURL(c.BaseURL, pathOrURL), nil
}

// JoinURL concatena base + path dejando exactamente una "/" en la unión.
func JoinURL(base, path string) string {
	switch {
	case path == "":
		return base
	case strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/"):
		return base + path[1:]
	case !strings.HasSuffix(base, "/") && !strings.HasPrefix(path, "/"):
		return base + "/" + path
	default:
		return base + path
	}
}

// parseBody intenta JSON y cae a texto.
func parseBody(raw []byte) (any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed), false
	}
	return v, true
}

// messageFor: "error" del server, luego "message", luego texto crudo, luego "Error <status>".
func messageFor(status int, payload any, isJSON bool) string {
	if isJSON {
		if m, ok := payload.(map[string]any); ok {
			for _, key := range []string{"error", "message"} {
				if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	} else if s, ok := payload.(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("Error %d", status)
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxBodyBytes
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
