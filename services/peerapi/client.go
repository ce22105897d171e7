package peerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

// Client talks to the remote peer-review API. It is the concrete
// review.Gateway: expected HTTP failures surface as ok=false, never as
// errors the menu layer would have to interpret.
type Client struct {
	base *url.URL
	http *http.Client
	log  core.Logger
}

var _ review.Gateway = (*Client)(nil)

func NewClient(baseURL string, log core.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "peerapi.NewClient(%s)", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "peerapi.NewClient: cookie jar")
	}
	return &Client{
		base: base,
		http: &http.Client{Jar: jar},
		log:  log,
	}, nil
}

func (c *Client) resolve(relativePath string) string {
	ref := &url.URL{Path: relativePath}
	return c.base.ResolveReference(ref).String()
}

// Fetch GETs a relative path. Both transport errors and non-2xx
// statuses come back as ok=false.
func (c *Client) Fetch(ctx context.Context, relativePath string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(relativePath), nil)
	if err != nil {
		c.log.Error("peerapi: building GET request", err)
		return nil, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("peerapi: GET "+relativePath, err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("peerapi: reading GET "+relativePath, err)
		return nil, false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Info("peerapi: GET "+relativePath, resp.Status)
		return nil, false
	}
	return body, true
}

// Post sends payload as JSON and reports success. The response body is
// discarded; callers that need it use PostForBody.
func (c *Client) Post(ctx context.Context, relativePath string, payload interface{}) bool {
	_, ok := c.PostForBody(ctx, relativePath, payload)
	return ok
}

// PostForBody sends payload as JSON and returns the response body with
// a success flag. The login and enroll flows read their tokens from it.
func (c *Client) PostForBody(ctx context.Context, relativePath string, payload interface{}) ([]byte, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("peerapi: encoding POST "+relativePath, err)
		return nil, false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(relativePath), bytes.NewReader(data))
	if err != nil {
		c.log.Error("peerapi: building POST request", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("peerapi: POST "+relativePath, err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("peerapi: reading POST "+relativePath, err)
		return nil, false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Info("peerapi: POST "+relativePath, resp.Status)
		return body, false
	}
	return body, true
}

// UploadPDF posts a PDF answer as multipart form data: the file under
// "file", the metadata as a JSON "data" field.
func (c *Client) UploadPDF(ctx context.Context, relativePath string, meta interface{}, filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		c.log.Warn("peerapi: opening upload "+filePath, err)
		return false
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filepath.Base(filePath)+`"`)
	hdr.Set("Content-Type", "application/pdf")
	part, err := form.CreatePart(hdr)
	if err != nil {
		c.log.Error("peerapi: building multipart form", err)
		return false
	}
	if _, err := io.Copy(part, file); err != nil {
		c.log.Warn("peerapi: reading upload "+filePath, err)
		return false
	}

	data, err := json.Marshal(meta)
	if err != nil {
		c.log.Error("peerapi: encoding upload metadata", err)
		return false
	}
	if err := form.WriteField("data", string(data)); err != nil {
		c.log.Error("peerapi: building multipart form", err)
		return false
	}
	if err := form.Close(); err != nil {
		c.log.Error("peerapi: building multipart form", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(relativePath), &buf)
	if err != nil {
		c.log.Error("peerapi: building upload request", err)
		return false
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("peerapi: POST "+relativePath, err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// Timeout overrides the underlying client timeout. Zero means none:
// for an interactive CLI a hung call simply blocks the prompt.
func (c *Client) Timeout(d time.Duration) { c.http.Timeout = d }
