package cloudinary

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"homevista_backend/pkg/utils/validation"
)

const (
	// MaxBatchSize caps one multi-file upload batch.
	MaxBatchSize = 10

	defaultBaseURL = "https://api.cloudinary.com"
)

// Config carries the media-host account settings. BaseURL is overridable
// for tests and defaults to the public API endpoint.
type Config struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	Folder       string
	BaseURL      string
}

// Client uploads, deletes and addresses assets on the media host.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// UploadedImage is the normalized result of a completed upload.
type UploadedImage struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// Progress reports deliverable byte counts while a request body is being
// sent. Callbacks are advisory; completion is signalled by Upload
// returning, not by Percentage reaching 100.
type Progress struct {
	Loaded     int64 `json:"loaded"`
	Total      int64 `json:"total"`
	Percentage int   `json:"percentage"`
}

type ProgressFunc func(Progress)

// FileResult is the per-file outcome delivered by UploadMultiple's
// completion callback.
type FileResult struct {
	Index    int
	Filename string
	Image    *UploadedImage
	Err      error
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Validate runs the upload pre-checks without any I/O.
func (c *Client) Validate(file *multipart.FileHeader) error {
	return validation.ValidateImage(file)
}

// Upload validates the file, sends it to the media host and maps the
// response into an UploadedImage. onProgress may be nil.
func (c *Client) Upload(ctx context.Context, file *multipart.FileHeader, onProgress ProgressFunc) (*UploadedImage, error) {
	if err := c.Validate(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("could not build upload request: %v", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, fmt.Errorf("could not read file: %v", err)
	}
	writer.WriteField("upload_preset", c.cfg.UploadPreset)
	writer.WriteField("api_key", c.cfg.APIKey)
	writer.WriteField("folder", c.cfg.Folder)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not build upload request: %v", err)
	}

	total := int64(body.Len())
	reader := &progressReader{r: body, total: total, onProgress: onProgress}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("could not build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrAborted
		}
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rejected := &UploadRejectedError{StatusCode: resp.StatusCode}
		var hostErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&hostErr); err == nil {
			rejected.Message = hostErr.Error.Message
		}
		return nil, rejected
	}

	var res uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("could not decode media host response: %v", err)
	}

	return &UploadedImage{
		ID:       res.PublicID,
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Width:    res.Width,
		Height:   res.Height,
		Format:   res.Format,
		Bytes:    res.Bytes,
	}, nil
}

// UploadMultiple uploads the files concurrently and independently: one
// file failing does not cancel the others. It fails fast with
// ErrTooManyFiles before issuing any request when the batch exceeds
// MaxBatchSize. The returned error is non-nil if any file failed;
// onComplete (may be nil, must be safe for concurrent use) sees every
// per-file outcome, so callers can track partial success.
func (c *Client) UploadMultiple(ctx context.Context, files []*multipart.FileHeader, onProgress func(index int, p Progress), onComplete func(FileResult)) ([]*UploadedImage, error) {
	if len(files) > MaxBatchSize {
		return nil, ErrTooManyFiles
	}

	images := make([]*UploadedImage, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()

			var pf ProgressFunc
			if onProgress != nil {
				pf = func(p Progress) { onProgress(i, p) }
			}

			img, err := c.Upload(ctx, file, pf)
			images[i], errs[i] = img, err

			if onComplete != nil {
				onComplete(FileResult{Index: i, Filename: file.Filename, Image: img, Err: err})
			}
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return images, fmt.Errorf("one or more uploads failed: %w", err)
		}
	}
	return images, nil
}

// Destroy removes an asset by public id. The request is signed with
// HMAC-SHA1 over the sorted, &-joined key=value pairs of
// {public_id, timestamp} using the account secret.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	})

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: media host returned status %d", ErrDeletionFailed, resp.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	if body.Result != "ok" {
		return fmt.Errorf("%w: media host answered %q", ErrDeletionFailed, body.Result)
	}
	return nil
}

func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	mac := hmac.New(sha1.New, []byte(c.cfg.APISecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

// progressReader counts bytes handed to the transport and reports them.
type progressReader struct {
	r          io.Reader
	loaded     int64
	total      int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(Progress{
				Loaded:     p.loaded,
				Total:      p.total,
				Percentage: int(math.Round(float64(p.loaded) / float64(p.total) * 100)),
			})
		}
	}
	return n, err
}
