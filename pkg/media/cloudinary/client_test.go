package cloudinary

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homevista_backend/pkg/utils/validation"
)

func makeFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func testClient(serverURL string) *Client {
	return New(Config{
		CloudName:    "demo",
		APIKey:       "key123",
		APISecret:    "secret123",
		UploadPreset: "unsigned_preset",
		Folder:       "properties",
		BaseURL:      serverURL,
	})
}

func TestUpload_MapsResponseFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "unsigned_preset", r.FormValue("upload_preset"))
		assert.Equal(t, "properties", r.FormValue("folder"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"public_id": "properties/abc123",
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/properties/abc123.jpg",
			"width": 1200,
			"height": 800,
			"format": "jpg",
			"bytes": 204800
		}`)
	}))
	defer server.Close()

	img, err := testClient(server.URL).Upload(context.Background(), makeFileHeader(t, "house.jpg", "image/jpeg", 2048), nil)
	require.NoError(t, err)

	assert.Equal(t, "properties/abc123", img.ID)
	assert.Equal(t, "properties/abc123", img.PublicID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/properties/abc123.jpg", img.URL)
	assert.Equal(t, 1200, img.Width)
	assert.Equal(t, 800, img.Height)
	assert.Equal(t, "jpg", img.Format)
	assert.Equal(t, int64(204800), img.Bytes)
}

func TestUpload_ReportsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id":"p","secure_url":"u"}`)
	}))
	defer server.Close()

	var mu sync.Mutex
	var updates []Progress
	_, err := testClient(server.URL).Upload(context.Background(), makeFileHeader(t, "house.png", "image/png", 64*1024), func(p Progress) {
		mu.Lock()
		updates = append(updates, p)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.Equal(t, last.Total, last.Loaded)
	assert.Equal(t, 100, last.Percentage)
	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].Loaded, updates[i-1].Loaded)
	}
}

func TestUpload_NonOKStatusRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Upload preset not found"}}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Upload(context.Background(), makeFileHeader(t, "house.jpg", "image/jpeg", 1024), nil)

	var rejected *UploadRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	assert.Equal(t, "Upload preset not found", rejected.Message)
}

func TestUpload_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := testClient(server.URL).Upload(context.Background(), makeFileHeader(t, "house.jpg", "image/jpeg", 1024), nil)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestUpload_CancelledContextAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(server.URL).Upload(ctx, makeFileHeader(t, "house.jpg", "image/jpeg", 1024), nil)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestUpload_ValidationFailuresSkipNetwork(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Upload(context.Background(), makeFileHeader(t, "notes.txt", "text/plain", 100), nil)
	assert.ErrorIs(t, err, validation.ErrFileType)

	_, err = client.Upload(context.Background(), makeFileHeader(t, "virus.jpg", "application/octet-stream", 100), nil)
	assert.ErrorIs(t, err, validation.ErrNotAnImage)

	assert.Equal(t, int64(0), requests.Load())
}

func TestUploadMultiple_FailsFastOnTooManyFiles(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	files := make([]*multipart.FileHeader, 11)
	for i := range files {
		files[i] = makeFileHeader(t, fmt.Sprintf("img%d.jpg", i), "image/jpeg", 128)
	}

	_, err := testClient(server.URL).UploadMultiple(context.Background(), files, nil, nil)

	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.Equal(t, int64(0), requests.Load(), "no request may be issued for an oversized batch")
}

func TestUploadMultiple_OneFailureDoesNotCancelSiblings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id":"ok","secure_url":"https://res.cloudinary.com/demo/image/upload/ok.jpg"}`)
	}))
	defer server.Close()

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", "image/jpeg", 128),
		makeFileHeader(t, "broken.txt", "text/plain", 128), // fails validation
		makeFileHeader(t, "c.jpg", "image/jpeg", 128),
	}

	var mu sync.Mutex
	results := map[string]error{}
	images, err := testClient(server.URL).UploadMultiple(context.Background(), files, nil, func(r FileResult) {
		mu.Lock()
		results[r.Filename] = r.Err
		mu.Unlock()
	})

	assert.Error(t, err, "batch reports failure when any file fails")
	assert.NotNil(t, images[0])
	assert.Nil(t, images[1])
	assert.NotNil(t, images[2])

	assert.NoError(t, results["a.jpg"])
	assert.ErrorIs(t, results["broken.txt"], validation.ErrFileType)
	assert.NoError(t, results["c.jpg"])
}

func TestDestroy_SignsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())

		publicID := r.FormValue("public_id")
		timestamp := r.FormValue("timestamp")
		assert.Equal(t, "properties/abc123", publicID)
		assert.Equal(t, "key123", r.FormValue("api_key"))

		mac := hmac.New(sha1.New, []byte("secret123"))
		mac.Write([]byte("public_id=" + publicID + "&timestamp=" + timestamp))
		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), r.FormValue("signature"))

		fmt.Fprint(w, `{"result":"ok"}`)
	}))
	defer server.Close()

	err := testClient(server.URL).Destroy(context.Background(), "properties/abc123")
	assert.NoError(t, err)
}

func TestDestroy_FailureResponses(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"not found"}`)
	}))
	defer notFound.Close()
	assert.ErrorIs(t, testClient(notFound.URL).Destroy(context.Background(), "x"), ErrDeletionFailed)

	serverErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer serverErr.Close()
	assert.ErrorIs(t, testClient(serverErr.URL).Destroy(context.Background(), "x"), ErrDeletionFailed)
}
