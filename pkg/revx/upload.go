package revx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultUploadURL is the asset host's upload endpoint.
const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// UploadSignature is the short-lived authorization triple the server
// signs for direct uploads to the asset host.
type UploadSignature struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
	Expire    int64  `json:"expire"`
}

// Uploader pushes image files straight to the asset host using
// server-signed upload parameters.
type Uploader struct {
	client     *Client
	httpClient *http.Client

	// PublicKey identifies the asset host account.
	PublicKey string
	// UploadURL overrides the asset host endpoint, mostly for tests.
	UploadURL string
	// Folder is the remote folder new files land in.
	Folder string
}

// NewUploader builds an Uploader on top of an API client.
func NewUploader(client *Client, publicKey string) *Uploader {
	return &Uploader{
		client:     client,
		httpClient: &http.Client{},
		PublicKey:  publicKey,
		UploadURL:  DefaultUploadURL,
		Folder:     "/revx",
	}
}

// FetchSignature asks the API server for a fresh upload signature.
func (u *Uploader) FetchSignature(ctx context.Context) (*UploadSignature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.client.baseURL+"/imagekit/auth", nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}
	var sig UploadSignature
	if err := json.NewDecoder(resp.Body).Decode(&sig); err != nil {
		return nil, fmt.Errorf("decode upload signature: %w", err)
	}
	return &sig, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadFile pushes one file to the asset host and returns its hosted
// URL. The remote file name is a fresh UUID carrying the original
// extension.
func (u *Uploader) UploadFile(ctx context.Context, name string, content io.Reader) (string, error) {
	sig, err := u.FetchSignature(ctx)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fileName := uuid.NewString() + filepath.Ext(name)
	fields := map[string]string{
		"publicKey":         u.PublicKey,
		"signature":         sig.Signature,
		"token":             sig.Token,
		"expire":            strconv.FormatInt(sig.Expire, 10),
		"fileName":          fileName,
		"folder":            u.Folder,
		"useUniqueFileName": "true",
		"isPrivateFile":     "false",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(payload, apiErr)
		return "", apiErr
	}

	var out uploadResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.URL, nil
}

// File pairs a file name with its content for batch uploads.
type File struct {
	Name    string
	Content io.Reader
}

// UploadFiles pushes several files concurrently and returns their hosted
// URLs in input order. The optional progress callback receives the number
// of completed uploads out of the total after each file finishes. One
// failed upload cancels the rest.
func (u *Uploader) UploadFiles(ctx context.Context, files []File, progress func(done, total int)) ([]string, error) {
	urls := make([]string, len(files))
	var (
		mu   sync.Mutex
		done int
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := u.UploadFile(ctx, f.Name, f.Content)
			if err != nil {
				return err
			}
			urls[i] = url

			mu.Lock()
			done++
			completed := done
			mu.Unlock()
			if progress != nil {
				progress(completed, len(files))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
