package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "leo")

	body, contentType := uploadFile(t, "image", "pic.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	url := dataOf(t, w)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
}

func TestUploadRejectsNonImage(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "leo")

	body, contentType := uploadFile(t, "image", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresAuth(t *testing.T) {
	_, r := newTestEnv(t)

	body, contentType := uploadFile(t, "image", "pic.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := createUser(t, db, "leo")

	body, contentType := uploadFile(t, "image", "huge.png", bytes.Repeat([]byte{0xff}, 10*1024*1024+1))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
