package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherloom-go/internal/cache"
	"github.com/cipherloom-go/internal/config"
	"github.com/cipherloom-go/internal/encryption"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Cipher: config.CipherConfig{
			DefaultFiller:    "X",
			BatchConcurrency: 2,
			MaxBatchJobs:     3,
			Presets: map[string]config.Preset{
				"field-hill": {
					Name:   "field-hill",
					Cipher: "hill",
					Params: map[string]interface{}{"key": "CDFH"},
				},
				"shout": {
					Name:   "shout",
					Cipher: "caesar",
					Params: map[string]interface{}{"shift": 3},
				},
			},
		},
	}
}

func newTestRouter(h *CipherHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/v1/ciphers", h.ListCiphers)
	r.POST("/api/v1/encrypt", h.Encrypt)
	r.POST("/api/v1/decrypt", h.Decrypt)
	r.POST("/api/v1/batch", h.Batch)
	return r
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestEncryptDecrypt(t *testing.T) {
	r := newTestRouter(NewCipherHandler(testConfig(), nil))

	tests := []struct {
		name string
		path string
		body CipherRequest
		want string
	}{
		{
			name: "caesar encrypt",
			path: "/api/v1/encrypt",
			body: CipherRequest{Cipher: "caesar", Message: "Hello World", Params: map[string]interface{}{"shift": 3}},
			want: "Khoor Zruog",
		},
		{
			name: "playfair decrypt",
			path: "/api/v1/decrypt",
			body: CipherRequest{Cipher: "playfair", Message: "Hkerqsdt", Params: map[string]interface{}{"key": "mango"}},
			want: "Pictures",
		},
		{
			name: "preset",
			path: "/api/v1/encrypt",
			body: CipherRequest{Preset: "field-hill", Message: "Hello World"},
			want: "Aldcq Qbhfy",
		},
		{
			name: "preset params overridden",
			path: "/api/v1/encrypt",
			body: CipherRequest{Preset: "shout", Message: "abc", Params: map[string]interface{}{"shift": 1}},
			want: "bcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, 0, env.Code)

			var res CipherResult
			require.NoError(t, json.Unmarshal(env.Data, &res))
			assert.Equal(t, tt.want, res.Result)
			assert.False(t, res.Cached)
		})
	}
}

func TestEncryptErrors(t *testing.T) {
	r := newTestRouter(NewCipherHandler(testConfig(), nil))

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   int
	}{
		{"unknown cipher", CipherRequest{Cipher: "enigma", Message: "x"}, http.StatusNotFound, 424},
		{"unknown preset", CipherRequest{Preset: "nope", Message: "x"}, http.StatusNotFound, 404},
		{"non-invertible", CipherRequest{Cipher: "affine", Message: "x", Params: map[string]interface{}{"a": 13}}, http.StatusBadRequest, 422},
		{"key shape", CipherRequest{Cipher: "hill", Message: "x", Params: map[string]interface{}{"key": "abcde"}}, http.StatusBadRequest, 421},
		{"unknown param", CipherRequest{Cipher: "caesar", Message: "x", Params: map[string]interface{}{"colour": "red"}}, http.StatusBadRequest, 400},
		{"bad body", []int{1, 2}, http.StatusBadRequest, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/v1/encrypt", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, env.Code)
			assert.NotEmpty(t, env.Msg)
		})
	}
}

func TestEncryptCached(t *testing.T) {
	results := cache.NewCache(time.Minute, 10)
	defer results.Close()
	r := newTestRouter(NewCipherHandler(testConfig(), results))

	body := CipherRequest{Cipher: "vigenere", Message: "Hello World", Params: map[string]interface{}{"key": "KEY"}}

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/encrypt", body)
	var first CipherResult
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.False(t, first.Cached)
	assert.Equal(t, "Rijvs Uyvjn", first.Result)

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/encrypt", body)
	var second CipherResult
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, 1, results.Size())

	// Decrypting the same text is a different entry
	_, env = doJSON(t, r, http.MethodPost, "/api/v1/decrypt", body)
	var third CipherResult
	require.NoError(t, json.Unmarshal(env.Data, &third))
	assert.False(t, third.Cached)
	assert.Equal(t, 2, results.Size())
}

func TestListCiphers(t *testing.T) {
	r := newTestRouter(NewCipherHandler(testConfig(), nil))

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/ciphers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Ciphers []struct {
			Kind string `json:"kind"`
		} `json:"ciphers"`
		Presets []config.Preset `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Ciphers, 10)
	assert.Len(t, data.Presets, 2)
}

func TestBatch(t *testing.T) {
	r := newTestRouter(NewCipherHandler(testConfig(), nil))

	body := map[string]interface{}{
		"jobs": []map[string]interface{}{
			{"id": "a", "cipher": "caesar", "message": "Hello World", "params": map[string]interface{}{"shift": 3}},
			{"id": "b", "cipher": "field-hill", "direction": "decrypt", "message": "Aldcq Qbhfy"},
			{"id": "c", "cipher": "enigma", "message": "x"},
		},
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/batch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Results []struct {
			ID     string `json:"id"`
			Result string `json:"result"`
			Error  string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Results, 3)
	assert.Equal(t, "Khoor Zruog", data.Results[0].Result)
	assert.Equal(t, "Hello World", data.Results[1].Result)
	assert.Empty(t, data.Results[2].Result)
	assert.NotEmpty(t, data.Results[2].Error)
}

func TestBatchTooLarge(t *testing.T) {
	r := newTestRouter(NewCipherHandler(testConfig(), nil))

	jobs := make([]map[string]interface{}, 4)
	for i := range jobs {
		jobs[i] = map[string]interface{}{"cipher": "rot13", "message": "x"}
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/batch", map[string]interface{}{"jobs": jobs})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 400, env.Code)
}

func TestBatchUsesDefaultFiller(t *testing.T) {
	cfg := testConfig()
	cfg.Cipher.DefaultFiller = "Q"
	r := newTestRouter(NewCipherHandler(cfg, nil))

	req := CipherRequest{Cipher: "hill", Message: "Hello", Params: map[string]interface{}{"key": "CDFH"}}
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/encrypt", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var single CipherResult
	require.NoError(t, json.Unmarshal(env.Data, &single))

	want, err := encryption.Run(context.Background(), encryption.KindHill, encryption.DirEncrypt, "Hello",
		encryption.Params{Key: "CDFH", Filler: "Q"})
	require.NoError(t, err)
	assert.Equal(t, want, single.Result)

	body := map[string]interface{}{
		"jobs": []map[string]interface{}{
			{"cipher": "hill", "message": "Hello", "params": map[string]interface{}{"key": "CDFH"}},
		},
	}
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/batch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Results []struct {
			Result string `json:"result"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Results, 1)
	assert.Equal(t, want, data.Results[0].Result)
}
