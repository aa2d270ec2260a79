package fetch

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONClient_Do JSON 클라이언트의 기본 동작을 검증합니다.
func TestJSONClient_Do(t *testing.T) {
	t.Run("성공: JSON 응답 디코딩", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Stylo Desk One","price":"599.00"}`))
		}))
		defer server.Close()

		var result struct {
			Name  string `json:"name"`
			Price string `json:"price"`
		}

		client := NewJSONClient(NewHTTPFetcher())
		err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil, &result)

		require.NoError(t, err)
		assert.Equal(t, "Stylo Desk One", result.Name)
		assert.Equal(t, "599.00", result.Price)
	})

	t.Run("성공: gzip 압축 응답의 투명한 해제", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Encoding", "gzip")
			gw := gzip.NewWriter(w)
			_, _ = gw.Write([]byte(`{"ok":true}`))
			_ = gw.Close()
		}))
		defer server.Close()

		var result struct {
			OK bool `json:"ok"`
		}

		client := NewJSONClient(NewHTTPFetcher())
		err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil, &result)

		require.NoError(t, err)
		assert.True(t, result.OK)
	})

	t.Run("실패: 2xx가 아닌 응답은 HTTPStatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream down"}`))
		}))
		defer server.Close()

		client := NewJSONClient(NewHTTPFetcher())
		err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil, nil)

		var statusErr *HTTPStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "upstream down")
		assert.True(t, statusErr.IsRetryable())
	})

	t.Run("실패: 잘못된 JSON은 ParsingFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		var result map[string]any
		client := NewJSONClient(NewHTTPFetcher())
		err := client.Do(context.Background(), http.MethodGet, server.URL, nil, nil, &result)

		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("실패: 컨텍스트 취소는 Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		client := NewJSONClient(NewHTTPFetcher())
		err := client.Do(ctx, http.MethodGet, server.URL, nil, nil, nil)

		assert.True(t, apperrors.Is(err, apperrors.Timeout))
	})
}

// TestRetryFetcher 재시도 데코레이터를 검증합니다.
func TestRetryFetcher(t *testing.T) {
	t.Run("5xx 응답은 재시도 후 성공", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`ok`))
		}))
		defer server.Close()

		fetcher := NewRetryFetcher(NewHTTPFetcher(), 3, time.Second)
		// 테스트 시간을 줄이기 위해 백오프 시작 간격을 직접 축소한다.
		fetcher.minRetryDelay = time.Millisecond
		fetcher.maxRetryDelay = 10 * time.Millisecond

		resp, err := Get(context.Background(), fetcher, server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("재시도 소진 시 마지막 에러 반환", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := NewRetryFetcher(NewHTTPFetcher(), 1, time.Second)
		fetcher.minRetryDelay = time.Millisecond
		fetcher.maxRetryDelay = 10 * time.Millisecond

		_, err := Get(context.Background(), fetcher, server.URL)

		var statusErr *HTTPStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})

	t.Run("4xx 응답은 재시도하지 않음", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewRetryFetcher(NewHTTPFetcher(), 3, time.Second)
		fetcher.minRetryDelay = time.Millisecond

		resp, err := Get(context.Background(), fetcher, server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})
}
