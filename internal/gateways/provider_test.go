package gateways

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobopay/bvn-bulk-service/pkg/http"
)

func TestMonoProviderLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful match", func(t *testing.T) {
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, nethttp.MethodPost, r.Method)
			assert.Equal(t, "/lookup/bvn", r.URL.Path)
			assert.Equal(t, "sk_test_key", r.Header.Get("mono-sec-key"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "12345678901", body["bvn"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"successful","message":"Lookup Successful","data":{"first_name":"ADA","last_name":"OKORO"}}`))
		}))
		defer srv.Close()

		provider := NewMonoProvider(http.NewClient(nethttp.Client{}), srv.URL, "sk_test_key")
		resp, err := provider.Lookup(ctx, "12345678901")
		require.NoError(t, err)
		require.True(t, resp.Successful())
		require.NotNil(t, resp.Data)
		assert.Equal(t, "ADA", resp.Data.FirstName)
		assert.Equal(t, "OKORO", resp.Data.LastName)
	})

	t.Run("no match keeps the provider message", func(t *testing.T) {
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			w.WriteHeader(nethttp.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":"failed","message":"no identity matched the supplied bvn"}`))
		}))
		defer srv.Close()

		provider := NewMonoProvider(http.NewClient(nethttp.Client{}), srv.URL, "sk_test_key")
		resp, err := provider.Lookup(ctx, "12345678901")
		require.NoError(t, err)
		assert.False(t, resp.Successful())
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "no identity matched the supplied bvn", resp.Message)
	})

	t.Run("server error yields a bare status", func(t *testing.T) {
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			w.WriteHeader(nethttp.StatusInternalServerError)
			_, _ = w.Write([]byte(`upstream exploded`))
		}))
		defer srv.Close()

		provider := NewMonoProvider(http.NewClient(nethttp.Client{}), srv.URL, "sk_test_key")
		resp, err := provider.Lookup(ctx, "12345678901")
		require.NoError(t, err)
		assert.False(t, resp.Successful())
		assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
		assert.Empty(t, resp.Message)
	})

	t.Run("transport failure returns the error", func(t *testing.T) {
		provider := NewMonoProvider(http.NewClient(nethttp.Client{}), "http://127.0.0.1:1", "sk_test_key")
		resp, err := provider.Lookup(ctx, "12345678901")
		require.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestNodeServiceClient(t *testing.T) {
	ctx := context.Background()

	t.Run("completion mail", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer srv.Close()

		client := NewNodeServiceClient(http.NewClient(nethttp.Client{}), srv.URL)
		require.NoError(t, client.SendCompletionMail(ctx, 42))
		assert.Equal(t, "/bulk-verification/bulk-notification-mail", gotPath)
		assert.Equal(t, "42", gotBody["bulkId"])
	})

	t.Run("upload bulk result", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]any
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(nethttp.StatusOK)
		}))
		defer srv.Close()

		wrapperFk := int64(9)
		filename := "bulk-result.xlsx"
		client := NewNodeServiceClient(http.NewClient(nethttp.Client{}), srv.URL)
		require.NoError(t, client.UploadBulkResult(ctx, &wrapperFk, 42, &filename))
		assert.Equal(t, "/bulk-verification/upload-bulk-job-result", gotPath)
		assert.Equal(t, float64(9), gotBody["wrapperFk"])
		assert.Equal(t, float64(42), gotBody["pk"])
		assert.Equal(t, "bulk-result.xlsx", gotBody["filename"])
	})

	t.Run("non 200 reply is an error", func(t *testing.T) {
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			w.WriteHeader(nethttp.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewNodeServiceClient(http.NewClient(nethttp.Client{}), srv.URL)
		assert.Error(t, client.SendCompletionMail(ctx, 42))
	})
}
