package gateways

import (
	"context"
	"encoding/json"
	nethttp "net/http"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/core/ports"
	"github.com/kobopay/bvn-bulk-service/pkg/http"
)

const (
	lookupPath      = "/lookup/bvn"
	secretKeyHeader = "mono-sec-key"
)

// MonoProvider is the live verification provider client.
type MonoProvider struct {
	conn      *http.Client
	baseURL   string
	secretKey string
}

// NewMonoProvider creates a live provider client. The supplied http client must
// carry a request timeout: a hung lookup is otherwise unbounded.
func NewMonoProvider(conn *http.Client, baseURL, secretKey string) ports.VerificationProvider {
	return &MonoProvider{conn: conn, baseURL: baseURL, secretKey: secretKey}
}

// Lookup posts the identifier to the provider lookup endpoint. Transport
// failures are returned as errors with a nil response; any http exchange,
// whatever its status, is returned as a classified response.
func (p *MonoProvider) Lookup(ctx context.Context, bvn string) (*domain.ProviderResponse, error) {
	reqBody, err := json.Marshal(map[string]string{"bvn": bvn})
	if err != nil {
		return nil, err
	}

	resp, err := p.conn.DoPost(ctx, p.baseURL+lookupPath, reqBody, map[string]string{secretKeyHeader: p.secretKey})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case nethttp.StatusOK, nethttp.StatusBadRequest:
		var result domain.ProviderResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, err
		}
		result.StatusCode = resp.StatusCode
		return &result, nil
	default:
		return &domain.ProviderResponse{StatusCode: resp.StatusCode}, nil
	}
}
