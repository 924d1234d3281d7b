package gateways

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/kobopay/bvn-bulk-service/internal/core/ports"
	"github.com/kobopay/bvn-bulk-service/pkg/http"
)

const (
	notificationMailPath = "/bulk-verification/bulk-notification-mail"
	uploadResultPath     = "/bulk-verification/upload-bulk-job-result"
)

// NodeServiceClient fires the completion side effects against the downstream
// node service: the notification mail and the report generation upload.
type NodeServiceClient struct {
	conn    *http.Client
	baseURL string
}

// NewNodeServiceClient creates a downstream gateway client.
func NewNodeServiceClient(conn *http.Client, baseURL string) ports.DownstreamGateway {
	return &NodeServiceClient{conn: conn, baseURL: baseURL}
}

// SendCompletionMail asks the node service to mail the bulk completion notice.
func (c *NodeServiceClient) SendCompletionMail(ctx context.Context, bulkFk int64) error {
	payload, err := json.Marshal(map[string]string{
		"bulkId": strconv.FormatInt(bulkFk, 10),
	})
	if err != nil {
		return err
	}
	_, err = c.conn.Post(ctx, c.baseURL+notificationMailPath, payload, nil)
	return err
}

// UploadBulkResult asks the node service to generate and upload the bulk report.
func (c *NodeServiceClient) UploadBulkResult(ctx context.Context, wrapperFk *int64, pk int64, filename *string) error {
	payload, err := json.Marshal(map[string]any{
		"wrapperFk": wrapperFk,
		"pk":        pk,
		"filename":  filename,
	})
	if err != nil {
		return err
	}
	_, err = c.conn.Post(ctx, c.baseURL+uploadResultPath, payload, nil)
	return err
}
