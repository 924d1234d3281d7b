package ports

import "context"

// DownstreamGateway triggers the notification and report side effects fired on
// bulk completion. Both are best effort: a failure is logged and never rolls
// back the completion state transition.
type DownstreamGateway interface {
	SendCompletionMail(ctx context.Context, bulkFk int64) error
	UploadBulkResult(ctx context.Context, wrapperFk *int64, pk int64, filename *string) error
}
