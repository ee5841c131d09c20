package service

import (
	"context"
	"time"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
)

// publishAssetEvent runs after commit. A failed publish is reported but
// never undoes or fails the write that triggered it.
func (svc *AssetService) publishAssetEvent(ctx context.Context, action rabbitmq.AssetAction, asset *models.Asset) {
	if svc.RabbitMQClient == nil {
		return
	}
	err := svc.RabbitMQClient.PublishAssetEvent(ctx, rabbitmq.AssetEvent{
		Action:     action,
		Asset:      *asset,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		if svc.Logger != nil {
			svc.Logger.Errorf("Failed to publish asset.%s for asset %d: %v", action, asset.ID, err)
		}
		sentry.CaptureException(err)
	}
}
