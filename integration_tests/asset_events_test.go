package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/getAlby/assethub.go/lib/service"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/getAlby/assethub.go/rabbitmq/mock_rabbitmq"
	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

func newEventTestService(t *testing.T) (*service.AssetService, *mock_rabbitmq.MockAMQPClient) {
	ctrl := gomock.NewController(t)
	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)
	amqpClient.EXPECT().
		ExchangeDeclare(gomock.Eq("test_assets"), gomock.Eq("topic"), true, false, false, false, gomock.Nil()).
		Return(nil)

	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithAssetExchange("test_assets"))
	require.NoError(t, err)

	svc, err := AssetHubTestServiceInit(client)
	require.NoError(t, err)
	t.Cleanup(func() { svc.DB.Close() })
	return svc, amqpClient
}

func TestAssetLifecyclePublishesEvents(t *testing.T) {
	svc, amqpClient := newEventTestService(t)
	ctx := context.Background()

	published := []rabbitmq.AssetEvent{}
	record := func(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
		event := rabbitmq.AssetEvent{}
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return err
		}
		published = append(published, event)
		return nil
	}
	gomock.InOrder(
		amqpClient.EXPECT().PublishWithContext(gomock.Any(), "test_assets", "asset.created", false, false, gomock.Any()).DoAndReturn(record),
		amqpClient.EXPECT().PublishWithContext(gomock.Any(), "test_assets", "asset.updated", false, false, gomock.Any()).DoAndReturn(record),
		amqpClient.EXPECT().PublishWithContext(gomock.Any(), "test_assets", "asset.deleted", false, false, gomock.Any()).DoAndReturn(record),
	)

	asset, err := svc.CreateAsset(ctx, newAssetParams("Dell XPS 15", "DXPS15-001", "Laptop"))
	require.NoError(t, err)

	// rejected writes publish nothing
	_, err = svc.CreateAsset(ctx, newAssetParams("Dell XPS 15", "DXPS15-001", "Laptop"))
	assert.ErrorIs(t, err, service.ErrSerialNumberTaken)

	update := &service.AssetUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"location":"Warehouse"}`), update))
	_, err = svc.UpdateAsset(ctx, asset.ID, update)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, asset.ID))

	require.Len(t, published, 3)
	assert.Equal(t, rabbitmq.AssetCreated, published[0].Action)
	assert.Equal(t, "Warehouse", *published[1].Asset.Location)
	assert.Equal(t, asset.ID, published[2].Asset.ID)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc, amqpClient := newEventTestService(t)
	amqpClient.EXPECT().
		PublishWithContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("broker unavailable"))
	var logs bytes.Buffer
	svc.Logger = lecho.New(&logs)

	asset, err := svc.CreateAsset(context.Background(), newAssetParams("Dell XPS 15", "DXPS15-001", "Laptop"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), "broker unavailable"))

	found, err := svc.FindAsset(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "DXPS15-001", found.SerialNumber)
}
