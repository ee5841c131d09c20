package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool lets concurrent publishers reuse encoding buffers instead of
// allocating one per event.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	DefaultAssetExchange = "assethub_asset"
)

type AssetAction string

const (
	AssetCreated AssetAction = "created"
	AssetUpdated AssetAction = "updated"
	AssetDeleted AssetAction = "deleted"
)

type AssetEvent struct {
	Action     AssetAction  `json:"action"`
	Asset      models.Asset `json:"asset"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// RoutingKey is asset.<action>, so consumers can bind to asset.* or a single action.
func (e AssetEvent) RoutingKey() string {
	return fmt.Sprintf("asset.%s", e.Action)
}

type Client interface {
	PublishAssetEvent(ctx context.Context, event AssetEvent) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient
	logger     *lecho.Logger

	assetExchange string
}

type ClientOption = func(client *DefaultClient)

func WithAssetExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		if exchange != "" {
			client.assetExchange = exchange
		}
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// NewClient declares the asset exchange on amqpClient and returns a publisher for it.
func NewClient(amqpClient AMQPClient, options ...ClientOption) (*DefaultClient, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
		assetExchange: DefaultAssetExchange,
	}

	for _, opt := range options {
		opt(client)
	}

	err := amqpClient.ExchangeDeclare(
		client.assetExchange,
		// topic exchanges route on the asset.<action> key
		"topic",
		// durable and not auto deleted, survives broker restarts
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declaring exchange %s: %w", client.assetExchange, err)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) PublishAssetEvent(ctx context.Context, event AssetEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(event); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.assetExchange,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			MessageId:   uuid.NewString(),
			Timestamp:   event.OccurredAt,
			Body:        buf.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Asset publisher: published %s for asset %d", event.RoutingKey(), event.Asset.ID)
	return nil
}
