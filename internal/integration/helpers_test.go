//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkatc "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/mockdata"
)

var forecastStart = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := kafkatc.Run(ctx,
		"confluentinc/confluent-local:7.6.1",
		kafkatc.WithClusterID("urban-risk-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("warning: failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "find controller")

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

// mockForecasts builds one eight-step forecast per sample city.
func mockForecasts() []domain.RawForecast {
	out := make([]domain.RawForecast, 0, len(mockdata.SampleCities))
	for i, c := range mockdata.SampleCities {
		out = append(out, mockdata.New(int64(i)).Forecast(c.Name, c.Country, c.At, forecastStart, 8))
	}
	return out
}

// assessedMessage holds a deserialized message read from the sink topic.
type assessedMessage struct {
	Assessment domain.ForecastAssessment
	Key        string
	Headers    map[string]string
}

// readAssessed reads a single message from the sink consumer and deserializes it.
func readAssessed(ctx context.Context, t *testing.T, consumer *kafkago.Reader) assessedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var a domain.ForecastAssessment
	require.NoError(t, json.Unmarshal(msg.Value, &a), "unmarshal sink message")

	return assessedMessage{Assessment: a, Key: string(msg.Key), Headers: headers}
}
