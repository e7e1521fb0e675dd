package kafka_test

import (
	"testing"

	"bms/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := kafka.NewEnvelope("EmailRequested", "bms-api", "trace-1", emailPayload{To: "dina@example.com", Subject: "OTP"})
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, 1, env.EventVersion)

	msg := kafka.Message{Key: "dina@example.com", Value: env}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("dina@example.com"), kafkaMsg.Key)

	decoded, payload, err := kafka.DecodeEnvelope[emailPayload](kafkaMsg)
	require.NoError(t, err)
	assert.Equal(t, "EmailRequested", decoded.EventType)
	assert.Equal(t, "trace-1", decoded.TraceID)
	assert.Equal(t, emailPayload{To: "dina@example.com", Subject: "OTP"}, payload)
}

func TestDecodeEnvelopeInvalid(t *testing.T) {
	_, _, err := kafka.DecodeEnvelope[emailPayload](kafkaGo.Message{Value: []byte("not-json")})
	assert.Error(t, err)

	_, _, err = kafka.DecodeEnvelope[emailPayload](kafkaGo.Message{Value: []byte(`{"event_type":"x","payload":"str"}`)})
	assert.Error(t, err)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
