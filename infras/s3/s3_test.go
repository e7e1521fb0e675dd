package s3_test

import (
	"testing"

	"bms/config"
	otelMocks "bms/infras/otel/mocks"
	"bms/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "rooms"

	svc := s3.New(cfg, otelMocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/rooms/abc.png", want: "rooms/abc.png"},
		{name: "api endpoint", url: "https://s3.example.com/rooms/images/abc.png", want: "images/abc.png"},
		{name: "foreign url", url: "https://other.example.com/abc.png", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL("rooms", tt.url))
		})
	}
}
