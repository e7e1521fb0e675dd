package di

import (
	"bms/config"
	"bms/infras/kafka"
	notificationService "bms/internal/domains/notification/service"
)

// Mailer bundles what the email consumer process needs.
type Mailer struct {
	Config     *config.Config
	Kafka      kafka.Client
	Dispatcher *notificationService.Dispatcher
}
