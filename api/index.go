package handler

import (
	"net/http"
	"sync"

	"bms/config"
	"bms/di"
	"bms/shared/logger"
)

var (
	once   sync.Once
	server http.Handler
)

// Handler is the serverless entrypoint. The dependency graph is built on the first request
// and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
