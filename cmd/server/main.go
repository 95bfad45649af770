package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"running-route-service/internal/api"
	"running-route-service/internal/app"
	"running-route-service/internal/config"
	"running-route-service/internal/services"
)

// main is the application composition root.
// It wires the configured directions provider, place cache and renderers behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Build(context.Background(), cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	router := api.NewRouter(api.Deps{
		ProviderName: cfg.DirectionsProvider,
		Synth:        a.Synth,
		Places:       a.Places,
		Calls:        services.NewCallRegistry(),
		Renderers:    a.Renderers,
	})

	// A synthesis may run for the whole call timeout before the response is written.
	writeTimeout := 120 * time.Second
	if cfg.CallTimeout > 0 {
		writeTimeout = cfg.CallTimeout + 10*time.Second
	}

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
