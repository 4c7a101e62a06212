package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/proxy"
	"github.com/bbernstein/lunartide/internal/server"
	"github.com/rs/zerolog/log"
)

var (
	handler     *proxy.Handler
	setupOnce   sync.Once
	initHandler = defaultInitHandler
)

func defaultInitHandler(ctx context.Context) (*proxy.Handler, error) {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	srv, err := server.Build(ctx, cfg, config.GetCacheConfig(), server.WithPrefix(os.Getenv("PREFIX")))
	if err != nil {
		return nil, err
	}
	return proxy.NewHandler(srv), nil
}

func handleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if handler == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"responseType":"error","error":"Handler not initialized"}`,
		}, fmt.Errorf("handler not initialized")
	}
	return handler.HandleRequest(ctx, event)
}

// InitializeService builds the handler once per cold start
func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		log.Debug().Msg("Initializing lunartide service...")
		var err error
		handler, err = initHandler(context.Background())
		if err != nil {
			initError = fmt.Errorf("failed to initialize handler: %w", err)
			log.Error().Err(err).Msg("Failed to initialize handler")
			return
		}
		log.Debug().Msg("Lunartide service initialized successfully")
	})
	return initError
}

func main() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	lambda.Start(handleRequest)
}
