package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/config"
	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/handlers"
)

var (
	router *gin.Engine
	logger *zap.Logger
)

func init() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}

	gin.SetMode(gin.ReleaseMode)

	store := branding.NewStore(cfg.Branding.ConfigPath, cfg.Branding.DefaultClient, logger)
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	router = handlers.NewRouter(cfg, client, store, logger)

	logger.Info(fmt.Sprintf("%s Lambda handler initialized", constants.AppName()))
}

func main() {
	lambda.Start(handler)
}

// handler replays an API Gateway V2 HTTP event through the gin router and
// records the rendered page back into a gateway response.
func handler(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	httpReq, err := toHTTPRequest(ctx, request)
	if err != nil {
		logger.Error("Failed to translate gateway request", zap.Error(err))
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusBadRequest,
			Body:       "Bad request",
		}, nil
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)

	headers := map[string]string{}
	var setCookies []string
	for name, values := range recorder.Header() {
		if strings.EqualFold(name, "Set-Cookie") {
			setCookies = append(setCookies, values...)
			continue
		}
		headers[name] = strings.Join(values, ",")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: recorder.Code,
		Headers:    headers,
		Cookies:    setCookies,
		Body:       recorder.Body.String(),
	}, nil
}

func toHTTPRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	path := request.RawPath
	if path == "" {
		path = request.RequestContext.HTTP.Path
	}
	target := url.URL{Path: path, RawQuery: request.RawQueryString}

	method := request.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), strings.NewReader(request.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for name, value := range request.Headers {
		httpReq.Header.Set(name, value)
	}
	for _, cookie := range request.Cookies {
		httpReq.Header.Add("Cookie", cookie)
	}

	return httpReq, nil
}
