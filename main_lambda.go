//go:build lambda

package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := optimizer.DefaultConfig()
	cfg.Logger = logger

	opt, err := optimizer.New(optimizer.MustDefaultCatalog(), cfg)
	if err != nil {
		logger.Error("init", "err", err)
		os.Exit(1)
	}
	h := &lambdaHandler{opt: opt}
	lambda.Start(h.handle)
}
