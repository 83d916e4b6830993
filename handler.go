package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

// maxLambdaUsable caps the usable ingredients of one request so a single
// invocation stays inside the function timeout.
const maxLambdaUsable = 8

type lambdaHandler struct {
	opt *optimizer.Optimizer
}

func (h *lambdaHandler) handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body, err := requestBody(event)
	if err != nil {
		return jsonResponse(400, errorResponse{Error: err.Error()})
	}

	in, err := parseSearchRequest(h.opt.Catalog(), body)
	if err != nil {
		return jsonResponse(400, errorResponse{Error: err.Error()})
	}
	if n := len(h.opt.UsableIndices(in.Unlocked)); n > maxLambdaUsable {
		return jsonResponse(400, errorResponse{
			Error: fmt.Sprintf("%d usable ingredients, at most %d allowed", n, maxLambdaUsable),
		})
	}

	res, err := h.opt.FindOptimal(ctx, in.Required, in.Ranges, in.Unlocked)
	switch {
	case errors.Is(err, optimizer.ErrInvalidRange), errors.Is(err, optimizer.ErrUnknownIngredient):
		return jsonResponse(400, errorResponse{Error: err.Error()})
	case err != nil:
		return jsonResponse(500, errorResponse{Error: err.Error()})
	}
	return jsonResponse(200, toResponse(res))
}

// requestBody returns the search request carried by a function-URL event.
func requestBody(event events.LambdaFunctionURLRequest) (string, error) {
	if !event.IsBase64Encoded {
		return event.Body, nil
	}
	raw, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return "", fmt.Errorf("request body is not valid base64: %w", err)
	}
	return string(raw), nil
}

func jsonResponse(status int, payload any) (events.LambdaFunctionURLResponse, error) {
	out, err := json.Marshal(payload)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, fmt.Errorf("encode response: %w", err)
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(out),
	}, nil
}
