package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) history(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.History(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, map[string]any{
		"count":    len(workouts),
		"workouts": workouts,
	})
}

func (h *handlers) currentWorkout(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rec, err := h.ds.CurrentWorkout(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, rec)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
