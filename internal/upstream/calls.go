package upstream

import (
	"context"
	"net/http"
)

// Generic call helpers shared by the per-resource method groups. Each
// resource file is a thin, mechanical enumeration of its endpoints.

func getList[T any](ctx context.Context, c *Client, cfg CallConfig, path string, params ListParams) (*List[T], error) {
	var out List[T]
	if err := c.do(ctx, cfg, http.MethodGet, path, params.Query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getOne[T any](ctx context.Context, c *Client, cfg CallConfig, path string) (*T, error) {
	var out T
	if err := c.do(ctx, cfg, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func postOne[T any](ctx context.Context, c *Client, cfg CallConfig, path string, body interface{}) (*T, error) {
	var out T
	if err := c.do(ctx, cfg, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func putOne[T any](ctx context.Context, c *Client, cfg CallConfig, path string, body interface{}) (*T, error) {
	var out T
	if err := c.do(ctx, cfg, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func patchOne[T any](ctx context.Context, c *Client, cfg CallConfig, path string, body interface{}) (*T, error) {
	var out T
	if err := c.do(ctx, cfg, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func deleteOne(ctx context.Context, c *Client, cfg CallConfig, path string) error {
	return c.do(ctx, cfg, http.MethodDelete, path, nil, nil, nil)
}
