package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	wshandlers "github.com/chris/tailorshop-ledger/pkg/handlers/websockets"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func route(key, id string) events.APIGatewayWebsocketProxyRequest {
	var req events.APIGatewayWebsocketProxyRequest
	req.RequestContext.RouteKey = key
	req.RequestContext.ConnectionID = id
	return req
}

func TestHandleRequest(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	handler = wshandlers.NewHandler(store)

	resp, err := HandleRequest(ctx, route("$connect", "c1"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	ids, err := store.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)

	resp, err = HandleRequest(ctx, route("ping", "c1"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	_, err = HandleRequest(ctx, route("$disconnect", "c1"))
	require.NoError(t, err)
	ids, err = store.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
