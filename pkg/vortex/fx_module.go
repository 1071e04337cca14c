package vortex

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Vortex client.
//
// The module:
//  1. Provides the NewClient factory function to the dependency injection
//     container, making the client available to other components.
//  2. Invokes RegisterClientLifecycle to release pooled connections on
//     shutdown.
//
// Usage:
//
//	app := fx.New(
//	    vortex.FXModule,
//	    fx.Supply(vortex.NewConfig(account, apiKey, endpoint)),
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A *vortex.Config instance must be available in the dependency injection container.
var FXModule = fx.Module("vortex",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterClientLifecycle),
)

// RegisterClientLifecycle closes the client's idle connections on shutdown.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			once.Do(client.Close)
			return nil
		},
	})
}
