// Command canopus is the admin CLI for the Canopus catering backend.
// It drives the client-side stores: session, works, menu, gallery,
// weddings and users.
package main

import (
	"context"
	"fmt"
	"os"

	"canopus/config"
	"canopus/internal/api"
	"canopus/internal/infra/asset"
	"canopus/internal/infra/credential"
	logs "canopus/internal/infra/log"
	"canopus/internal/usecase/impl"

	"go.uber.org/fx"

	// Bucket driver usable from assets.bucket URLs.
	_ "gocloud.dev/blob/fileblob"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectStores(),
		fx.Invoke(run),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", friendlyError(err))
		os.Exit(1)
	}

	_ = app.Stop(ctx)
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		credential.NewStore,
		newTokenSource,
		api.NewClient,
		asset.NewUploader,
	)
}

func injectStores() fx.Option {
	return fx.Provide(
		impl.NewSessionStore,
		impl.NewWorkStore,
		impl.NewMenuStore,
		impl.NewGalleryStore,
		impl.NewWeddingStore,
		impl.NewUserStore,
	)
}

// newTokenSource exposes the credential store as the request-time token
// hook for the API client.
func newTokenSource(creds *credential.Store) api.TokenSource {
	return creds.Token
}
