//go:build wireinject
// +build wireinject

package main

import (
	"io"

	"AssetCompare/internal/app"
	"AssetCompare/internal/config"

	"github.com/google/wire"
)

// InitializeApp builds the App from a validated config via Wire.
func InitializeApp(cfg *config.Config, out io.Writer) (*app.App, error) {
	wire.Build(app.ProviderSet)
	return nil, nil
}
