package main

import (
	"github.com/shimantoislam/bot/internal/app"
	"go.uber.org/fx"
)

// main is the entry point for the relay server.
func main() {
	fx.New(app.Module).Run()
}
