package main

import (
	"github.com/styleaura/storefront/internal/app"
	"github.com/styleaura/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
