package main

import (
	"github.com/csuvajit/web-login/config"
	"github.com/csuvajit/web-login/internal/app"
)

func main() {

	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err) // handle error appropriately in production code
	}

	// run the app
	err = app.Run()
	if err != nil {
		panic(err)
	}
}
