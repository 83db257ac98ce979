package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userholder/internal/app"
	"github.com/dmitrijs2005/userholder/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(cfg, os.Stdin, os.Stdout, os.Stderr)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	a.Run(ctx)

}
