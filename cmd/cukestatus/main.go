package main

import (
	"context"
	"fmt"
	"os"

	"github.com/denizgursoy/cukestatus/internal/app"
)

func main() {
	if err := app.StartApplication(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
