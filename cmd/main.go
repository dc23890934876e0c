package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/repotutor/repotutor-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		application.Shutdown(ctx)
	}()

	if err := application.Run(); err != nil {
		application.Log.Error("Server stopped", "error", err)
	}
}
