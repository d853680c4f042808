package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/mtfsantos/task-manager/modules/api"
	"github.com/mtfsantos/task-manager/modules/auth"
	"github.com/mtfsantos/task-manager/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Management Service ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then the api module that depends on them.
	app.Register(auth.NewModule())
	app.Register(task.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:8000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/login       - Login and get a bearer token")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/v1/tasks       - Create a task")
	log.Println("  GET    /api/v1/tasks       - List tasks (?status=&skip=&limit=)")
	log.Println("  GET    /api/v1/tasks/:id   - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id   - Update a task (partial)")
	log.Println("  DELETE /api/v1/tasks/:id   - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
