package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides the task store services.
type TasksModule struct {
	db        *gorm.DB
	redis     *redis.Client
	service   *Service
	dbPath    string
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule configured from the environment.
// When TASKS_REDIS_ADDR is set, point lookups are cached in Redis.
func NewModule() *TasksModule {
	dbPath := os.Getenv("TASKS_DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}
	return &TasksModule{
		dbPath:    dbPath,
		redisAddr: os.Getenv("TASKS_REDIS_ADDR"),
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Start opens the database, migrates the schema, and wires the service.
func (m *TasksModule) Start(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var cache *Cache
	if m.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: m.redisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			// The cache is an optimization; run without it rather than
			// refusing to start.
			log.Printf("[tasks] Redis unreachable at %s, caching disabled: %v", m.redisAddr, err)
			client.Close()
		} else {
			m.redis = client
			cache = NewCache(client, "tasks:", DefaultCacheTTL)
			log.Printf("[tasks] Redis cache enabled (addr: %s)", m.redisAddr)
		}
	}

	m.service = NewService(repo, cache)

	log.Printf("[tasks] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.redis != nil {
		m.redis.Close()
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"cache":    m.redis != nil,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"create-task",
		json.Unmarshal,
		json.Marshal,
		m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-task",
		json.Unmarshal,
		json.Marshal,
		m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list-tasks",
		json.Unmarshal,
		json.Marshal,
		m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"update-task",
		json.Unmarshal,
		json.Marshal,
		m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"delete-task",
		json.Unmarshal,
		json.Marshal,
		m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	log.Printf("[tasks] Registered services: create-task, get-task, list-tasks, update-task, delete-task")
	return nil
}

func (m *TasksModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Create(ctx, &req)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TasksModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TasksModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.List(ctx, &req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

func (m *TasksModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Update(ctx, &req)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

func (m *TasksModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	deleted, err := m.service.Delete(ctx, req.ID)
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: deleted, ID: req.ID}, nil
}
