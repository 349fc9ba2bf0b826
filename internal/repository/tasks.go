package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"tasktracker/internal/models"
	"tasktracker/pkg/logger"
)

// ErrTaskNotFound covers both a genuinely missing id and an id owned by
// someone else. Callers cannot tell the two apart, which keeps other users'
// rows unprobeable.
var ErrTaskNotFound = errors.New("task not found")

const taskCacheTTL = time.Hour

type TaskRepo struct {
	db    *sql.DB
	cache *redis.Client
}

func NewTaskRepo(db *sql.DB, cache *redis.Client) *TaskRepo {
	return &TaskRepo{db: db, cache: cache}
}

// TaskPatch carries the optional fields of a partial update. Nil means
// "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// cacheKey is scoped by owner so a cached row can never be served to
// another account.
func cacheKey(ownerID, taskID int) string {
	return fmt.Sprintf("task:%d:%d", ownerID, taskID)
}

// Create inserts a task stamped with the verified caller identity. The
// owner id always comes from the token, never from the request body.
func (r *TaskRepo) Create(ctx context.Context, ownerID int, title, description string) (models.Task, error) {
	var task models.Task
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description, completed, created_at, updated_at`,
		ownerID, title, description,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// List returns every task owned by ownerID, newest first.
func (r *TaskRepo) List(ctx context.Context, ownerID int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM tasks WHERE user_id = $1 ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns a single owned task, consulting the cache first. A cross-owner
// id misses the owner-scoped key and the owner-scoped query alike.
func (r *TaskRepo) Get(ctx context.Context, ownerID, taskID int) (models.Task, error) {
	key := cacheKey(ownerID, taskID)
	if cached, err := r.cache.Get(ctx, key).Result(); err == nil {
		var task models.Task
		if err := json.Unmarshal([]byte(cached), &task); err == nil {
			return task, nil
		}
	}

	var task models.Task
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, ownerID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	r.cacheSet(ctx, key, task)
	return task, nil
}

// Update applies a partial update to an owned task. updated_at is assigned
// here, not by the caller.
func (r *TaskRepo) Update(ctx context.Context, ownerID, taskID int, patch TaskPatch) (models.Task, error) {
	var task models.Task
	err := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title       = COALESCE($1, title),
		    description = COALESCE($2, description),
		    completed   = COALESCE($3, completed),
		    updated_at  = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, title, description, completed, created_at, updated_at`,
		patch.Title, patch.Description, patch.Completed, taskID, ownerID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	r.cacheSet(ctx, cacheKey(ownerID, taskID), task)
	return task, nil
}

// Delete removes an owned task. Deleting a missing or foreign id yields
// ErrTaskNotFound, and repeating the call yields the same outcome.
func (r *TaskRepo) Delete(ctx context.Context, ownerID, taskID int) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	if err := r.cache.Del(ctx, cacheKey(ownerID, taskID)).Err(); err != nil {
		logger.ErrorLogger.Error("Error evicting task cache", zap.Error(err))
	}
	return nil
}

// cacheSet is best effort; a failed write only costs a later cache miss.
func (r *TaskRepo) cacheSet(ctx context.Context, key string, task models.Task) {
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, taskCacheTTL).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching task", zap.Error(err))
	}
}
