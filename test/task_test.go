package test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaskLifecycle walks the happy path: fresh account, empty list,
// create, toggle completion, delete.
func TestTaskLifecycle(t *testing.T) {
	app := CreateTestApp()

	token, userID := registerUser(t, app, uniqueEmail("lifecycle"), "secret1")

	// A fresh account owns no tasks.
	status, result := doJSON(t, app, "GET", "/api/v1/tasks/", token, nil)
	require.Equal(t, http.StatusOK, status)
	tasks, ok := result["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, tasks)

	// Create defaults completed to false.
	status, result = doJSON(t, app, "POST", "/api/v1/tasks/", token, map[string]string{
		"title": "buy milk",
	})
	require.Equal(t, http.StatusCreated, status)
	task, ok := result["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "buy milk", task["title"])
	assert.Equal(t, false, task["completed"])
	assert.Equal(t, float64(userID), task["user_id"])
	taskID := int(task["id"].(float64))

	// Toggle completion.
	status, result = doJSON(t, app, "PUT", fmt.Sprintf("/api/v1/tasks/%d", taskID), token, map[string]interface{}{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, status)
	task = result["data"].(map[string]interface{})
	assert.Equal(t, true, task["completed"])
	assert.Equal(t, "buy milk", task["title"])

	// The toggle is visible on a subsequent read.
	status, result = doJSON(t, app, "GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), token, nil)
	require.Equal(t, http.StatusOK, status)
	task = result["data"].(map[string]interface{})
	assert.Equal(t, true, task["completed"])

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	app := CreateTestApp()

	token, _ := registerUser(t, app, uniqueEmail("partial"), "secret1")

	status, result := doJSON(t, app, "POST", "/api/v1/tasks/", token, map[string]string{
		"title":       "write report",
		"description": "quarterly numbers",
	})
	require.Equal(t, http.StatusCreated, status)
	taskID := int(result["data"].(map[string]interface{})["id"].(float64))

	// Updating only the title leaves the other fields alone.
	status, result = doJSON(t, app, "PUT", fmt.Sprintf("/api/v1/tasks/%d", taskID), token, map[string]string{
		"title": "write final report",
	})
	require.Equal(t, http.StatusOK, status)
	task := result["data"].(map[string]interface{})
	assert.Equal(t, "write final report", task["title"])
	assert.Equal(t, "quarterly numbers", task["description"])
	assert.Equal(t, false, task["completed"])
}

// TestCrossOwnerAccess drives the ownership invariant end to end: another
// account's verified identity must never see or touch the row, and the
// response must not reveal that the row exists.
func TestCrossOwnerAccess(t *testing.T) {
	app := CreateTestApp()

	ownerToken, _ := registerUser(t, app, uniqueEmail("owner"), "secret1")
	otherToken, _ := registerUser(t, app, uniqueEmail("intruder"), "secret2")

	status, result := doJSON(t, app, "POST", "/api/v1/tasks/", ownerToken, map[string]string{
		"title": "owner only",
	})
	require.Equal(t, http.StatusCreated, status)
	taskID := int(result["data"].(map[string]interface{})["id"].(float64))
	path := fmt.Sprintf("/api/v1/tasks/%d", taskID)

	// Read, update, delete with the wrong identity all look like a
	// missing id.
	status, getResult := doJSON(t, app, "GET", path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, "PUT", path, otherToken, map[string]interface{}{"completed": true})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, "DELETE", path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Identical body to a genuinely missing id.
	status, missingResult := doJSON(t, app, "GET", "/api/v1/tasks/999999", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, missingResult["message"], getResult["message"])

	// The intruder's list shows nothing.
	status, result = doJSON(t, app, "GET", "/api/v1/tasks/", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result["data"].([]interface{}))

	// The owner's row survived untouched.
	status, result = doJSON(t, app, "GET", path, ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	task := result["data"].(map[string]interface{})
	assert.Equal(t, "owner only", task["title"])
	assert.Equal(t, false, task["completed"])
}

func TestDeleteTaskIdempotentOutcome(t *testing.T) {
	app := CreateTestApp()

	token, _ := registerUser(t, app, uniqueEmail("delete"), "secret1")

	status, result := doJSON(t, app, "POST", "/api/v1/tasks/", token, map[string]string{
		"title": "short lived",
	})
	require.Equal(t, http.StatusCreated, status)
	path := fmt.Sprintf("/api/v1/tasks/%d", int(result["data"].(map[string]interface{})["id"].(float64)))

	status, _ = doJSON(t, app, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusOK, status)

	// Repeating the delete yields the same not-found outcome every time.
	status, first := doJSON(t, app, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, second := doJSON(t, app, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, first["message"], second["message"])
}

func TestCreateTaskValidation(t *testing.T) {
	app := CreateTestApp()

	token, _ := registerUser(t, app, uniqueEmail("validate"), "secret1")

	status, _ := doJSON(t, app, "POST", "/api/v1/tasks/", token, map[string]string{
		"description": "no title here",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
