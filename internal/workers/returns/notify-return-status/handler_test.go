// internal/workers/returns/notify-return-status/handler_test.go
package notifyreturnstatus

import (
	"encoding/json"
	"testing"
	"time"

	"return-notify-workers/internal/common/config"
	cerrors "return-notify-workers/internal/common/errors"
	"return-notify-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "goods-return",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_NotifyReturnStatus",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func createChangeJobVariables() map[string]interface{} {
	return map[string]interface{}{
		"resellerId":        7,
		"notificationType":  2,
		"clientId":          42,
		"creatorId":         11,
		"expertId":          12,
		"complaintId":       100,
		"complaintNumber":   "C-100",
		"consumptionId":     200,
		"consumptionNumber": "K-200",
		"agreementNumber":   "A-300",
		"date":              "2026-08-31",
		"differences":       map[string]interface{}{"from": 1, "to": 2},
	}
}

func createHandler(t *testing.T) *Handler {
	t.Helper()
	handler, err := NewHandler(HandlerOptions{
		Dependencies: ServiceDependencies{
			Directory: happyDirectory(),
			Renderer:  passthroughRenderer(),
			Email:     &fakeEmail{},
			SMS:       &fakeSMS{},
		},
		Logger: logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return handler
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := createHandler(t)
	job := createMockJob(1, createChangeJobVariables())

	input, err := handler.parseInput(job)

	require.NoError(t, err)
	assert.Equal(t, 7, input.ResellerID)
	assert.Equal(t, NotificationTypeChange, input.NotificationType)
	assert.Equal(t, "C-100", input.ComplaintNumber)
	require.NotNil(t, input.Differences)
	assert.Equal(t, 2, input.Differences.To)
}

func TestHandler_ParseInput_ExtraWorkflowVariables(t *testing.T) {
	handler := createHandler(t)
	vars := createChangeJobVariables()
	vars["processStep"] = "returns"
	vars["correlationKey"] = "abc-123"

	input, err := handler.parseInput(createMockJob(2, vars))

	require.NoError(t, err)
	assert.Equal(t, 7, input.ResellerID)
}

func TestHandler_ParseInput_SchemaViolation(t *testing.T) {
	handler := createHandler(t)
	vars := createChangeJobVariables()
	vars["resellerId"] = "seven"

	_, err := handler.parseInput(createMockJob(3, vars))

	require.Error(t, err)
	opErr, ok := cerrors.AsOperationError(err)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrorCode("VALIDATION_FAILED"), opErr.Code)
	assert.False(t, opErr.Retryable)
}

// ==========================
// Configuration Tests
// ==========================

func TestNewHandler_ConfigFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		Workers: map[string]config.WorkerConfig{
			TaskType: {
				Enabled:       true,
				MaxJobsActive: 12,
				Timeout:       45000,
			},
		},
	}
	appCfg.Integrations.AWS.SES.FromEmail = "fallback@platform.example"

	handler, err := NewHandler(HandlerOptions{
		AppConfig: appCfg,
		Dependencies: ServiceDependencies{
			Directory: happyDirectory(),
			Renderer:  passthroughRenderer(),
			Email:     &fakeEmail{},
			SMS:       &fakeSMS{},
		},
		Logger: logger.NewNoOpLogger(),
	})

	require.NoError(t, err)
	assert.Equal(t, 12, handler.config.MaxJobsActive)
	assert.Equal(t, 45*time.Second, handler.config.Timeout)
	assert.Equal(t, "fallback@platform.example", handler.config.FromEmailFallback)
	assert.True(t, handler.IsEnabled())
	assert.Equal(t, TaskType, handler.GetTaskType())
}

func TestNewHandler_InvalidConfigRejected(t *testing.T) {
	_, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 0, Timeout: time.Second},
		Logger:       logger.NewNoOpLogger(),
	})

	assert.Error(t, err)
}

func TestErrorCodeExtraction(t *testing.T) {
	assert.Equal(t, "SELLER_NOT_FOUND", extractErrorCode(cerrors.NewSellerNotFoundError(7)))
	assert.Equal(t, "UNKNOWN_ERROR", extractErrorCode(assert.AnError))

	opErr := convertToOperationError(assert.AnError)
	assert.Equal(t, cerrors.ErrorCode("NOTIFY_RETURN_STATUS_ERROR"), opErr.Code)
	assert.True(t, opErr.Retryable)
}
