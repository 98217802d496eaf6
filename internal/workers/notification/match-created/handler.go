// internal/workers/notification/match-created/handler.go
package matchcreated

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"padel-notifier/internal/common/errors"
	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "notify-match-created"
)

var inputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"matchId":   map[string]interface{}{"type": "string", "minLength": 1},
		"creatorId": map[string]interface{}{"type": "string", "minLength": 1},
		"latitude":  map[string]interface{}{"type": "number", "minimum": -90, "maximum": 90},
		"longitude": map[string]interface{}{"type": "number", "minimum": -180, "maximum": 180},
	},
	"required": []string{"matchId", "creatorId"},
}

// FanOut runs one notification fan-out for a match event.
type FanOut interface {
	RunFanOut(ctx context.Context, event *models.MatchEvent) (int, error)
}

type Handler struct {
	config       *Config
	fanout       FanOut
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, fanout FanOut, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		fanout:       fanout,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if err := validateInput(job.Variables); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewTriggerValidationFailedError(err.Error()))
		return nil
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewTriggerValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return nil
	}

	output := h.execute(ctx, &input)
	h.completeJob(client, job, output)
	return nil
}

// execute runs the fan-out. Fan-out failures are absorbed: the triggering
// user action already succeeded, and the dedup guard claimed the trigger, so
// a job retry would be suppressed as a duplicate anyway.
func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	event := &models.MatchEvent{
		TriggerID:         input.TriggerID,
		Kind:              models.TriggerNewMatch,
		MatchID:           input.MatchID,
		CreatorID:         input.CreatorID,
		ActorID:           input.CreatorID,
		ActorName:         input.CreatorName,
		VenueName:         input.VenueName,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		GroupIDs:          input.GroupIDs,
		RestrictedUserIDs: input.RestrictedUserIDs,
	}

	if input.MatchDate != "" {
		if parsed, err := time.Parse(time.RFC3339, input.MatchDate); err == nil {
			event.MatchDate = &parsed
		} else {
			// A bad date only degrades the message text, never the fan-out.
			h.logger.Warn("unparseable match date, composing without it", map[string]interface{}{
				"matchId":   input.MatchID,
				"matchDate": input.MatchDate,
			})
		}
	}

	count, err := h.fanout.RunFanOut(ctx, event)
	if err != nil {
		h.logger.Warn("fan-out did not complete", map[string]interface{}{
			"matchId": input.MatchID,
			"error":   err.Error(),
		})
		return &Output{NotificationsCreated: count, FanOutCompleted: false}
	}

	h.logger.Info("fan-out completed", map[string]interface{}{
		"matchId":              input.MatchID,
		"notificationsCreated": count,
	})
	return &Output{NotificationsCreated: count, FanOutCompleted: true}
}

func validateInput(variables string) error {
	schemaLoader := gojsonschema.NewGoLoader(inputSchema)
	documentLoader := gojsonschema.NewStringLoader(variables)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %v", errs)
	}

	return nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}
