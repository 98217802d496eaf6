// internal/workers/notification/match-activity/handler.go
package matchactivity

import (
	"context"
	"encoding/json"
	"fmt"

	"padel-notifier/internal/common/errors"
	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "notify-match-activity"
)

var inputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"kind": map[string]interface{}{
			"type": "string",
			"enum": []string{
				string(models.TriggerParticipantJoined),
				string(models.TriggerParticipantLeft),
				string(models.TriggerThoughtAdded),
				string(models.TriggerThoughtReaction),
			},
		},
		"matchId":     map[string]interface{}{"type": "string", "minLength": 1},
		"organizerId": map[string]interface{}{"type": "string", "minLength": 1},
		"actorId":     map[string]interface{}{"type": "string", "minLength": 1},
	},
	"required": []string{"kind", "matchId", "organizerId", "actorId"},
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return nil
	}

	h.completeJob(client, job, output)
	return nil
}

// execute runs the fan-out. Fan-out failures are absorbed: the triggering
// activity already happened, and the dedup guard claimed the trigger, so a
// job retry would be suppressed as a duplicate anyway.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	kind := models.TriggerKind(input.Kind)
	if !kind.IsActivity() {
		return nil, errors.NewInvalidTriggerError(input.Kind)
	}

	event := &models.MatchEvent{
		TriggerID:      input.TriggerID,
		Kind:           kind,
		MatchID:        input.MatchID,
		CreatorID:      input.OrganizerID,
		ActorID:        input.ActorID,
		ActorName:      input.ActorName,
		ThoughtContent: input.ThoughtContent,
	}

	count, err := h.fanout.RunFanOut(ctx, event)
	if err != nil {
		h.logger.Warn("fan-out did not complete", map[string]interface{}{
			"matchId": input.MatchID,
			"kind":    input.Kind,
			"error":   err.Error(),
		})
		return &Output{NotificationsCreated: count, FanOutCompleted: false}, nil
	}

	h.logger.Info("fan-out completed", map[string]interface{}{
		"matchId":              input.MatchID,
		"kind":                 input.Kind,
		"notificationsCreated": count,
	})
	return &Output{NotificationsCreated: count, FanOutCompleted: true}, nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
