package eventrelay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"winhouse-quote/internal/common/config"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

const TaskType = "relay.event"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Indexer      EventIndexer
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for event-relay: %w", err)
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: handlerConfig,
		logger: loggerInstance,
		service: NewService(ServiceDependencies{
			Logger:  loggerInstance,
			Indexer: opts.Indexer,
		}, handlerConfig),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.config.Enabled {
		return &Output{Success: true, Message: "Event relay disabled", Event: input.Event}, nil
	}
	return h.service.Execute(ctx, input)
}

// Relay sends a wizard event. It is the in-process entry point used after
// lead capture and quote issue.
func (h *Handler) Relay(ctx context.Context, event models.WebhookEvent) error {
	_, err := h.Execute(ctx, &Input{
		Event:     string(event.Event),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return err
}

// ServeHTTP implements the public webhook endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		commonhttp.WriteJSON(w, http.StatusOK, map[string]interface{}{})
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		commonhttp.WriteJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
		return
	}

	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		h.logger.Error("webhook body rejected", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	result, err := inputValidator.Validate(raw)
	if err != nil || !result.Valid {
		fields := map[string]interface{}{}
		if result != nil {
			fields["errors"] = result.GetErrorMessages()
		}
		h.logger.Warn("webhook missing required fields", fields)
		commonhttp.WriteJSON(w, http.StatusBadRequest, errorBody("Missing required fields"))
		return
	}

	var input Input
	if err := commonhttp.Remarshal(raw, &input); err != nil {
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout+5*time.Second)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.logger.Error("webhook relay failed", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func errorBody(msg string) map[string]interface{} {
	return map[string]interface{}{"success": false, "error": msg}
}
