package emailgenerate

import (
	"context"
	"fmt"
	"net/http"

	"winhouse-quote/internal/common/config"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

const TaskType = "ai.email.generate"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Completer    Completer
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for email-generate: %w", err)
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
			Logger:    loggerInstance,
			Completer: opts.Completer,
		}, handlerConfig),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input), nil
}

// Generate returns the drafted emails; it always yields three when the
// backend is unavailable.
func (h *Handler) Generate(ctx context.Context, input Input) []models.EmailTemplate {
	return h.service.Execute(ctx, &input).Emails
}

// ServeHTTP implements the public generation endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		commonhttp.WriteJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
		return
	}

	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		h.logger.Error("generation request rejected", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	result, err := inputValidator.Validate(raw)
	if err != nil || !result.Valid {
		fields := map[string]interface{}{}
		if result != nil {
			fields["errors"] = result.GetErrorMessages()
		}
		h.logger.Warn("generation request invalid", fields)
		commonhttp.WriteJSON(w, http.StatusBadRequest, errorBody("Missing required fields"))
		return
	}

	var input Input
	if err := commonhttp.Remarshal(raw, &input); err != nil {
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	output, _ := h.Execute(r.Context(), &input)
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
