package quotedocument

import (
	"context"
	"fmt"
	"net/http"

	"winhouse-quote/internal/common/config"
	commonerrors "winhouse-quote/internal/common/errors"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/logger"
)

const TaskType = "document.quote"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for quote-document: %w", err)
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:  handlerConfig,
		logger:  loggerInstance,
		service: NewService(ServiceDependencies{Logger: loggerInstance}, handlerConfig),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
}

// Write renders the document as an HTML attachment.
func (h *Handler) Write(ctx context.Context, w http.ResponseWriter, input *Input) {
	output, err := h.Execute(ctx, input)
	if err != nil {
		stdErr := commonerrors.NewDocumentRenderFailedError(err)
		h.logger.Error("quote document failed", map[string]interface{}{
			"quoteNumber": input.QuoteNumber,
			"code":        string(stdErr.Code),
			"error":       stdErr.Details,
		})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to generate PDF"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(output.HTML))
}

// ServeHTTP implements the public document endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		commonhttp.WriteJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
		return
	}

	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		h.logger.Error("document request rejected", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to generate PDF"))
		return
	}

	result, err := inputValidator.Validate(raw)
	if err != nil || !result.Valid {
		fields := map[string]interface{}{}
		if result != nil {
			fields["errors"] = result.GetErrorMessages()
		}
		h.logger.Warn("document request invalid", fields)
		commonhttp.WriteJSON(w, http.StatusBadRequest, errorBody("Missing required fields"))
		return
	}

	var input Input
	if err := commonhttp.Remarshal(raw, &input); err != nil {
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to generate PDF"))
		return
	}

	h.Write(r.Context(), w, &input)
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
