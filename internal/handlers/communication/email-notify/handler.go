package emailnotify

import (
	"context"
	"fmt"
	"net/http"

	"winhouse-quote/internal/common/aws"
	"winhouse-quote/internal/common/config"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

const TaskType = "communication.email.notify"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Mailer       Mailer
	SESClient    aws.SESAPI
	SNSClient    aws.SNSAPI
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for email-notify: %w", err)
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
			Logger: loggerInstance,
			Mailer: opts.Mailer,
			SES:    opts.SESClient,
			SNS:    opts.SNSClient,
		}, handlerConfig),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Type == "" {
		input.Type = TypeLeadNotification
	}
	if !h.config.Enabled {
		html, err := Render(input.Data, h.config.Company, h.service.now())
		if err != nil {
			return nil, err
		}
		return &Output{Success: true, Message: "Email processed", Preview: html}, nil
	}
	return h.service.Execute(ctx, input)
}

// Notify sends the new-lead notification to the sales inbox.
func (h *Handler) Notify(ctx context.Context, lead models.LeadNotification) error {
	_, err := h.Execute(ctx, &Input{Type: TypeLeadNotification, Data: lead})
	return err
}

// ServeHTTP renders a notification on POST and the sample preview on GET.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.servePreview(w)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST")
		commonhttp.WriteJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed"))
		return
	}

	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		h.logger.Error("email request rejected", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to process email"))
		return
	}

	result, err := inputValidator.Validate(raw)
	if err != nil || !result.Valid {
		fields := map[string]interface{}{}
		if result != nil {
			fields["errors"] = result.GetErrorMessages()
		}
		h.logger.Warn("email request invalid", fields)
		commonhttp.WriteJSON(w, http.StatusBadRequest, errorBody("Missing required fields"))
		return
	}

	var input Input
	if err := commonhttp.Remarshal(raw, &input); err != nil {
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to process email"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.logger.Error("email processing failed", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to process email"))
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) servePreview(w http.ResponseWriter) {
	html, err := Render(SampleLead(), h.config.Company, h.service.now())
	if err != nil {
		h.logger.Error("email preview failed", map[string]interface{}{"error": err.Error()})
		commonhttp.WriteJSON(w, http.StatusInternalServerError, errorBody("Failed to process email"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
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
