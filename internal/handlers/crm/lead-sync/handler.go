package leadsync

import (
	"context"
	"fmt"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/logger"
)

const TaskType = "crm.lead.sync"

type Handler struct {
	config  *Config
	logger  logger.Logger
	service *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Client       CRMClient
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	handlerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := handlerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for lead-sync: %w", err)
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
			Client: opts.Client,
		}, handlerConfig),
	}, nil
}

// Execute upserts the lead. A disabled sync reports success without calling
// the CRM.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.config.Enabled {
		return &Output{Success: true, Message: "CRM sync disabled"}, nil
	}

	h.logger.Debug("Executing CRM lead sync", map[string]interface{}{
		"email":       input.Lead.Email,
		"quoteNumber": input.QuoteNumber,
	})
	return h.service.Execute(ctx, input)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
