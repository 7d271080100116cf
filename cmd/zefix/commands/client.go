package commands

import (
	"context"
	"io"
	"sort"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/fivetwenty-io/zefix/pkg/zefixclient"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// hclogLogger adapts an hclog.Logger to zefix.Logger.
type hclogLogger struct {
	logger hclog.Logger
}

func newHCLogLogger(output io.Writer) *hclogLogger {
	return &hclogLogger{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "zefix",
			Level:  hclog.Debug,
			Output: output,
		}),
	}
}

func (l *hclogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, flatten(fields)...)
}

func (l *hclogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, flatten(fields)...)
}

func (l *hclogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, flatten(fields)...)
}

func (l *hclogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, flatten(fields)...)
}

// flatten turns fields into hclog's alternating key/value form, keys sorted.
func flatten(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}

// buildClientConfig assembles a client configuration from the merged settings.
func buildClientConfig(cmd *cobra.Command) *zefix.Config {
	config := &zefix.Config{
		BaseURL:      viper.GetString(KeyBaseURL),
		Interceptors: zefix.NewInterceptors().OnRequest(zefix.RequestIDInterceptor()),
	}

	if username := viper.GetString(KeyUsername); username != "" {
		config.Auth = &zefix.BasicAuth{
			Username: username,
			Password: viper.GetString(KeyPassword),
		}
	}

	if interval := viper.GetDuration(KeyThrottle); interval > 0 {
		config.Throttle = &zefix.ThrottleConfig{MinInterval: interval}
	}

	if viper.GetBool("verbose") {
		logger := newHCLogLogger(cmd.ErrOrStderr())

		config.Debug = true
		config.Logger = logger
		config.Interceptors.Use(zefix.TraceInterceptors(logger))
	}

	return config
}

// CreateClient creates a ZEFIX client from the CLI configuration.
func CreateClient(cmd *cobra.Command) (zefix.Client, error) {
	return zefixclient.New(commandContext(cmd), buildClientConfig(cmd))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
