package api

import (
	"duygu.io/sentiment/logger"
	"github.com/rs/zerolog"
	"net/http"
)

var defaultLogger = logger.NewLogger("API")

type endpointLoggerFields struct {
	Method string `json:"method"`
	Url    string `json:"url"`
	Remote string `json:"remote"`
}

const RequestInfoFieldsKey = "request_info"

func makeRequestLogger(request *http.Request, tid string) zerolog.Logger {
	fields := endpointLoggerFields{
		Method: request.Method,
		Url:    request.URL.String(),
		Remote: request.RemoteAddr,
	}
	return defaultLogger.
		With().Interface(RequestInfoFieldsKey, fields).Str("tid", tid).Logger()
}
