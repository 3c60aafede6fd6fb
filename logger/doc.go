// Package logger provides structured logging backed by zerolog.
//
// Loggers are cheap values: WithComponent, WithFields and WithError return
// derived loggers that share the same sink. Fields are passed as maps so call
// sites read like the facade's own log lines:
//
//	log := logger.Get("redis")
//	log.Debug("json set rejected", logger.Fields(logger.FieldKey, key, logger.FieldErrorCode, code))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
