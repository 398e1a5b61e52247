package utils

import (
	"log"
	"strings"
)

// LogEvent writes one audit line for a domain action. Request-scoped callers
// pass the middleware request id; background work passes "". Messages must
// stay free of OTP codes and tokens.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
