package backend

import "strings"

// Service selectors understood by the driver-call API.
const (
	ServiceClaude = "claude"
	ServiceGPT    = "openai-gpt"
)

// serviceAliases maps exact model identifiers to backend services.
var serviceAliases = map[string]string{
	"claude-sonnet-4":   ServiceClaude,
	"claude-opus-4":     ServiceClaude,
	"claude-3-7-sonnet": ServiceClaude,
	"gpt-4":             ServiceGPT,
	"gpt-5":             ServiceGPT,
	"gpt-3.5-turbo":     ServiceGPT,
}

// RouteModel maps a caller-supplied model identifier to a backend service
// selector. Unknown identifiers fall back to the Claude service so new model
// names degrade gracefully instead of erroring.
func RouteModel(model string) string {
	if svc, ok := serviceAliases[model]; ok {
		return svc
	}
	switch {
	case strings.HasPrefix(model, "claude"):
		return ServiceClaude
	case strings.HasPrefix(model, "gpt"):
		return ServiceGPT
	}
	return ServiceClaude
}
