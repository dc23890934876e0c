package app

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/utils"
)

type Config struct {
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	OpenRouterAPIKey string
	GitHubToken      string
	RedisAddr        string
	PromptsFile      string
	AdminUserIDs     []uuid.UUID
	AllowedOrigins   []string
	TracingEnabled   bool
	ServiceName      string
	Port             string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	return Config{
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		OpenRouterAPIKey: utils.GetEnv("OPENROUTER_API_KEY", "", log),
		GitHubToken:      utils.GetEnv("GITHUB_TOKEN", "", log),
		RedisAddr:        utils.GetEnv("REDIS_ADDR", "", log),
		PromptsFile:      utils.GetEnv("PROMPTS_FILE", "", log),
		AdminUserIDs:     parseAdminIDs(utils.GetEnv("ADMIN_USER_IDS", "", log), log),
		AllowedOrigins:   splitList(utils.GetEnv("ALLOWED_ORIGINS", "", log)),
		TracingEnabled:   utils.GetEnvAsBool("OTEL_ENABLED", false, log),
		ServiceName:      utils.GetEnv("SERVICE_NAME", "repotutor-backend", log),
		Port:             utils.GetEnv("PORT", "8080", log),
	}
}

func parseAdminIDs(raw string, log *logger.Logger) []uuid.UUID {
	var ids []uuid.UUID
	for _, part := range splitList(raw) {
		id, err := uuid.Parse(part)
		if err != nil {
			log.Warn("Ignoring malformed admin user id", "value", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
