package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/services"
)

const (
	authCookieName       = "healthlog_auth"
	defaultSessionTTL    = 7 * 24 * time.Hour
	sessionAttemptLimit  = 5
	sessionAttemptWindow = 15 * time.Minute
)

type Dependencies struct {
	Records      *services.RecordService
	Stats        *services.StatsService
	Exports      *services.ExportService
	Worker       *services.ExportWorker
	Passwords    *services.PasswordService
	Settings     *services.SettingsService
	SecretKey    string
	Location     *time.Location
	SessionTTL   time.Duration
	CookieSecure bool
}

type Handler struct {
	records        *services.RecordService
	stats          *services.StatsService
	exports        *services.ExportService
	worker         *services.ExportWorker
	passwords      *services.PasswordService
	settings       *services.SettingsService
	secretKey      []byte
	location       *time.Location
	sessionTTL     time.Duration
	cookieSecure   bool
	sessionLimiter *attemptLimiter
	now            func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Records == nil || deps.Stats == nil || deps.Exports == nil || deps.Worker == nil || deps.Passwords == nil || deps.Settings == nil {
		return nil, errors.New("missing service dependency")
	}
	if strings.TrimSpace(deps.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	sessionTTL := deps.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	return &Handler{
		records:        deps.Records,
		stats:          deps.Stats,
		exports:        deps.Exports,
		worker:         deps.Worker,
		passwords:      deps.Passwords,
		settings:       deps.Settings,
		secretKey:      []byte(deps.SecretKey),
		location:       location,
		sessionTTL:     sessionTTL,
		cookieSecure:   deps.CookieSecure,
		sessionLimiter: newAttemptLimiter(sessionAttemptLimit, sessionAttemptWindow),
		now:            time.Now,
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
