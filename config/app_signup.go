package config

import (
	"strings"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/notify"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
	"github.com/akeren/sunday-signup/pkg/utils"
)

// PaymentMethodKeys are the payment options offered on the form.
var PaymentMethodKeys = []string{"cashapp", "venmo", "zelle", "paypal", "inperson"}

type SignupConfig struct {
	SheetsScriptURL   string
	SheetsSubmitMode  sheets.SubmitMode
	SheetsGamesAction string
	SheetsTimeout     time.Duration

	GamesCacheTTL  time.Duration
	LookupCacheTTL time.Duration

	PricingMode       string
	PricePerUnitCents int64
	// PaymentHandles maps a payment method key to the account players pay into.
	PaymentHandles map[string]string

	DefaultGameTime     string
	DefaultGameLocation string
	DefaultGameCourt    string
	GameLocation        *time.Location

	SignupRequestsPerMinute int

	SendGrid notify.SendGridConfig
}

func NewSignupConfig(logger *log.Logger) *SignupConfig {
	cfg := &SignupConfig{
		SheetsScriptURL:         sanitizeEnv(GetValueFromEnvironmentVariable("SHEETS_SCRIPT_URL", "")),
		SheetsSubmitMode:        sheets.ParseSubmitMode(utils.GetEnvTrimmed("SHEETS_SUBMIT_MODE")),
		SheetsGamesAction:       utils.GetEnvTrimmedOrDefault("SHEETS_GAMES_ACTION", sheets.ActionNext3Sundays),
		SheetsTimeout:           utils.GetEnvDurationOrDefault("SHEETS_TIMEOUT", constants.DefaultUpstreamTimeout),
		GamesCacheTTL:           utils.GetEnvDurationOrDefault("GAMES_CACHE_TTL", constants.DefaultGamesCacheTTL),
		LookupCacheTTL:          utils.GetEnvDurationOrDefault("PLAYER_LOOKUP_CACHE_TTL", constants.DefaultLookupCacheTTL),
		PricingMode:             strings.ToLower(utils.GetEnvTrimmedOrDefault("PRICING_MODE", "per_slot")),
		PricePerUnitCents:       utils.GetEnvInt64OrDefault("PRICE_PER_UNIT_CENTS", constants.DefaultPricePerUnitCents),
		PaymentHandles:          make(map[string]string, len(PaymentMethodKeys)),
		DefaultGameTime:         utils.GetEnvTrimmedOrDefault("DEFAULT_GAME_TIME", "9:00 AM"),
		DefaultGameLocation:     utils.GetEnvTrimmedOrDefault("DEFAULT_GAME_LOCATION", "TBA"),
		DefaultGameCourt:        utils.GetEnvTrimmed("DEFAULT_GAME_COURT"),
		GameLocation:            time.Local,
		SignupRequestsPerMinute: int(utils.GetEnvInt64OrDefault("SIGNUP_RATE_LIMIT_PER_MINUTE", constants.DefaultSignupRequestsPerMinute)),
		SendGrid: notify.SendGridConfig{
			APIKey:    utils.GetEnvTrimmed("SENDGRID_API_KEY"),
			FromEmail: utils.GetEnvTrimmed("SENDGRID_FROM_EMAIL"),
			FromName:  utils.GetEnvTrimmed("SENDGRID_FROM_NAME"),
		},
	}

	for _, key := range PaymentMethodKeys {
		cfg.PaymentHandles[key] = utils.GetEnvTrimmed("PAYMENT_" + strings.ToUpper(key) + "_HANDLE")
	}

	if tz := utils.GetEnvTrimmed("GAME_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Warn("Invalid GAME_TIMEZONE; using local time", "timezone", tz, "error", err.Error())
		} else {
			cfg.GameLocation = loc
		}
	}

	if cfg.SheetsScriptURL == "" {
		logger.Warn("SHEETS_SCRIPT_URL not set; submissions run in test mode and games are computed locally")
	} else {
		logger.Info("Spreadsheet endpoint configured", "submit_mode", cfg.SheetsSubmitMode, "games_action", cfg.SheetsGamesAction)
	}

	return cfg
}

func (sc *SignupConfig) NewSheetsClient(logger *log.Logger) *sheets.Client {
	return sheets.NewClient(sheets.Config{
		ScriptURL:  sc.SheetsScriptURL,
		SubmitMode: sc.SheetsSubmitMode,
		Timeout:    sc.SheetsTimeout,
		Tracing:    utils.IsTracingEnabled(),
	}, logger)
}

// NewEmailSender returns nil when SendGrid is not configured.
func (sc *SignupConfig) NewEmailSender(logger *log.Logger) notify.EmailSender {
	sender := notify.NewSendGridSender(sc.SendGrid, logger)
	if sender == nil {
		logger.Info("SendGrid not configured; confirmation emails disabled")
		return nil
	}

	logger.Info("SendGrid confirmation emails enabled", "from", sc.SendGrid.FromEmail)
	return sender
}
