package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	FirebaseProjectID       string
	FirebaseCredentialsFile string
	PaymentGatewayKey       string
	KafkaHost               string
	KafkaTrackingTopic      string

	ReconcileSchedule string
	ReconcileRepair   bool
}

// LoadConfig reads .env (when present), then the environment, then the
// command-line flags in args. Later sources win.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Warn("no .env file, using the process environment")
	}

	cfg := Config{
		HTTPPort:                env("HTTP_PORT", "8080"),
		DBHost:                  env("DB_HOST", ""),
		DBPort:                  env("DB_PORT", "5432"),
		DBUser:                  env("DB_USER", ""),
		DBPassword:              env("DB_PASSWORD", ""),
		DBName:                  env("DB_NAME", ""),
		DBSslMode:               env("DB_SSLMODE", "disable"),
		LogLevel:                env("LOG_LEVEL", "info"),
		FirebaseProjectID:       env("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: env("FIREBASE_CREDENTIALS_FILE", ""),
		PaymentGatewayKey:       env("PAYMENT_GATEWAY_KEY", ""),
		KafkaHost:               env("KAFKA_HOST", ""),
		KafkaTrackingTopic:      env("KAFKA_TRACKING_TOPIC", "parcel.tracking"),
		ReconcileSchedule:       env("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule),
	}
	repair, err := strconv.ParseBool(env("RECONCILE_REPAIR", "false"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("RECONCILE_REPAIR", err)
	}
	cfg.ReconcileRepair = repair

	flags := pflag.NewFlagSet("parcelhub", pflag.ContinueOnError)
	flags.StringVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.ReconcileSchedule, "reconcile-schedule", cfg.ReconcileSchedule, "cron schedule of the rider reconciliation")
	flags.BoolVar(&cfg.ReconcileRepair, "reconcile-repair", cfg.ReconcileRepair, "repair riders found by the reconciliation")
	if err = flags.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var err error
	if portErr := validatePort("HTTP_PORT", c.HTTPPort); portErr != nil {
		err = errors.Join(err, portErr)
	}
	if portErr := validatePort("DB_PORT", c.DBPort); portErr != nil {
		err = errors.Join(err, portErr)
	}
	if strings.TrimSpace(c.DBHost) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if _, levelErr := logging.ParseLevel(c.LogLevel); levelErr != nil {
		err = errors.Join(err, levelErr)
	}
	if scheduleErr := jobs.ValidateSchedule(c.ReconcileSchedule); scheduleErr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("RECONCILE_SCHEDULE", scheduleErr))
	}
	return err
}

// DSN renders the libpq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if port < 1 || port > 65535 {
		return errs.NewValueIsOutOfRangeError(name, port, 1, 65535)
	}
	return nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
