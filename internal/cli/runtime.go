package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthlog/internal/config"
	"github.com/terraincognita07/healthlog/internal/db"
	"github.com/terraincognita07/healthlog/internal/pdf"
	"github.com/terraincognita07/healthlog/internal/security"
	"github.com/terraincognita07/healthlog/internal/services"
	"gorm.io/gorm"
)

// runtime is the wired object graph shared by every command.
type runtime struct {
	cfg       config.Config
	database  *gorm.DB
	repos     *db.Repositories
	crypto    *security.CryptoStore
	passwords *services.PasswordService
	settings  *services.SettingsService
	records   *services.RecordService
	stats     *services.StatsService
	exports   *services.ExportService
	now       func() time.Time
}

func openRuntime(configFile string) (*runtime, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateSecretKey(cfg.SecretKey); err != nil {
		return nil, err
	}

	database, err := cfg.OpenDatabase()
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	sealed, err := security.NewSealedStore(repos.Settings, []byte(cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("settings store init failed: %w", err)
	}
	crypto := security.NewCryptoStore(sealed, security.WithKeyDerivation(cfg.KeyDerivation))
	settings := services.NewSettingsService(repos.Settings)

	return &runtime{
		cfg:       cfg,
		database:  database,
		repos:     repos,
		crypto:    crypto,
		passwords: services.NewPasswordService(crypto),
		settings:  settings,
		records:   services.NewRecordService(repos.Diet, repos.Exercise, repos.Sleep, cfg.Location),
		stats:     services.NewStatsService(repos),
		exports:   services.NewExportService(repos, pdf.NewRenderer(), crypto, settings, cfg.ExportDir, cfg.Location),
		now:       time.Now,
	}, nil
}

func (rt *runtime) Close() error {
	sqlDB, err := rt.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withRuntime(options *rootOptions, run func(*runtime) error) error {
	rt, err := openRuntime(options.configFile)
	if err != nil {
		return err
	}
	defer rt.Close()
	return run(rt)
}

type rangeFlags struct {
	from   string
	to     string
	period string
}

func (flags *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.from, "from", "", "First day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "Last day of the range (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&flags.period, "period", "", "week, month or custom; sets the default start and the report label")
}

func (flags *rangeFlags) resolve(rt *runtime) (services.DateRange, error) {
	dateRange, err := services.ParseExportRange(flags.from, flags.to, flags.period, rt.now(), rt.cfg.Location)
	if err != nil {
		return services.DateRange{}, fmt.Errorf("invalid range: %w", err)
	}
	return dateRange, nil
}
