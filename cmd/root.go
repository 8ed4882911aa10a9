package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/locale"
	"github.com/spigell/hr-assistant/internal/logger"
	"github.com/spigell/hr-assistant/internal/session"
	"github.com/spigell/hr-assistant/internal/transport"
)

const (
	app = "hr-assistant"
)

type Config struct {
	APIURL        string        `mapstructure:"api-url"`
	Language      string        `mapstructure:"language"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user-agent"`
	LogFile       string        `mapstructure:"log-file"`
	PreviewLength int           `mapstructure:"preview-length"`
	MaxLogLength  int           `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-assistant is a terminal client for the internal HR assistant",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A missing .env is fine, anything else is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if err := viper.BindEnv("api-url", "HR_API_URL"); err != nil {
		log.Fatalf("binding HR_API_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("language", "HR_LANGUAGE"); err != nil {
		log.Fatalf("binding HR_LANGUAGE environment variable: %v", err)
	}

	viper.SetDefault("api-url", transport.DefaultAPIURL)
	viper.SetDefault("language", string(locale.English))
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("preview-length", session.DefaultPreviewLength)
	viper.SetDefault("max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().String("api-url", "", "base url of the HR assistant backend")
	rootCmd.PersistentFlags().StringP("language", "l", "", "conversation language (en or vi)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("empty configuration")
	}

	return config, nil
}

// setup builds everything a command needs to talk to the backend.
func setup() (*Config, *zap.Logger, *transport.Client) {
	logger, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		File:  viper.GetString("log-file"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config",
		zap.String("version", version),
		zap.String("api_url", config.APIURL),
		zap.String("language", config.Language),
		zap.Duration("timeout", config.Timeout),
	)

	client := transport.New(logger, config.APIURL, config.Timeout)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return config, logger, client
}

func newConversation(config *Config, logger *zap.Logger, t session.Transport, onSelect func(string)) (*session.Conversation, error) {
	lang, err := locale.Parse(config.Language)
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}

	return session.New(t, logger, session.Options{
		Language:           lang,
		PreviewLength:      config.PreviewLength,
		MaxLogLength:       config.MaxLogLength,
		OnPositionSelected: onSelect,
	}), nil
}
