package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	CMSConfig struct {
		BaseURL      string
		Token        string
		Collection   string
		Timeout      time.Duration
		FixturesPath string // when set, courses are read from this YAML file instead of Directus
	}

	Config struct {
		Env           string
		Debug         bool
		TestMode      bool
		AppName       string
		Build         string
		DefaultLocale string
		RollbarToken  string
		WorkDir       string
		Server        ServerConfig
		CMS           CMSConfig
	}
)

// NewConfig loads the app configuration from defaults, `config/.env.<env>` and the environment.
// ENV selects the environment: DEV (local; default), TEST, QA, PROD.
// Variables are read with the environment as prefix, eg. PROD_CMS_BASEURL.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Catalog")
	conf.SetDefault("build", "dev")
	conf.SetDefault("defaultLocale", "fr")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.readTimeout", 5*time.Second)
	conf.SetDefault("server.writeTimeout", 10*time.Second)
	conf.SetDefault("server.shutdownTimeout", 10*time.Second)
	conf.SetDefault("server.disableReqLogs", false)
	conf.SetDefault("cms.baseURL", "http://localhost:8055")
	conf.SetDefault("cms.token", "")
	conf.SetDefault("cms.collection", "courses")
	conf.SetDefault("cms.timeout", 8*time.Second)
	conf.SetDefault("cms.fixturesPath", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:           env,
		Debug:         conf.GetBool("debug"),
		TestMode:      conf.GetBool("testMode"),
		AppName:       conf.GetString("appName"),
		Build:         conf.GetString("build"),
		DefaultLocale: CleanString(conf.GetString("defaultLocale"), true),
		RollbarToken:  conf.GetString("rollbarToken"),
		WorkDir:       wd,
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Address:         conf.GetString("server.address"),
			DebugHost:       conf.GetString("server.debugHost"),
			ReadTimeout:     conf.GetDuration("server.readTimeout"),
			WriteTimeout:    conf.GetDuration("server.writeTimeout"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		CMS: CMSConfig{
			BaseURL:      strings.TrimRight(conf.GetString("cms.baseURL"), "/"),
			Token:        conf.GetString("cms.token"),
			Collection:   conf.GetString("cms.collection"),
			Timeout:      conf.GetDuration("cms.timeout"),
			FixturesPath: conf.GetString("cms.fixturesPath"),
		},
	}
}
