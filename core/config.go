package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string
		AppName  string
		WorkDir  string

		SecretKey       string
		FrontendBaseURL string

		DefaultFromEmail  string
		TeacherInboxEmail string
		SendgridApiKey    string
		RollbarToken      string

		Server    serverConfig
		Database  databaseConfig
		Gemini    geminiConfig
		WorldTime worldTimeConfig
		Digest    digestConfig
	}

	serverConfig struct {
		Host                      string
		Port                      int
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	databaseConfig struct {
		URI     string
		Name    string
		Timeout time.Duration
	}

	geminiConfig struct {
		ApiKey     string
		BaseURL    string
		TextModel  string
		ImageModel string
		Timeout    time.Duration
	}

	worldTimeConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	digestConfig struct {
		Enabled bool
		Weekday time.Weekday
		Hour    int
	}
)

// NewConfig loads the app configuration from the environment;
// an optional `config/.env.<env>` file is loaded first if it exists.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "ClassAI")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "x0q5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("teacherInboxEmail", "")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("serverDebugHost", "localhost:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("databaseURI", "mongodb://localhost:27017")
	v.SetDefault("databaseName", "classai")
	v.SetDefault("databaseTimeout", 10*time.Second)
	v.SetDefault("geminiBaseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("geminiTextModel", "gemini-2.0-flash")
	v.SetDefault("geminiImageModel", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("geminiTimeout", 60*time.Second)
	v.SetDefault("worldTimeBaseURL", "http://worldtimeapi.org")
	v.SetDefault("worldTimeTimeout", 5*time.Second)
	v.SetDefault("digestEnabled", false)
	v.SetDefault("digestWeekday", int(time.Friday))
	v.SetDefault("digestHour", 16)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("debug", false)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)

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
	v.AutomaticEnv()

	return &Config{
		Debug:             v.GetBool("debug"),
		TestMode:          v.GetBool("testMode"),
		Env:               env,
		Build:             v.GetString("build"),
		AppName:           v.GetString("appName"),
		WorkDir:           wd,
		SecretKey:         v.GetString("secretKey"),
		FrontendBaseURL:   v.GetString("frontendBaseURL"),
		DefaultFromEmail:  v.GetString("defaultFromEmail"),
		TeacherInboxEmail: v.GetString("teacherInboxEmail"),
		SendgridApiKey:    v.GetString("sendgridApiKey"),
		RollbarToken:      v.GetString("rollbarToken"),
		Server: serverConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetInt("serverPort"),
			DebugHost:                 v.GetString("serverDebugHost"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: databaseConfig{
			URI:     v.GetString("databaseURI"),
			Name:    v.GetString("databaseName"),
			Timeout: v.GetDuration("databaseTimeout"),
		},
		Gemini: geminiConfig{
			ApiKey:     v.GetString("geminiApiKey"),
			BaseURL:    v.GetString("geminiBaseURL"),
			TextModel:  v.GetString("geminiTextModel"),
			ImageModel: v.GetString("geminiImageModel"),
			Timeout:    v.GetDuration("geminiTimeout"),
		},
		WorldTime: worldTimeConfig{
			BaseURL: v.GetString("worldTimeBaseURL"),
			Timeout: v.GetDuration("worldTimeTimeout"),
		},
		Digest: digestConfig{
			Enabled: v.GetBool("digestEnabled"),
			Weekday: time.Weekday(v.GetInt("digestWeekday")),
			Hour:    v.GetInt("digestHour"),
		},
	}
}

// Address returns the server's listen address in "host:port" form.
func (c serverConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FromEmail returns the default sender address.
func (c *Config) FromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}
