package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		WorkDir      string
		Server       ServerConfig
		Grading      GradingConfig
	}

	ServerConfig struct {
		Host string
		Port int
	}

	GradingConfig struct {
		DisplayPrecision int // decimal places shown to users
		DefaultCourses   int // courses on a fresh sheet
		DefaultCredits   int
		MaxSheets        int // sheets kept in memory before evicting the stalest
	}
)

func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// NewConfig loads the configuration from the environment of the current ENV
// and, when present, from config/.env.<env> under the project root.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "GPA Calculator")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "")
	conf.SetDefault("server.port", 8000)
	conf.SetDefault("grading.displayPrecision", 2)
	conf.SetDefault("grading.defaultCourses", 6)
	conf.SetDefault("grading.defaultCredits", 3)
	conf.SetDefault("grading.maxSheets", 1000)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      workDir,
		Server: ServerConfig{
			Host: conf.GetString("server.host"),
			Port: conf.GetInt("server.port"),
		},
		Grading: GradingConfig{
			DisplayPrecision: conf.GetInt("grading.displayPrecision"),
			DefaultCourses:   conf.GetInt("grading.defaultCourses"),
			DefaultCredits:   conf.GetInt("grading.defaultCredits"),
			MaxSheets:        conf.GetInt("grading.maxSheets"),
		},
	}
}
