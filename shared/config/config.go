package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public Public
}

type Public struct {
	Address           string   `yaml:"address" validate:"required,hostname_port"`
	SqlitePath        string   `yaml:"sqlite_path" validate:"required"`
	LogLevel          string   `yaml:"log_level"`
	LogJSON           bool     `yaml:"log_json"`
	AllowedOrigins    []string `yaml:"allowed_origins" validate:"dive,url"`
	CatalogBatchReads bool     `yaml:"catalog_batch_reads"` // compose catalog listings from batched IN lookups instead of per-thread reads
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(public); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &Config{public}
}
