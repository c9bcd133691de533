package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string        `yaml:"env" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort      int           `yaml:"api_port" env-default:"8080"`
	ApiHost      string        `yaml:"api_host" env-default:"localhost"`
	JwtSecret    string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret"`
	SessionTTL   time.Duration `yaml:"session_ttl" env-default:"24h"`
	AllowOrigins []string      `yaml:"allow_origins" env-default:"http://localhost:3000"`
	Postgres     `yaml:"postgres"`
	S3           `yaml:"s3"`
}

type Postgres struct {
	Host string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"DB_PORT" env-default:"5433"`
	User string `yaml:"user" env:"DB_USER" env-default:"test"`
	Pass string `yaml:"pass" env:"DB_PASS" env-default:"12345"`
	Db   string `yaml:"db" env:"DB_NAME" env-default:"travelviz"`
}

type S3 struct {
	Region       string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	BaseEndpoint string `yaml:"base_endpoint" env:"S3_BASE_ENDPOINT"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET" env-default:"travelviz-avatars"`
	AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("Failed to read config" + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
