package config

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

type Config struct {
	MinIOBucket string        `yaml:"minio_bucket"`
	App         App           `yaml:"app"`
	DB          *sql.DB       `yaml:"db"`
	Queue       *RabbitMQ     `yaml:"rabbitmq"`
	Storage     *minio.Client `yaml:"storage"`
	Server      Server        `yaml:"server"`
	Cache       Cache         `yaml:"cache"`
	Upload      Upload        `yaml:"upload"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
	// PublicStorageURL is the base of the fixed retrieval URL template;
	// object URLs are "{PublicStorageURL}/{bucket}/{key}".
	PublicStorageURL string `yaml:"public_storage_url"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
	Workers  int    `yaml:"workers"`
}

type Cache struct {
	ListingTTL time.Duration `yaml:"listing_ttl"`
}

type Upload struct {
	VideoMaxBytes int64 `yaml:"video_max_bytes"`
	JSONMaxBytes  int64 `yaml:"json_max_bytes"`
}

type RabbitMQ struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Pass         string `json:"pass"`
	ExchangeName string `json:"exchange_name"`
	Kind         string `json:"kind"`
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("cache.listing_ttl_minutes", 5)
	viper.SetDefault("upload.video_max_mb", 512)
	viper.SetDefault("upload.json_max_mb", 1)
	viper.SetDefault("server.workers", 4)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", viper.GetString("postgresql_host"))
	if err != nil {
		return nil, err
	}

	rabbitmq := &RabbitMQ{
		Host: viper.GetString("rabbitmq_host"),
		Port: viper.GetInt("rabbitmq_port"),
		User: viper.GetString("rabbitmq_user"),
		Pass: viper.GetString("rabbitmq_pass"),
		Kind: viper.GetString("rabbitmq_kind"),
	}

	minioClient, err := minio.New(viper.GetString("minio.url"), &minio.Options{
		Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	return &Config{
		MinIOBucket: viper.GetString("minio.bucket"),
		App: App{
			Environment:      viper.GetString("app.environment"),
			Host:             viper.GetString("app.host"),
			Protocol:         viper.GetString("app.protocol"),
			PublicStorageURL: viper.GetString("app.public_storage_url"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
			Workers:  viper.GetInt("server.workers"),
		},
		Cache: Cache{
			ListingTTL: time.Duration(viper.GetInt("cache.listing_ttl_minutes")) * time.Minute,
		},
		Upload: Upload{
			VideoMaxBytes: viper.GetInt64("upload.video_max_mb") << 20,
			JSONMaxBytes:  viper.GetInt64("upload.json_max_mb") << 20,
		},
		DB:      db,
		Queue:   rabbitmq,
		Storage: minioClient,
	}, nil
}
