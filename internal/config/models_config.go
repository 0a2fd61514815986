package config

import "time"

// SecretApp is the JSON document stored in Secrets Manager under APP_SECRET_ID.
type SecretApp struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	User        string `json:"username"`
	Pass        string `json:"password"`
	Name        string `json:"dbname"`
	SSL         string `json:"sslmode"`
	MQ_HOST     string `json:"MQ_HOST"`
	MQ_PASSWORD string `json:"MQ_PASSWORD"`
	MQ_PORT     int    `json:"MQ_PORT"`
	MQ_USER     string `json:"MQ_USER"`
	MQ_VHOST    string `json:"MQ_VHOST"`
}

type Config struct {
	Addr            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	SalesMaxLimit   int
	AWSRegion       string
	SecretID        string

	DB     DBConfig
	MQ     MQConfig
	Import ImportConfig
}

type DBConfig struct {
	Driver   string
	URL      string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

type MQConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	VHost       string
	TLS         bool
	ImportQueue string
}

type ImportConfig struct {
	Source       string
	BatchSize    int
	OnStartup    bool
	AdminEnabled bool
}

func (m MQConfig) Enabled() bool {
	return m.Host != ""
}

/// mapping objects

// apply overrides the connection settings present in the secret.
func (s SecretApp) apply(cfg *Config) {
	if s.Host != "" {
		cfg.DB.Host = s.Host
		cfg.DB.URL = ""
	}
	if s.Port != 0 {
		cfg.DB.Port = s.Port
	}
	if s.User != "" {
		cfg.DB.User = s.User
	}
	if s.Pass != "" {
		cfg.DB.Password = s.Pass
	}
	if s.Name != "" {
		cfg.DB.DBName = s.Name
	}
	if s.SSL != "" {
		cfg.DB.SSLMode = s.SSL
	}

	if s.MQ_HOST != "" {
		cfg.MQ = s.ToMQConfig(cfg.MQ)
	}
}

// ToMQConfig takes the broker address and credentials from the secret and
// keeps the local transport settings of base.
func (s SecretApp) ToMQConfig(base MQConfig) MQConfig {
	return MQConfig{
		Host:        s.MQ_HOST,
		Port:        s.MQ_PORT,
		User:        s.MQ_USER,
		Password:    s.MQ_PASSWORD,
		VHost:       s.MQ_VHOST,
		TLS:         base.TLS,
		ImportQueue: base.ImportQueue,
	}
}
