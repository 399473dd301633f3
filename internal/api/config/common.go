package config

// Config 配置主体
type Config struct {
	Server                  ServerConfig            `mapstructure:"server"`
	DB                      DBConfig                `mapstructure:"database"`
	Redis                   RedisConfig             `mapstructure:"redis"`
	MinIO                   MinIOConfig             `mapstructure:"minio"`
	Mail                    MailConfig              `mapstructure:"mail"`
	Logstash                LogstashConfig          `mapstructure:"logstash"`
	Kafka                   KafkaConfig             `mapstructure:"kafka"`
	KafkaEngagementConsumer KafkaEngagementConsumer `mapstructure:"kafka_engagement_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// MailConfig 邮件网关配置（OTP 验证码投递）
type MailConfig struct {
	URL    string `mapstructure:"url"`
	ApiKey string `mapstructure:"api_key"`
	Sender string `mapstructure:"sender"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
	Producer ProducerConfig `mapstructure:"producer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type ProducerConfig struct {
	Topic string `mapstructure:"topic"`
}

type KafkaEngagementConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
