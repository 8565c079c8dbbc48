package config

import (
	"time"
)

type DB struct {
	Url          string `envconfig:"URL"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt          *Jwt `envconfig:"JWT"`
	PasswordCost int  `envconfig:"PASSWORD_COST" default:"12"`
}

type Redis struct {
	URL       string `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:""`
	Group     string `envconfig:"GROUP" default:"ledger"`
}

type Kafka struct {
	Brokers     string `envconfig:"BROKERS" default:"localhost:9092"`
	GroupID     string `envconfig:"GROUP_ID" default:"ledger"`
	TopicPrefix string `envconfig:"TOPIC_PREFIX" default:"ledger.events"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"` // memory | redis | kafka
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Ledger struct {
	// OperationTimeout bounds lock waits and store calls of one balance operation.
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"5s"`
}

// Admin describes the predefined administrator created at startup.
// Bootstrap is skipped when Phone or Password is empty.
type Admin struct {
	Name     string `envconfig:"NAME" default:"Administrator"`
	Phone    string `envconfig:"PHONE"`
	Aadhaar  string `envconfig:"AADHAAR" default:"000000000000"`
	Password string `envconfig:"PASSWORD"`
}

type Cors struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
	EventBus  *EventBus  `envconfig:"EVENTBUS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
	Admin     *Admin     `envconfig:"ADMIN"`
	Cors      *Cors      `envconfig:"CORS"`
}
