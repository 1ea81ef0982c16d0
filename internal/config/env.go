package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server holds process settings read from the environment.
type Server struct {
	Port       string `envconfig:"API_PORT" default:"8080"`
	Env        string `envconfig:"API_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ConfigFile string `envconfig:"DEPROP_CONFIG" default:""`
	CurveDir   string `envconfig:"CURVE_DIR" default:"./curves"`
	StaticDir  string `envconfig:"STATIC_DIR" default:"./web/dist"`

	RunTTL       time.Duration `envconfig:"RUN_TTL" default:"1h"`
	SweepWorkers int           `envconfig:"SWEEP_WORKERS" default:"0"`

	EnableResultCache bool          `envconfig:"ENABLE_RESULT_CACHE" default:"true"`
	ResultCacheTTL    time.Duration `envconfig:"RESULT_CACHE_TTL" default:"30m"`
}

func NewServer() (*Server, error) {
	s := new(Server)
	if err := envconfig.Process("", s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Production() bool { return s.Env == "production" }

// Project loads DEPROP_CONFIG when set, the defaults otherwise.
func (s *Server) Project() (*Config, error) {
	if s.ConfigFile == "" {
		return Default(), nil
	}
	return Load(s.ConfigFile)
}
