package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration, loaded from FLEXRUN_* environment
// variables. All durable state lives in the remote backend; there is nothing
// to configure locally beyond endpoints, deadlines and the capture command.
type Config struct {
	// BackendURL is the automation backend's webhook base.
	BackendURL string `envconfig:"BACKEND_URL" default:"https://n8n-nube-jw30.onrender.com/webhook"`
	// ShareBaseURL is the tester-facing page tests are shared from; used to
	// synthesize links for list rows that lack one.
	ShareBaseURL string `envconfig:"SHARE_BASE_URL" default:"https://agustinafariaschellino.github.io/App-Test-Usabilidad/"`

	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	ListTimeout  time.Duration `envconfig:"LIST_TIMEOUT" default:"5s"`

	// RecorderCommand overrides the audio capture command line. When empty,
	// known capture tools are tried in order.
	RecorderCommand string `envconfig:"RECORDER_COMMAND"`

	ServePort int `envconfig:"SERVE_PORT" default:"8080"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("flexrun", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
