package abce

import (
	"errors"
	"fmt"
	"os"

	"github.com/wenchichenginl/HERON/core/logger"
)

// EnvInstallDir is the environment variable consulted when no module
// location is configured. It conventionally points at the ABCE install.
const EnvInstallDir = "ABCE_DIR"

// ErrLocationMissing is returned when neither the settings nor the
// environment say where the ABCE module lives.
var ErrLocationMissing = errors.New("abce module location not configured and " + EnvInstallDir + " environment variable not set")

// LookupEnv is the environment access used for the install-dir fallback.
// It matches os.LookupEnv; tests inject their own.
type LookupEnv func(key string) (string, bool)

// Settings configures the ABCE adapter. The JSON keys are the knob names
// ABCE modules already understand; the whole record is forwarded to the
// module inside the dispatch meta.
type Settings struct {
	// Location is the path of the module file, absolute or relative to the
	// case run directory. When empty, EnvInstallDir supplies it.
	Location string `json:"location,omitempty"`
	// SettingsFile points at the module's own settings file, if it has one.
	SettingsFile string `json:"settings_file,omitempty"`
	// InputsPath points at the module's input data.
	InputsPath       string  `json:"inputs_path,omitempty"`
	NumDispatchYears int     `json:"num_dispatch_years,omitempty"`
	NumRepDays       int     `json:"num_repdays,omitempty"`
	HistWeight       float64 `json:"hist_wt,omitempty"`
	HistDecay        float64 `json:"hist_decay,omitempty"`
	// AgentOpt tunes the module's agent optimization.
	AgentOpt AgentOptSettings `json:"agent_opt"`
}

// AgentOptSettings are the agent optimization knobs. Key spellings follow
// what ABCE modules expect, including the historical "lamda" ones.
type AgentOptSettings struct {
	ConsiderFutureProjects      bool    `json:"consider_future_projects,omitempty"`
	NumFuturePeriodsConsidered  int     `json:"num_future_periods_considered,omitempty"`
	MaxTypeRetirementsPerPeriod int     `json:"max_type_rets_per_pd,omitempty"`
	MaxTypeNewBuildsPerPeriod   int     `json:"max_type_newbuilds_per_pd,omitempty"`
	ShortageProtectionPeriod    int     `json:"shortage_protection_period,omitempty"`
	CapDecreaseThreshold        float64 `json:"cap_decrease_threshold,omitempty"`
	CapDecreaseMargin           float64 `json:"cap_decrease_margin,omitempty"`
	CapMaintainThreshold        float64 `json:"cap_maintain_threshold,omitempty"`
	CapMaintainMargin           float64 `json:"cap_maintain_margin,omitempty"`
	CapIncreaseMargin           float64 `json:"cap_increase_margin,omitempty"`
	ProfitLambda                float64 `json:"profit_lamda,omitempty"`
	CreditRatingLambda          float64 `json:"credit_rating_lamda,omitempty"`
	CreditRatingHorizon         float64 `json:"cr_horizon,omitempty"`
	InterestBound               float64 `json:"int_bound,omitempty"`
}

// ResolveLocation fills Location from the environment when it is not
// configured. lookup defaults to os.LookupEnv.
func (s *Settings) ResolveLocation(lookup LookupEnv, log logger.Logger) error {
	if s.Location != "" {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	dir, ok := lookup(EnvInstallDir)
	if !ok || dir == "" {
		return ErrLocationMissing
	}
	s.Location = dir
	log.Infof("%s found at %s", EnvInstallDir, dir)
	return nil
}

// Validate checks knobs that would only fail deep inside a module run.
func (s Settings) Validate() error {
	if s.NumDispatchYears < 0 {
		return fmt.Errorf("num_dispatch_years must not be negative, got %d", s.NumDispatchYears)
	}
	if s.NumRepDays < 0 {
		return fmt.Errorf("num_repdays must not be negative, got %d", s.NumRepDays)
	}
	if s.HistWeight < 0 || s.HistWeight > 1 {
		return fmt.Errorf("hist_wt must be in [0, 1], got %v", s.HistWeight)
	}
	return nil
}
