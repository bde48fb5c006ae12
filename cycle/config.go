package cycle

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rmera/swarms"
	"github.com/rmera/swarms/oracle"
	"gopkg.in/yaml.v3"
)

//Config contains everything needed to run cycles of the string method.
type Config struct {
	NVars   int `yaml:"nvars"`
	NImages int `yaml:"nimages"`
	NTraj   int `yaml:"ntraj"`

	//Period of the simulated annealing schedule, in cycles.
	Period float64 `yaml:"period"`
	//Angular lists the (0-based) indexes of the variables that are angles, in degrees.
	Angular []int `yaml:"angular,omitempty"`
	//Abs lists angular variables that are reported as absolute values (polar angles).
	Abs []int `yaml:"abs,omitempty"`
	//Range360 puts angles in [0,360) instead of [-180,180).
	Range360 bool `yaml:"range360,omitempty"`

	Push    PushConfig    `yaml:"push"`
	Resolve ResolveConfig `yaml:"resolve"`
	Oracle  OracleConfig  `yaml:"oracle"`

	Seed int64 `yaml:"seed"`
	//Parallel is the maximum number of swarms run at the same time. 0 means no limit.
	Parallel int `yaml:"parallel"`
	//WorkDir is where the string files are read and written.
	WorkDir string `yaml:"workdir"`
	//Compress writes the strings zstd-compressed.
	Compress bool `yaml:"compress,omitempty"`
	//KeepIntermediates writes the strings of each stage of the cycle, not only the final one.
	KeepIntermediates bool `yaml:"keep_intermediates,omitempty"`
}

//PushConfig configures the push of the string.
type PushConfig struct {
	Disabled   bool    `yaml:"disabled,omitempty"`
	Mode       string  `yaml:"mode"`   //tangent or normal2d
	Policy     string  `yaml:"policy"` //fixed or average
	Multiplier float64 `yaml:"multiplier"`
}

//ResolveConfig configures the removal of knots.
type ResolveConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Policy   string `yaml:"policy"` //monotonic or norevisit
	//Every resolves knots in every cycle, not only in the optimization phase.
	Every bool `yaml:"every,omitempty"`
	//Periodic measures distances taking the angular variables into account.
	Periodic bool `yaml:"periodic,omitempty"`
}

//OracleConfig tells how swarms are obtained.
type OracleConfig struct {
	Kind    string `yaml:"kind"`              //files or command
	Command string `yaml:"command,omitempty"` //only for the command kind
	Retries int    `yaml:"retries,omitempty"`
	Pattern string `yaml:"pattern,omitempty"` //name of the swarm files
}

//DefaultConfig returns a configuration with the values of the original runs of the method,
//except for the sizes (nvars, nimages, ntraj), which must always be given.
func DefaultConfig() *Config {
	return &Config{
		Period:   swarms.DefaultPeriod,
		Push:     PushConfig{Mode: "tangent", Policy: "fixed", Multiplier: 20},
		Resolve:  ResolveConfig{Policy: "monotonic"},
		Oracle:   OracleConfig{Kind: "files", Pattern: oracle.DefaultPattern},
		Seed:     1,
		Parallel: runtime.NumCPU(),
		WorkDir:  ".",
	}
}

//LoadConfig loads the configuration from a YAML file. Values not in the file
//are taken from DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

//SaveConfig saves the configuration to a YAML file
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

//Validate returns an error if the configuration can't be used.
func (c *Config) Validate() error {
	if c.NVars <= 0 {
		return fmt.Errorf("nvars must be positive, got %d", c.NVars)
	}
	if c.NImages < 3 {
		return fmt.Errorf("nimages must be at least 3, got %d", c.NImages)
	}
	if c.NTraj <= 0 {
		return fmt.Errorf("ntraj must be positive, got %d", c.NTraj)
	}
	if err := (swarms.Annealing{Period: c.Period}).Validate(); err != nil {
		return fmt.Errorf("period: %w", err)
	}
	if err := c.AngularVars().Validate(c.NVars); err != nil {
		return fmt.Errorf("angular: %w", err)
	}
	if _, err := swarms.ParsePushMode(c.Push.Mode); err != nil {
		return fmt.Errorf("push.mode: %w", err)
	}
	if _, err := swarms.ParseMultiplierPolicy(c.Push.Policy); err != nil {
		return fmt.Errorf("push.policy: %w", err)
	}
	p, err := swarms.ParsePolicy(c.Resolve.Policy)
	if err != nil {
		return fmt.Errorf("resolve.policy: %w", err)
	}
	if p == swarms.TopKTable {
		return fmt.Errorf("resolve.policy: %s doesn't produce a path", p)
	}
	switch c.Oracle.Kind {
	case "files":
	case "command":
		if c.Oracle.Command == "" {
			return fmt.Errorf("oracle.command is required for the command oracle")
		}
	default:
		return fmt.Errorf("unknown oracle kind %q", c.Oracle.Kind)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel can't be negative")
	}
	return nil
}

//AngularVars returns the descriptor of the periodic variables, or nil if there are none.
func (c *Config) AngularVars() *swarms.Angular {
	if len(c.Angular) == 0 && len(c.Abs) == 0 {
		return nil
	}
	a := swarms.NewAngular(c.Angular...).SetAbs(c.Abs...)
	a.Zero360 = c.Range360
	return a
}

//PushOptions returns the push options for the given cycle. Each cycle gets
//its own seed, derived from the configured one.
func (c *Config) PushOptions(cycle int) (*swarms.PushOptions, error) {
	o := swarms.DefaultPushOptions()
	var err error
	if o.Mode, err = swarms.ParsePushMode(c.Push.Mode); err != nil {
		return nil, err
	}
	if o.Policy, err = swarms.ParseMultiplierPolicy(c.Push.Policy); err != nil {
		return nil, err
	}
	o.Multiplier = c.Push.Multiplier
	o.Annealing = swarms.Annealing{Period: c.Period}
	o.Angular = c.AngularVars()
	o.Seed = c.Seed + int64(cycle)
	return o, nil
}

//Metric returns the distance used to resolve knots.
func (c *Config) Metric() swarms.Metric {
	if c.Resolve.Periodic {
		return swarms.PeriodicMetric(c.AngularVars())
	}
	return swarms.EuclideanMetric
}

//NewOracle builds the oracle described in the configuration.
func (c *Config) NewOracle() (swarms.Oracle, error) {
	files := &oracle.SwarmFiles{Dir: c.WorkDir, NTraj: c.NTraj, Pattern: c.Oracle.Pattern}
	switch c.Oracle.Kind {
	case "files":
		return files, nil
	case "command":
		com := oracle.NewCommand(c.Oracle.Command, files)
		com.SetRetries(c.Oracle.Retries)
		com.SetSeed(c.Seed)
		return com, nil
	}
	return nil, fmt.Errorf("unknown oracle kind %q", c.Oracle.Kind)
}
