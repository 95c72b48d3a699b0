package main

import (
	"runtime"
	"strings"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/utils"
	"github.com/NethermindEth/starkhash/validator"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var Version string

const (
	configF          = "config"
	logLevelF        = "log-level"
	colourF          = "colour"
	networkF         = "network"
	chainIDF         = "chain-id"
	outputF          = "output"
	pedersenCacheF   = "pedersen-cache-size"
	concurrencyF     = "concurrency"
	metricsF         = "metrics"
	dumpConfigF      = "dump-config"
	casmHashMethodF  = "casm-hash-method"
	starknetVersionF = "starknet-version"

	defaultConfig        = ""
	defaultLogLevel      = utils.INFO
	defaultColour        = true
	defaultNetwork       = utils.Mainnet
	defaultChainID       = ""
	defaultOutput        = outputText
	defaultPedersenCache = crypto.DefaultPedersenCacheSize
	defaultConcurrency   = 0
	defaultMetrics       = false
	defaultCasmMethod    = crypto.Poseidon

	configFlagUsage   = "The YAML configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error. Debug also traces every hash primitive call."
	colourUsage       = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
	networkUsage      = "Options: mainnet, sepolia, sepolia-integration, goerli, goerli2, integration. " +
		"Selects the chain id transaction hashes are bound to."
	chainIDUsage = "Custom chain id, as a short string such as SN_MAIN or as hex. " +
		"Takes precedence over --network."
	outputUsage        = "Output format. Options: text, json, cbor."
	pedersenCacheUsage = "Number of memoised Pedersen results, 0 disables the cache."
	concurrencyUsage   = "Maximum number of files hashed concurrently, 0 uses GOMAXPROCS."
	metricsUsage       = "Logs the hash metrics gathered while running the command."
	dumpConfigUsage    = "Prints the effective configuration as YAML and exits."
	casmMethodUsage    = "Hash method of the compiled class hash. Options: poseidon, blake2s."
	versionUsage       = "Starknet version the compiled class hash is computed for. " +
		"Selects the hash method instead of --casm-hash-method."
)

const (
	outputText = "text"
	outputJSON = "json"
	outputCBOR = "cbor"
)

type Config struct {
	LogLevel          utils.LogLevel    `mapstructure:"log-level" yaml:"log-level"`
	Colour            bool              `mapstructure:"colour" yaml:"colour"`
	Network           utils.Network     `mapstructure:"network" yaml:"network"`
	ChainID           string            `mapstructure:"chain-id" yaml:"chain-id,omitempty"`
	Output            string            `mapstructure:"output" yaml:"output" validate:"oneof=text json cbor"`
	PedersenCacheSize int               `mapstructure:"pedersen-cache-size" yaml:"pedersen-cache-size" validate:"gte=0"`
	Concurrency       int               `mapstructure:"concurrency" yaml:"concurrency" validate:"gte=0"`
	Metrics           bool              `mapstructure:"metrics" yaml:"metrics"`
	CasmHashMethod    crypto.HashMethod `mapstructure:"casm-hash-method" yaml:"casm-hash-method"`
	StarknetVersion   string            `mapstructure:"starknet-version" yaml:"starknet-version,omitempty"`
}

// app is the state shared by the subcommands once the configuration is loaded.
type app struct {
	cfg      Config
	log      utils.SimpleLogger
	provider crypto.Provider
	chainID  felt.Felt
}

func NewCmd() *cobra.Command {
	a := new(app)

	var (
		cfgFile    string
		dumpConfig bool
		logLevel   = defaultLogLevel
		network    = defaultNetwork
	)

	rootCmd := &cobra.Command{
		Use:           "starkhash [command]",
		Short:         "Starknet hashes and encodings from the command line.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	pf.Var(&logLevel, logLevelF, logLevelFlagUsage)
	pf.Bool(colourF, defaultColour, colourUsage)
	pf.Var(&network, networkF, networkUsage)
	pf.String(chainIDF, defaultChainID, chainIDUsage)
	pf.StringP(outputF, "o", defaultOutput, outputUsage)
	pf.Int(pedersenCacheF, defaultPedersenCache, pedersenCacheUsage)
	pf.Int(concurrencyF, defaultConcurrency, concurrencyUsage)
	pf.Bool(metricsF, defaultMetrics, metricsUsage)
	rootCmd.Flags().BoolVar(&dumpConfig, dumpConfigF, false, dumpConfigUsage)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.load(cmd, cfgFile)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		if a.cfg.Metrics {
			return logMetrics(a.log, prometheus.DefaultGatherer)
		}
		return nil
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if !dumpConfig {
			return cmd.Help()
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(&a.cfg)
	}

	rootCmd.AddCommand(
		txHashCmd(a),
		classHashCmd(a),
		addressCmd(a),
		checksumCmd(a),
		typedDataCmd(a),
		merkleCmd(a),
		hashMethodCmd(a),
		selectorCmd(a),
	)
	return rootCmd
}

// load resolves the configuration with the precedence flag > config file > flag default and
// builds the logger, provider and chain id from it.
func (a *app) load(cmd *cobra.Command, cfgFile string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}
	}

	// Only class-hash declares these flags, the defaults keep the dumped config complete.
	v.SetDefault(casmHashMethodF, defaultCasmMethod.String())
	v.SetDefault(starknetVersionF, "")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := v.Unmarshal(&a.cfg, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())); err != nil {
		return errors.Wrap(err, "decode config")
	}
	if err := validator.Validator().Struct(a.cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if a.cfg.Concurrency == 0 {
		a.cfg.Concurrency = runtime.GOMAXPROCS(0)
	}

	log, err := utils.NewZapLogger(a.cfg.LogLevel, a.cfg.Colour)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	a.log = log

	provider, err := crypto.NewStarkProvider(crypto.WithPedersenCache(a.cfg.PedersenCacheSize))
	if err != nil {
		return err
	}
	a.provider = provider
	if a.cfg.LogLevel == utils.DEBUG {
		a.provider = crypto.NewLoggingProvider(provider, log)
	}

	a.chainID, err = parseChainID(a.cfg.ChainID, a.cfg.Network)
	if err != nil {
		return errors.Wrap(err, "invalid chain id")
	}
	a.log.Debugw("Loaded configuration", "network", a.cfg.Network, "chainID", a.chainID.ShortString())
	return nil
}

func parseChainID(chainID string, network utils.Network) (felt.Felt, error) {
	switch {
	case chainID == "":
		return network.ChainID(), nil
	case strings.HasPrefix(chainID, "0x"), strings.HasPrefix(chainID, "0X"):
		return felt.FromHex(chainID)
	default:
		return felt.FromShortString(chainID)
	}
}

func logMetrics(log utils.SimpleLogger, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "starkhash_") {
			continue
		}
		for _, m := range family.GetMetric() {
			keysAndValues := []any{"value", m.GetCounter().GetValue()}
			for _, label := range m.GetLabel() {
				keysAndValues = append(keysAndValues, label.GetName(), label.GetValue())
			}
			log.Infow(family.GetName(), keysAndValues...)
		}
	}
	return nil
}
