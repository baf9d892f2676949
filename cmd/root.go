package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wormhole-foundation/worm/pkg/evm"
	"github.com/wormhole-foundation/worm/pkg/submit"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// paths are the files the CLI reads from the user's home directory.
type paths struct {
	configDir  string
	configName string
	envFile    string
}

func cliPaths(home string) paths {
	return paths{
		configDir:  home,
		configName: ".worm",
		envFile:    filepath.Join(home, ".wormhole", ".env"),
	}
}

// evmClient is the part of evm.Client the commands use.
type evmClient interface {
	ParseAndVerifyVM(ctx context.Context, core common.Address, vaaBytes []byte) (bool, string, error)
	CurrentGuardianSet(ctx context.Context, core common.Address) (uint32, []common.Address, error)
	QueryContract(ctx context.Context, chain vaa.ChainID, module vaa.Module, contract common.Address) (*evm.ContractInfo, error)
	Close()
}

// cli holds the state shared by all commands of one invocation.
type cli struct {
	cfgFile  string
	logLevel string
	jsonLogs bool

	v      *viper.Viper
	logger *zap.Logger

	userHomeDir  func() (string, error)
	dialEVM      func(ctx context.Context, rpcURL string, logger *zap.Logger) (evmClient, error)
	newSubmitter func(chain vaa.ChainID, logger *zap.Logger) (submit.Submitter, error)
	wormscanURL  func(network sdk.Network) (string, error)
}

func newCLI() *cli {
	return &cli{
		v:           viper.New(),
		logger:      zap.NewNop(),
		userHomeDir: os.UserHomeDir,
		dialEVM: func(ctx context.Context, rpcURL string, logger *zap.Logger) (evmClient, error) {
			client, err := evm.Dial(ctx, rpcURL, evm.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		newSubmitter: submit.ForChain,
		wormscanURL:  sdk.WormscanURL,
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "worm",
		Short:         "Wormhole VAA toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.worm.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&c.jsonLogs, "json-logs", false, "Log in JSON instead of the console format")

	for _, name := range []string{"log-level", "json-logs"} {
		if err := c.v.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		c.parseCmd(),
		c.recoverCmd(),
		c.editVAACmd(),
		c.verifyVAACmd(),
		c.generateCmd(),
		c.submitCmd(),
		c.chainIDCmd(),
		c.contractCmd(),
		c.rpcCmd(),
		c.evmCmd(),
	)
	return root
}

// initConfig loads ~/.wormhole/.env into the environment, then reads the config file and WORM_ variables.
func (c *cli) initConfig(cmd *cobra.Command) error {
	home, err := c.userHomeDir()
	if err != nil {
		return fmt.Errorf("failed to find home directory: %w", err)
	}
	p := cliPaths(home)

	if err := godotenv.Load(p.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", p.envFile, err)
	}

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.AddConfigPath(p.configDir)
		c.v.SetConfigName(p.configName)
		c.v.SetConfigType("yaml")
	}

	c.v.SetEnvPrefix("WORM")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	readConfig := true
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		readConfig = false
	}

	level, err := zapcore.ParseLevel(c.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	c.logger = newLogger(cmd.ErrOrStderr(), logConfig{
		level:      level,
		json:       c.v.GetBool("json-logs"),
		suppressed: c.v.GetStringSlice("suppress-logs"),
	})

	if readConfig {
		c.logger.Debug("Using config file", zap.String("path", c.v.ConfigFileUsed()))
	}
	return nil
}

// Execute runs the worm command line.
func Execute() {
	if err := newCLI().rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
