package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/dabtools/dabrowse/internal/utils"
	"github.com/dabtools/dabrowse/pkg/api"
)

var cfgFile string

const defaultServer = "https://dearrow.ajay.app"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dabrowse",
	Short: "Browse crowd-sourced DeArrow titles and thumbnails from your terminal.",
	Long: `dabrowse lets you browse crowd-sourced video metadata submissions
(alternate titles and thumbnails) from a DeArrow-compatible server,
globally, per video, or per submitting user.

Use the browse subcommand for the interactive browser, or the titles,
thumbnails and status subcommands for one-shot output.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dabrowse.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("server", "s", "", "DeArrow-compatible server URL (default "+defaultServer+")")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".dabrowse")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.dabrowse.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	viper.SetDefault("server.url", defaultServer)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// serverOrigin resolves the configured server into an Origin, preferring the
// --server flag over the config file.
func serverOrigin() (*api.Origin, error) {
	server, _ := rootCmd.PersistentFlags().GetString("server")
	if server == "" {
		server = viper.GetString("server.url")
	}
	if server == "" {
		server = defaultServer
	}
	return api.NewOrigin(server)
}
