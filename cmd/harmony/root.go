package main

import (
	"fmt"
	"os"

	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "harmony",
	Short: "Generate chord progressions from a description of a mood",
	Long: `harmony turns a short natural language description ("a very dark forest walk",
"sunny day at the beach") into a multi-section chord progression, picks a key
and tempo to match, and writes it as a MIDI file that can be played back
through a software synthesizer.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.harmony.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("corpus", "", "progression corpus JSON (default: embedded)")
	rootCmd.PersistentFlags().String("lexicon", "", "phrase lexicon JSON (default: embedded)")
	rootCmd.PersistentFlags().String("keys", "", "key profile JSON (default: embedded)")
	rootCmd.PersistentFlags().String("sections", "", "section plan YAML (default: embedded)")
	rootCmd.PersistentFlags().Int("bpm-min", 0, "slowest tempo")
	rootCmd.PersistentFlags().Int("bpm-max", 0, "fastest tempo")
	rootCmd.PersistentFlags().String("synth", "", "synthesizer binary used for playback")
	rootCmd.PersistentFlags().String("soundfont", "", "soundfont passed to the synthesizer")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("corpus_path", rootCmd.PersistentFlags().Lookup("corpus"))
	viper.BindPFlag("lexicon_path", rootCmd.PersistentFlags().Lookup("lexicon"))
	viper.BindPFlag("key_profiles_path", rootCmd.PersistentFlags().Lookup("keys"))
	viper.BindPFlag("sections_path", rootCmd.PersistentFlags().Lookup("sections"))
	viper.BindPFlag("bpm_min", rootCmd.PersistentFlags().Lookup("bpm-min"))
	viper.BindPFlag("bpm_max", rootCmd.PersistentFlags().Lookup("bpm-max"))
	viper.BindPFlag("synth_binary", rootCmd.PersistentFlags().Lookup("synth"))
	viper.BindPFlag("soundfont", rootCmd.PersistentFlags().Lookup("soundfont"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(corpusCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".harmony")
	}

	viper.SetEnvPrefix("harmony")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig layers viper settings (flags, HARMONY_* env, config file) over
// the service environment configuration.
func loadConfig() *config.Config {
	cfg := config.Load()
	if v := viper.GetString("corpus_path"); v != "" {
		cfg.CorpusPath = v
	}
	if v := viper.GetString("lexicon_path"); v != "" {
		cfg.LexiconPath = v
	}
	if v := viper.GetString("key_profiles_path"); v != "" {
		cfg.KeyProfilesPath = v
	}
	if v := viper.GetString("sections_path"); v != "" {
		cfg.SectionsPath = v
	}
	if v := viper.GetInt("bpm_min"); v > 0 {
		cfg.MinBPM = v
	}
	if v := viper.GetInt("bpm_max"); v > 0 {
		cfg.MaxBPM = v
	}
	if v := viper.GetString("synth_binary"); v != "" {
		cfg.SynthBinary = v
	}
	if v := viper.GetString("soundfont"); v != "" {
		cfg.SoundFont = v
	}
	return cfg
}

func newComposer(cfg *config.Config) (*services.Composer, error) {
	return services.NewComposerFromConfig(cfg, services.ComposerOptions{})
}
