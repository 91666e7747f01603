package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"psgdle/internal/di"
	"psgdle/internal/structures"
)

const releaseVersion = "1.0.0"

func newCmd(flags *structures.CliFlags) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PSGDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "psgdle",
		Short:   "Daily football guessing games served over HTTP.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the yaml config file (env: PSGDLE_CONFIG)")
	fs.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging (env: PSGDLE_DEBUG)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.SetVersionTemplate("psgdle v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}

func main() {
	log.SetFlags(0)
	flags := &structures.CliFlags{}
	cobra.CheckErr(newCmd(flags).Execute())
}
