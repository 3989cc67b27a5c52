package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/releasebot/releasebot"
)

const (
	version = "0.1.0"
)

var (
	showVersion bool
	cfgFile     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file of releasebot")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "version of releasebot")
}

var rootCmd = &cobra.Command{
	Use:   "releasebot",
	Short: "releasebot is a github release automation robot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println(version)
			return nil
		}

		content, err := ioutil.ReadFile(cfgFile)
		if err != nil {
			fmt.Println(err)
			return nil
		}

		cfg := releasebot.Config{}
		err = json.Unmarshal(content, &cfg)
		if err != nil {
			fmt.Printf("parse config file error: %v\n", err)
			return nil
		}

		svc, err := releasebot.NewService(cfg)
		if err != nil {
			fmt.Println(err)
			return nil
		}

		return svc.Run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
