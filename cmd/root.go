package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-kiosk",
	Short: "A face registration and recognition kiosk",
	Long: `Face Kiosk serves a browser-based face registration and recognition
demo. It keeps a local person registry in a JSON file and relays camera
frames to an external vision service that does the actual detection and
recognition.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
