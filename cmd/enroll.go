package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kozaktomas/face-kiosk/internal/config"
	"github.com/kozaktomas/face-kiosk/internal/imaging"
	"github.com/kozaktomas/face-kiosk/internal/vision"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <name> <folder-path>",
	Short: "Enroll a person from a folder of face images",
	Long: `Enroll a person by submitting every image in a folder to the vision
service. Images are downscaled to the same maximum frame height the browser
uses before they are uploaded. The vision service retrains itself after the
batch is saved.

Supported formats: jpg, jpeg, png, bmp

Example:
  face-kiosk enroll "Ada Lovelace" /path/to/ada-photos`,
	Args: cobra.ExactArgs(2),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().Bool("train", false, "Trigger an explicit retrain after enrolling")
}

// isImageFile checks if a file has a supported image extension
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".bmp":  true,
	}
	return supported[ext]
}

func runEnroll(cmd *cobra.Command, args []string) error {
	name := args[0]
	folderPath := args[1]
	train := mustGetBool(cmd, "train")

	cfg := config.Load()

	info, err := os.Stat(folderPath)
	if err != nil {
		return fmt.Errorf("cannot access folder %s: %w", folderPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", folderPath)
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return fmt.Errorf("cannot read folder %s: %w", folderPath, err)
	}

	var filePaths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			filePaths = append(filePaths, filepath.Join(folderPath, entry.Name()))
		}
	}

	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folder.")
		return nil
	}

	fmt.Printf("Found %d image(s) to enroll for %q\n", len(filePaths), name)

	bar := progressbar.Default(int64(len(filePaths)), "preparing")
	var images []string
	for _, path := range filePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		resized, err := imaging.FitHeight(data, cfg.Capture.MaxFrameHeight)
		if err != nil {
			return fmt.Errorf("cannot process %s: %w", path, err)
		}
		images = append(images, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(resized))
		bar.Add(1)
	}

	client, err := vision.NewClient(cfg.Upstream.URL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to configure vision service client: %w", err)
	}

	resp, err := client.Register(name, images)
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}
	fmt.Printf("Enrolled %q with %d sample(s).\n", name, len(resp.Saved))

	if train {
		trained, err := client.Train()
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		fmt.Printf("Model retrained on %d sample(s).\n", trained.Samples)
	}

	return nil
}
