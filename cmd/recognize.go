package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kozaktomas/face-kiosk/internal/config"
	"github.com/kozaktomas/face-kiosk/internal/imaging"
	"github.com/kozaktomas/face-kiosk/internal/vision"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image-file>",
	Short: "Recognize faces in an image file",
	Long: `Submit a single image to the vision service and print the detected
faces with their matched names and confidence scores.

Example:
  face-kiosk recognize /path/to/frame.jpg --threshold 70`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().Float64("threshold", 0, "Recognition threshold (0 uses the upstream default)")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	path := args[0]
	thresholdFlag := mustGetFloat64(cmd, "threshold")

	cfg := config.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	resized, err := imaging.FitHeight(data, cfg.Capture.MaxFrameHeight)
	if err != nil {
		return fmt.Errorf("cannot process %s: %w", path, err)
	}
	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resized)

	client, err := vision.NewClient(cfg.Upstream.URL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to configure vision service client: %w", err)
	}

	var threshold *float64
	if thresholdFlag > 0 {
		threshold = &thresholdFlag
	}

	resp, err := client.Recognize(encoded, threshold)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	if len(resp.Result) == 0 {
		fmt.Println("No faces detected.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCONFIDENCE\tRECT")
	fmt.Fprintln(w, "----\t----------\t----")
	for _, det := range resp.Result {
		confidence := "-"
		if det.Confidence != nil {
			confidence = fmt.Sprintf("%.1f", *det.Confidence)
		}
		fmt.Fprintf(w, "%s\t%s\t%d,%d %dx%d\n",
			det.Name, confidence, det.Rect[0], det.Rect[1], det.Rect[2], det.Rect[3])
	}
	return w.Flush()
}
