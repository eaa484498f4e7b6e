package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/nbr"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/notification"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/properties"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/scene"
	"github.com/fire-guardian/fire-guardian-cli-poc/internal/utils"
	"github.com/gammazero/workerpool"
	"github.com/gocarina/gocsv"
	"github.com/schollz/progressbar/v3"
)

func nirTokens() []string {
	if token := properties.NIRBandToken(); token != "" {
		return []string{token}
	}
	return []string{
		scene.SentinelMatchers[0].Token,
		scene.LandsatMatchers[0].Token,
	}
}

// DiscoverScenes lists the scene prefixes under a directory. A scene is
// identified by the presence of its NIR band file; the prefix is the
// filename with the band token stripped.
func DiscoverScenes(scenesRoot string) ([]string, error) {
	entries, err := os.ReadDir(scenesRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes directory %s: %w", scenesRoot, err)
	}

	prefixes := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, token := range nirTokens() {
			if strings.HasSuffix(entry.Name(), token) {
				prefix := strings.TrimSuffix(entry.Name(), token)
				prefixes[filepath.Join(scenesRoot, prefix)] = struct{}{}
			}
		}
	}

	return utils.GetSortedKeys(prefixes), nil
}

// EvaluateBatch evaluates every scene found under scenesRoot, writing the
// NBR rasters and side outputs into outputDir plus a report.csv of the
// per-scene summaries. Scenes are independent: one failure does not stop
// the others, but any failure makes the batch return an error.
func EvaluateBatch(scenesRoot, outputDir string) ([]nbr.Summary, error) {
	scenes, err := DiscoverScenes(scenesRoot)
	if err != nil {
		return nil, err
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("no scenes found under %s", scenesRoot)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	var (
		mu          sync.Mutex
		summaries   []nbr.Summary
		failures    []string
		progressBar = progressbar.Default(int64(len(scenes)), "Evaluating scenes")
	)

	wp := workerpool.New(properties.BatchWorkers())
	for _, scenePath := range scenes {
		sp := scenePath
		wp.Submit(func() {
			outputPath := filepath.Join(outputDir, filepath.Base(sp)+"_nbr.tif")

			summary, cached := CachedSummary(sp, outputPath)
			if !cached {
				var err error
				summary, err = EvaluateScene(sp, outputPath)
				if err != nil {
					mu.Lock()
					failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(sp), err))
					progressBar.Add(1)
					mu.Unlock()
					return
				}
			}

			mu.Lock()
			summaries = append(summaries, summary)
			progressBar.Add(1)
			mu.Unlock()
		})
	}
	wp.StopWait()
	progressBar.Finish()

	bySceneName := make(map[string]nbr.Summary, len(summaries))
	for _, summary := range summaries {
		bySceneName[summary.Scene] = summary
	}
	sorted := make([]nbr.Summary, 0, len(summaries))
	for _, name := range utils.GetSortedKeys(bySceneName) {
		sorted = append(sorted, bySceneName[name])
	}

	if len(sorted) > 0 {
		if err := writeReport(sorted, filepath.Join(outputDir, "report.csv")); err != nil {
			return nil, err
		}
	}

	if len(failures) > 0 {
		notifyError(fmt.Sprintf("Batch finished with %d/%d failed scenes:\n%s",
			len(failures), len(scenes), strings.Join(failures, "\n")))
		return sorted, fmt.Errorf("%d of %d scenes failed: %s", len(failures), len(scenes), strings.Join(failures, "; "))
	}

	notifySuccess(fmt.Sprintf("Evaluated %d scenes.\nReport: %s", len(scenes), filepath.Join(outputDir, "report.csv")))
	return sorted, nil
}

func writeReport(summaries []nbr.Summary, reportPath string) error {
	file, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&summaries, file); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Report with %d rows successfully saved to %s.\n", len(summaries), reportPath)
	return nil
}

func notifySuccess(message string) {
	if properties.DiscordSuccessNotificationUrl() == "" {
		return
	}
	if err := notification.SendDiscordSuccessNotification(message); err != nil {
		fmt.Printf("Failed to send notification: %v\n", err)
	}
}

func notifyError(message string) {
	if properties.DiscordErrorNotificationUrl() == "" {
		return
	}
	if err := notification.SendDiscordErrorNotification(message); err != nil {
		fmt.Printf("Failed to send notification: %v\n", err)
	}
}
