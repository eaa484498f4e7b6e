package scene

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fire-guardian/fire-guardian-cli-poc/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"
)

// DownloadScene fetches the two band files of a scene from the configured
// COG archive into destDir and returns the local scene prefix. The archive
// is expected to serve band files at <archive-url>/<sceneID><band-token>.
func DownloadScene(ctx context.Context, sceneID, destDir string) (string, error) {
	archiveURL := properties.ArchiveURL()
	clientID := properties.ArchiveClientID()
	clientSecret := properties.ArchiveClientSecret()
	tokenURL := properties.ArchiveTokenURL()

	if archiveURL == "" || clientID == "" || clientSecret == "" || tokenURL == "" {
		return "", fmt.Errorf("missing required environment variables: FIRE_GUARDIAN_ARCHIVE_URL, FIRE_GUARDIAN_ARCHIVE_CLIENT_ID, FIRE_GUARDIAN_ARCHIVE_CLIENT_SECRET, or FIRE_GUARDIAN_ARCHIVE_TOKEN_URL")
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(ctx)

	group, ctx := errgroup.WithContext(ctx)
	for _, matcher := range MatchersFor(sceneID) {
		fileName := sceneID + matcher.Token
		group.Go(func() error {
			url := strings.TrimSuffix(archiveURL, "/") + "/" + fileName
			return downloadFile(ctx, httpClient, url, filepath.Join(destDir, fileName))
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	return filepath.Join(destDir, sceneID), nil
}

func downloadFile(ctx context.Context, client *http.Client, url, destPath string) error {
	retries := 3
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if err := fetchOnce(ctx, client, url, destPath); err != nil {
			lastErr = err
			fmt.Printf("Attempt %d to fetch %s failed: %v\n", attempt, url, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to download %s after %d attempts: %w", url, retries, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	response, err := client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return fmt.Errorf("unexpected status %d: %s", response.StatusCode, string(body))
	}

	tmpPath := destPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, response.Body); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, destPath)
}
