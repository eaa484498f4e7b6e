package properties

import (
	"os"
	"strconv"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// DefaultNoDataValue marks output pixels with no valid measurement. It is
// burned into the no-data tag of every published NBR raster, so keep
// overrides consistent across a processing campaign.
const DefaultNoDataValue = -9999.0

func NoDataValue() float64 {
	if raw := os.Getenv("FIRE_GUARDIAN_NODATA_VALUE"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return value
		}
	}
	return DefaultNoDataValue
}

// BurnThreshold is the NBR value below which a pixel is counted as burned
// in the summary report.
func BurnThreshold() float64 {
	if raw := os.Getenv("FIRE_GUARDIAN_BURN_THRESHOLD"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return value
		}
	}
	return 0.1
}

func NIRBandToken() string {
	return os.Getenv("FIRE_GUARDIAN_NIR_BAND_TOKEN")
}

func SWIRBandToken() string {
	return os.Getenv("FIRE_GUARDIAN_SWIR_BAND_TOKEN")
}

func BatchWorkers() int {
	if raw := os.Getenv("FIRE_GUARDIAN_BATCH_WORKERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			return value
		}
	}
	return 4
}

func ArchiveURL() string {
	return os.Getenv("FIRE_GUARDIAN_ARCHIVE_URL")
}

func ArchiveClientID() string {
	return os.Getenv("FIRE_GUARDIAN_ARCHIVE_CLIENT_ID")
}

func ArchiveClientSecret() string {
	return os.Getenv("FIRE_GUARDIAN_ARCHIVE_CLIENT_SECRET")
}

func ArchiveTokenURL() string {
	return os.Getenv("FIRE_GUARDIAN_ARCHIVE_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
