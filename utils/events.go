package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/analytics-go"
)

func getContext() *analytics.Context {
	version := "local"
	if build, ok := debug.ReadBuildInfo(); ok && strings.TrimSpace(build.Main.Version) != "" {
		version = strings.TrimSpace(build.Main.Version)
	}

	timezone, _ := time.Now().Zone()
	locale := os.Getenv("LANG")

	return &analytics.Context{
		App: analytics.AppInfo{
			Name:    "lakeload",
			Version: version,
		},
		Location: analytics.LocationInfo{},
		OS: analytics.OSInfo{
			Name: fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
		},
		Locale:   locale,
		Timezone: timezone,
	}
}

func getUserId() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	lakeDir := filepath.Join(home, ".lakeload")
	if _, err = os.Stat(lakeDir); os.IsNotExist(err) {
		if err := os.Mkdir(lakeDir, 0o755); err != nil {
			return "", err
		}
	}

	userId := uuid.New().String()

	idFile := filepath.Join(lakeDir, "id")
	if _, err = os.Stat(idFile); os.IsNotExist(err) {
		if err := os.WriteFile(idFile, []byte(userId), 0o755); err != nil {
			return "", err
		}
	} else {
		data, err := os.ReadFile(idFile)
		if err != nil {
			return "", err
		}
		userId = string(data)
	}

	return userId, nil
}

func TrackEvent(telemetry Telemetry, event string, properties analytics.Properties) {
	if !telemetry.Enabled || telemetry.WriteKey == "" {
		return
	}

	userId, err := getUserId()
	if err != nil {
		logger.Debug().Str("err", err.Error()).Msg("failed to resolve telemetry user id")
		return
	}

	client := analytics.New(telemetry.WriteKey)
	defer client.Close()

	err = client.Enqueue(analytics.Track{
		UserId:     userId,
		Event:      event,
		Properties: properties,
		Context:    getContext(),
	})
	if err != nil {
		logger.Debug().Str("err", err.Error()).Msg("failed to enqueue telemetry event")
	}
}
