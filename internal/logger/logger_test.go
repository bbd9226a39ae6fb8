package logger_test

import (
	"testing"

	"github.com/planify/planify/internal/logger"
)

func Test_New_BuildsBothModes(t *testing.T) {
	t.Parallel()

	for _, development := range []bool{true, false} {
		log, err := logger.New(development)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", development, err)
		}
		if log == nil {
			t.Fatalf("New(%v) returned nil logger", development)
		}
		log.Debug("probe")
	}
}
