package battery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "<1m", FormatDuration(0))
	assert.Equal(t, "<1m", FormatDuration(59*time.Second))
	assert.Equal(t, "1m", FormatDuration(90*time.Second))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "1h 0m", FormatDuration(time.Hour))
	assert.Equal(t, "1h 24m", FormatDuration(time.Hour+24*time.Minute))
	assert.Equal(t, "12h 1m", FormatDuration(12*time.Hour+90*time.Second))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "57%", FormatRemaining(0, 57.0))
	assert.Equal(t, "100%", FormatRemaining(0, 99.6))
	assert.Equal(t, "1h 24m until empty (57%)", FormatRemaining(time.Hour+24*time.Minute, 57.0))
	assert.Equal(t, "45m until empty (20%)", FormatRemaining(45*time.Minute, 20.4))
}
