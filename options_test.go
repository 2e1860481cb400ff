package tmpchat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, defaultConfig().Validate())
}

func TestWithMaxClientsIgnoresNonPositive(t *testing.T) {
	cfg := applyConfig([]Option{WithMaxClients(0), WithMaxClients(-5)})
	assert.Equal(t, DefaultMaxClients, cfg.maxClients)
}

func TestWithMaxClientsApplies(t *testing.T) {
	cfg := applyConfig([]Option{WithMaxClients(3)})
	assert.Equal(t, 3, cfg.maxClients)
}

func TestWithTimeoutsIgnoreNonPositive(t *testing.T) {
	cfg := applyConfig([]Option{WithNotSetTimeout(0), WithSetTimeout(-time.Second)})
	assert.Equal(t, DefaultNotSetTimeout, cfg.notSetTimeout)
	assert.Equal(t, DefaultSetTimeout, cfg.setTimeout)
}

func TestWithPingIntervalAllowsZeroToDisable(t *testing.T) {
	cfg := applyConfig([]Option{WithPingInterval(0)})
	assert.Equal(t, time.Duration(0), cfg.pingInterval)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	_, err := NewServer(WithMaxClients(0))
	assert.NoError(t, err, "WithMaxClients(0) is a no-op, not an invalid state")

	_, err = NewServer(func(c *Config) { c.maxClients = -1 })
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
