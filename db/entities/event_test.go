package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusReceived.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusProcessed.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusRequiresAction.Terminal())
}

func TestStatusReprocessEligible(t *testing.T) {
	assert.True(t, StatusReceived.ReprocessEligible())
	assert.True(t, StatusFailed.ReprocessEligible())
	assert.False(t, StatusProcessing.ReprocessEligible())
	assert.False(t, StatusProcessed.ReprocessEligible())
	assert.False(t, StatusRequiresAction.ReprocessEligible())
}
