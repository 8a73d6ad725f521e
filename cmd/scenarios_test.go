package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosCommandListsBundles(t *testing.T) {
	cmd := newScenariosCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	listing := out.String()
	assert.Contains(t, listing, "Net Zero 2050")
	assert.Contains(t, listing, "Global Instability")
	assert.Contains(t, listing, "carbon price: $250/ton")
}
