package app

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closedPipe struct{}

func (closedPipe) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestEveryCommandHasASummary(t *testing.T) {
	var out bytes.Buffer
	overview(&out)
	for _, n := range names() {
		assert.NotEmpty(t, commands[n].summary, n)
		assert.Contains(t, out.String(), "  "+n+" ")
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, errB bytes.Buffer
	assert.Equal(t, 2, Run([]string{"optimize"}, &out, &errB))
	assert.Contains(t, errB.String(), `"optimize"`)
	assert.True(t, strings.HasPrefix(out.String(), "popstats"))
}

func TestHelpForUnknownCommand(t *testing.T) {
	var out, errB bytes.Buffer
	assert.Equal(t, 2, Run([]string{"help", "grid"}, &out, &errB))
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, Run([]string{"--version"}, &out, io.Discard))
	assert.True(t, strings.HasPrefix(out.String(), "popstats version "))
}

func TestClosedStdoutIsNotAnError(t *testing.T) {
	var errB bytes.Buffer
	assert.Equal(t, 0, Run([]string{"help", "point"}, closedPipe{}, &errB))
	assert.Empty(t, errB.String())
}
