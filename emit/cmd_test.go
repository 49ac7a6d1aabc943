package emit

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradimg/gradient"
)

func TestRunDefault(t *testing.T) {
	var out, diag bytes.Buffer
	cmd := CLICmd{
		Width:    gradient.DefaultWidth,
		Height:   gradient.DefaultHeight,
		Progress: true,
		Order:    "bottom-up",
		Stdout:   &out,
		Stderr:   &diag,
	}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	l := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, l, 3+256*256)
	assert.Equal(t, "P3", l[0])
	assert.Equal(t, "256 256", l[1])
	assert.Equal(t, "255", l[2])
	assert.Equal(t, "0 255 63", l[3])
	assert.Equal(t, "255 0 63", l[len(l)-1])

	progress := strings.Split(strings.TrimSuffix(diag.String(), "\n"), "\n")
	require.Len(t, progress, 256)
	assert.Equal(t, "Scanlines remaining: 255", progress[0])
	assert.Equal(t, "Scanlines remaining: 0", progress[255])
	assert.NotContains(t, out.String(), "Scanlines")
}

func TestRunNoProgress(t *testing.T) {
	var out, diag bytes.Buffer
	cmd := CLICmd{Width: 3, Height: 2, Order: "top-down", Stdout: &out, Stderr: &diag}
	require.NoError(t, cmd.Run())

	assert.Empty(t, diag.String())
	assert.Equal(t, "P3\n3 2\n255\n0 0 63\n127 0 63\n255 0 63\n0 255 63\n127 255 63\n255 255 63\n", out.String())
}

func TestValidate(t *testing.T) {
	cmd := CLICmd{Width: 1, Height: 256, Order: "bottom-up"}
	assert.ErrorIs(t, cmd.Validate(nil), gradient.ErrDegenerate)

	cmd = CLICmd{Width: 4, Height: 4, Order: "diagonal"}
	assert.Error(t, cmd.Validate(nil))
}

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRunStreamFailure(t *testing.T) {
	cmd := CLICmd{Width: 128, Height: 128, Order: "bottom-up", Stdout: brokenPipe{}, Stderr: &bytes.Buffer{}}
	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func ExampleCLICmd_Run() {
	var out bytes.Buffer
	cmd := CLICmd{Width: 2, Height: 2, Order: "bottom-up", Stdout: &out}
	if err := cmd.Run(); err != nil {
		return
	}
	fmt.Print(out.String())
	// Output:
	// P3
	// 2 2
	// 255
	// 0 255 63
	// 255 255 63
	// 0 0 63
	// 255 0 63
}
