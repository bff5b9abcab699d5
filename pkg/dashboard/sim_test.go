package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescoui/fresco/pkg/render/sim"
)

// The sim renderer routes frames through the real tcell conversion
// path, so this covers the loop end to end: engine render, draw, flush,
// input decoding and quit.
func TestRuntimeOverSimulatedTerminal(t *testing.T) {
	r, err := sim.New(40, 10)
	require.NoError(t, err)
	rt, _, _ := newLoadedRuntime(t, r)

	done := make(chan error, 1)
	go func() { done <- rt.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for !r.ContainsText("version one") {
		select {
		case <-deadline:
			t.Fatal("frame never reached the simulated screen")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Capture before quitting: Cleanup finalizes the screen.
	assert.Contains(t, r.Capture(), "version one")

	r.InjectKeys("q")
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-deadline:
		t.Fatal("quit key did not stop the loop")
	}
}
