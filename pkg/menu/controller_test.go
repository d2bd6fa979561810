package menu

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolkit/pkg/exec"
	"toolkit/pkg/prompt"
	"toolkit/pkg/registry"
)

type runCall struct {
	script  exec.Script
	inputs  *registry.InputMap
	timeout time.Duration
}

type fakeRunner struct {
	calls  []runCall
	result exec.RunResult
}

func (f *fakeRunner) Run(_ context.Context, script exec.Script, inputs *registry.InputMap, timeout time.Duration) exec.RunResult {
	f.calls = append(f.calls, runCall{script: script, inputs: inputs, timeout: timeout})
	return f.result
}

func newTestController(t *testing.T, in io.Reader, runner ToolRunner, opts ...Option) (*Controller, *bytes.Buffer) {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	var out bytes.Buffer
	opts = append([]Option{WithErrorPause(0)}, opts...)
	return NewController(reg, prompt.NewConsole(in, &out), runner, opts...), &out
}

const fileProcessorAnswers = "/tmp/in\n/tmp/out\nrename\n*.txt\nn\n"

func TestExitSelection(t *testing.T) {
	runner := &fakeRunner{}
	c, out := newTestController(t, strings.NewReader("0\n"), runner)

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, Exiting, c.State())
	assert.Empty(t, runner.calls)
	text := out.String()
	assert.Contains(t, text, "[0] Exit")
	assert.Contains(t, text, "🎯 Select a tool (0-5): ")
	assert.Contains(t, text, "👋 Thanks for using the Automation Toolkit!")
	assert.Contains(t, text, "🚀 Keep automating and stay productive!")
}

func TestMenuListsToolsInOrder(t *testing.T) {
	c, out := newTestController(t, strings.NewReader("0\n"), &fakeRunner{})
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	last := -1
	for _, line := range []string{
		" [1] File Batch Processor",
		"     └─ Process multiple files with custom operations",
		" [2] Data Report Generator",
		" [3] Email Campaign Manager",
		" [4] System Monitor",
		" [5] Database Backup",
		" [0] Exit",
	} {
		idx := strings.Index(text, line)
		require.GreaterOrEqual(t, idx, 0, "missing %q", line)
		assert.Greater(t, idx, last, "%q out of order", line)
		last = idx
	}
}

func TestOutOfRangeSelectionLaunchesNothing(t *testing.T) {
	runner := &fakeRunner{}
	c, out := newTestController(t, strings.NewReader("99\n-1\n0\n"), runner)

	require.NoError(t, c.Run(context.Background()))

	assert.Empty(t, runner.calls)
	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "❌ Invalid selection! Please choose 0-5."))
	assert.Equal(t, 3, strings.Count(text, "[0] Exit"))
	assert.NotContains(t, text, "Configuring")
}

func TestNonNumericSelection(t *testing.T) {
	runner := &fakeRunner{}
	c, out := newTestController(t, strings.NewReader("abc\n\n0\n"), runner)

	require.NoError(t, c.Run(context.Background()))

	assert.Empty(t, runner.calls)
	assert.Equal(t, 2, strings.Count(out.String(), "❌ Please enter a valid number!"))
}

func TestDeclinedConfirmationLaunchesNothing(t *testing.T) {
	for _, answer := range []string{"n", "no", "", "maybe", "yess"} {
		t.Run(answer, func(t *testing.T) {
			runner := &fakeRunner{}
			input := "1\n" + fileProcessorAnswers + answer + "\n\n0\n"
			c, out := newTestController(t, strings.NewReader(input), runner)

			require.NoError(t, c.Run(context.Background()))

			assert.Empty(t, runner.calls)
			text := out.String()
			assert.Contains(t, text, "❌ Execution cancelled.")
			assert.Contains(t, text, "⏎ Press Enter to continue...")
		})
	}
}

func TestConfirmedRunRendersSuccess(t *testing.T) {
	runner := &fakeRunner{result: exec.RunResult{
		Outcome:  exec.Success,
		Duration: 1500 * time.Millisecond,
		Stdout:   "Processed 1 files",
	}}
	input := "1\n" + fileProcessorAnswers + "YES\n\n0\n"
	c, out := newTestController(t, strings.NewReader(input), runner, WithTimeout(time.Minute))

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "file_processor", call.script.Ref)
	assert.Equal(t, "File Batch Processor", call.script.Name)
	assert.Equal(t, time.Minute, call.timeout)
	assert.Equal(t, []string{"source_folder", "output_folder", "operation", "pattern", "recursive"}, call.inputs.Keys())
	recursive, _ := call.inputs.Get("recursive")
	assert.Equal(t, false, recursive)

	text := out.String()
	assert.Contains(t, text, "📊 Configuration Summary:")
	assert.Contains(t, text, "   source_folder: /tmp/in\n")
	assert.Contains(t, text, "   recursive: false\n")
	assert.Contains(t, text, "🚀 Executing: File Batch Processor")
	assert.Contains(t, text, "✅ Success! Completed in 1.50 seconds")
	assert.Contains(t, text, "📄 Output:\nProcessed 1 files\n")
	assert.Equal(t, 2, strings.Count(text, "[0] Exit"))
}

func TestDefaultTimeoutIsFiveMinutes(t *testing.T) {
	runner := &fakeRunner{result: exec.RunResult{Outcome: exec.Success}}
	input := "4\ncpu\n90\n1\ny\n\n0\n"
	c, _ := newTestController(t, strings.NewReader(input), runner)

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, 300*time.Second, runner.calls[0].timeout)
	threshold, _ := runner.calls[0].inputs.Get("threshold")
	assert.Equal(t, 90.0, threshold)
}

func TestRenderOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		result exec.RunResult
		want   []string
	}{
		{
			name:   "non zero exit",
			result: exec.RunResult{Outcome: exec.NonZeroExit, ExitCode: 3, Stderr: "disk on fire"},
			want:   []string{"❌ Error (Exit code: 3)", "🔍 Error details:\ndisk on fire\n"},
		},
		{
			name:   "timed out",
			result: exec.RunResult{Outcome: exec.TimedOut, Reason: "timed out after 5m0s"},
			want:   []string{"⏰ Script execution timed out (5 minutes)"},
		},
		{
			name: "placeholder",
			result: exec.RunResult{
				Outcome:            exec.LaunchFailed,
				ScriptPath:         "tools/file_processor",
				PlaceholderCreated: true,
				Reason:             exec.ReasonPlaceholderCreated,
			},
			want: []string{"⚠️  Script not found: tools/file_processor", "📝 Created placeholder: tools/file_processor"},
		},
		{
			name:   "launch failure",
			result: exec.RunResult{Outcome: exec.LaunchFailed, Reason: "permission denied"},
			want:   []string{"💥 Execution failed: permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: tt.result}
			input := "1\n" + fileProcessorAnswers + "y\n\n0\n"
			c, out := newTestController(t, strings.NewReader(input), runner)

			require.NoError(t, c.Run(context.Background()))

			require.Len(t, runner.calls, 1)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestEndOfInputExits(t *testing.T) {
	for name, input := range map[string]string{
		"at selection":    "",
		"while collecting": "1\n/tmp/in\n",
		"at confirmation":  "1\n" + fileProcessorAnswers,
	} {
		t.Run(name, func(t *testing.T) {
			runner := &fakeRunner{}
			c, out := newTestController(t, strings.NewReader(input), runner)

			require.NoError(t, c.Run(context.Background()))

			assert.Empty(t, runner.calls)
			assert.Equal(t, Exiting, c.State())
			assert.Contains(t, out.String(), "👋 Goodbye!")
		})
	}
}

func TestInterruptWhileWaitingForSelection(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	runner := &fakeRunner{}
	c, out := newTestController(t, pr, runner)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not exit after interrupt")
	}
	assert.Empty(t, runner.calls)
	assert.Contains(t, out.String(), "👋 Goodbye!")
	assert.NotContains(t, out.String(), "Thanks for using")
}

func TestInterruptDuringErrorPause(t *testing.T) {
	runner := &fakeRunner{}
	c, out := newTestController(t, strings.NewReader("x\n"), runner, WithErrorPause(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	require.NoError(t, c.Run(ctx))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, out.String(), "👋 Goodbye!")
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "AWAITING_SELECTION", AwaitingSelection.String())
	assert.Equal(t, "EXITING", Exiting.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestFormatTimeout(t *testing.T) {
	assert.Equal(t, "5 minutes", formatTimeout(300*time.Second))
	assert.Equal(t, "1 minute", formatTimeout(time.Minute))
	assert.Equal(t, "90 seconds", formatTimeout(90*time.Second))
	assert.Equal(t, "1.5s", formatTimeout(1500*time.Millisecond))
}
