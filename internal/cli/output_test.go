package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	"github.com/alexeev-prog/fib-miles2km/internal/convert/mocks"
	"github.com/alexeev-prog/fib-miles2km/internal/service"
)

func TestDisplayFibResult_Format(t *testing.T) {
	var buf bytes.Buffer
	DisplayFibResult(&buf, 10, 89)
	if got, want := buf.String(), "10 miles = 89 km (using Fibonacci)\n"; got != want {
		t.Errorf("DisplayFibResult output = %q, want %q", got, want)
	}
}

func TestDisplayResult_Format(t *testing.T) {
	var buf bytes.Buffer
	DisplayResult(&buf, 10, 16.2)
	if got, want := buf.String(), "10.00 miles = 16.20 km\n"; got != want {
		t.Errorf("DisplayResult output = %q, want %q", got, want)
	}
}

func TestDisplayQuietResult_Format(t *testing.T) {
	var buf bytes.Buffer
	DisplayQuietResult(&buf, 1.609344)
	if got, want := buf.String(), "1.61\n"; got != want {
		t.Errorf("DisplayQuietResult output = %q, want %q", got, want)
	}
}

func TestDisplayJSONResult(t *testing.T) {
	var buf bytes.Buffer
	res := service.Result{Miles: 10, Km: 16.2, Strategy: "walk"}
	if err := DisplayJSONResult(&buf, res); err != nil {
		t.Fatalf("DisplayJSONResult returned error: %v", err)
	}

	var decoded service.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded != res {
		t.Errorf("decoded = %+v, want %+v", decoded, res)
	}
}

func TestWriteResultToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report", "result.txt")
	res := service.Result{Miles: 10, Km: 16.2, Strategy: "walk"}

	if err := WriteResultToFile(res, OutputConfig{OutputFile: path}); err != nil {
		t.Fatalf("WriteResultToFile returned error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	for _, want := range []string{"# Strategy: walk", "10.00 miles = 16.20 km"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("report %q should contain %q", content, want)
		}
	}
}

func TestConvertBatch_SkipsInvalidValues(t *testing.T) {
	var out, errOut bytes.Buffer
	strat, err := convert.NewDefaultFactory().Get("linear")
	if err != nil {
		t.Fatalf("Get(linear): %v", err)
	}

	code := ConvertBatch(context.Background(), strat,
		[]string{"1", "abc", "-2", "10"}, &out, &errOut, OutputConfig{})

	if code != 0 {
		t.Errorf("exit code = %d, want 0 (invalid values are skipped, not fatal)", code)
	}

	stdout := out.String()
	if !strings.Contains(stdout, "1.00 miles = 1.61 km") {
		t.Errorf("stdout %q should contain the first conversion", stdout)
	}
	if !strings.Contains(stdout, "10.00 miles = 16.09 km") {
		t.Errorf("stdout %q should contain the last conversion", stdout)
	}

	stderr := errOut.String()
	if !strings.Contains(stderr, "Invalid distance value 'abc'") {
		t.Errorf("stderr %q should report the unparseable value", stderr)
	}
	if !strings.Contains(stderr, "Invalid distance value '-2'") {
		t.Errorf("stderr %q should report the negative value", stderr)
	}
}

func TestConvertBatch_CallsStrategyOncePerValidValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	strat := mocks.NewMockStrategy(ctrl)
	strat.EXPECT().Convert(gomock.Any(), 1.0).Return(float32(1.609344))
	strat.EXPECT().Convert(gomock.Any(), 10.0).Return(float32(16.09344))

	var out, errOut bytes.Buffer
	ConvertBatch(context.Background(), strat,
		[]string{"1", "bogus", "10"}, &out, &errOut, OutputConfig{Quiet: true})

	if got := strings.Count(out.String(), "\n"); got != 2 {
		t.Errorf("quiet batch printed %d lines, want 2", got)
	}
}
