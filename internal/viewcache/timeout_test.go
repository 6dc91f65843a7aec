package viewcache

import (
	"errors"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	vambrace "github.com/vambrace/vambrace/internal"
)

func TestTimeoutSpec_Seconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec string
		want int
	}{
		{"0", 0},
		{"600", 600},
		{"86400", 86400},
		{"1m", 60},
		{"5m", 300},
		{"90m", 5400},
		{"1h", 3600},
		{"2h", 7200},
		{"1d", 86400},
		{"7d", 604800},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			got, err := TimeoutSpec(tt.spec).Seconds()
			if err != nil {
				t.Fatalf("Seconds(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Seconds(%q) = %d, want %d", tt.spec, got, tt.want)
			}
		})
	}
}

func TestTimeoutSpec_Malformed(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"", "5x", "abc", "m5", "5 m", "5m2", "1w", "d", "5mm", "-5m"} {
		t.Run(spec, func(t *testing.T) {
			t.Parallel()
			_, err := TimeoutSpec(spec).Seconds()
			if !errors.Is(err, vambrace.ErrMalformedTimeout) {
				t.Errorf("Seconds(%q) error = %v, want ErrMalformedTimeout", spec, err)
			}
		})
	}
}

func TestTimeoutSpec_TTL(t *testing.T) {
	t.Parallel()

	ttl, err := TimeoutSpec("5m").TTL()
	if err != nil {
		t.Fatal(err)
	}
	if ttl != 5*time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, 5*time.Minute)
	}
}

func TestTimeoutSpec_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var cfg struct {
		Timeout TimeoutSpec `yaml:"timeout"`
	}

	if err := yaml.Unmarshal([]byte("timeout: 600"), &cfg); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Timeout.Seconds(); got != 600 {
		t.Errorf("integer scalar = %d, want 600", got)
	}

	if err := yaml.Unmarshal([]byte(`timeout: "2h"`), &cfg); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Timeout.Seconds(); got != 7200 {
		t.Errorf("string scalar = %d, want 7200", got)
	}
}

func TestDefaultTimeout(t *testing.T) {
	t.Parallel()

	got, err := DefaultTimeout.Seconds()
	if err != nil {
		t.Fatal(err)
	}
	if got != 600 {
		t.Errorf("default = %d, want 600", got)
	}
}
