package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", ":8080", "-x", "noise"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":8080"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-d=dsn", "-z=skip"},
			allowed: []string{"-config", "-d"},
			want:    []string{"-d=dsn"},
		},
		{
			name:    "double dash equals form",
			args:    []string{"--config=conf.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-a", ":8080"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", ":8080"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", ":8080"},
			allowed: []string{},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"server", "-config", "other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"server", "-a", ":8080"}
	assert.Equal(t, "", JsonConfigFlags())
}
