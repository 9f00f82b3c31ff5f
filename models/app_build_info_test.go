package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	tests := []struct {
		name                  string
		version, date, commit string
		want                  string
	}{
		{
			name:    "all set",
			version: "v1.0.0", date: "2026-01-02", commit: "abc123",
			want: "Build version: v1.0.0\nBuild date: 2026-01-02\nBuild commit: abc123\n",
		},
		{
			name: "nothing injected",
			want: "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n",
		},
		{
			name:    "partial",
			version: "v1.0.0",
			want:    "Build version: v1.0.0\nBuild date: N/A\nBuild commit: N/A\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewAppBuildInfo(tt.version, tt.date, tt.commit)
			assert.Equal(t, tt.want, info.String())
		})
	}
}

func TestAppBuildInfo_ZeroValue(t *testing.T) {
	var info AppBuildInfo
	assert.Empty(t, info.BuildVersion())
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", info.String())
}

func TestAppBuildInfo_Accessors(t *testing.T) {
	info := NewAppBuildInfo("v2", "today", "")
	assert.Equal(t, "v2", info.BuildVersion())
	assert.Equal(t, "today", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
}
