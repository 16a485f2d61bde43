package docker

import (
	"reflect"
	"testing"

	"github.com/moby/moby/api/types/container"
)

func TestContainerName(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected string
	}{
		{"simple name", []string{"/web"}, "web"},
		{"no leading slash", []string{"web"}, "web"},
		{"multiple names uses first", []string{"/web", "/web-alias"}, "web"},
		{"empty list", []string{}, "unnamed"},
		{"nil list", nil, "unnamed"},
		{"bare slash", []string{"/"}, "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := containerName(tt.names)
			if result != tt.expected {
				t.Errorf("containerName(%v) = %q, want %q", tt.names, result, tt.expected)
			}
		})
	}
}

func TestFormatPorts(t *testing.T) {
	tests := []struct {
		name     string
		ports    []container.PortSummary
		expected []string
	}{
		{
			name:     "no ports",
			ports:    nil,
			expected: nil,
		},
		{
			name: "published port",
			ports: []container.PortSummary{
				{PublicPort: 8080, PrivatePort: 80},
			},
			expected: []string{"8080:80"},
		},
		{
			name: "exposed only",
			ports: []container.PortSummary{
				{PublicPort: 0, PrivatePort: 6379},
			},
			expected: []string{"6379"},
		},
		{
			name: "mixed",
			ports: []container.PortSummary{
				{PublicPort: 8080, PrivatePort: 80},
				{PublicPort: 0, PrivatePort: 9090},
			},
			expected: []string{"8080:80", "9090"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPorts(tt.ports)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("formatPorts() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestShortenID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"full id", "0123456789abcdef0123456789abcdef", "0123456789ab"},
		{"exactly 12", "0123456789ab", "0123456789ab"},
		{"shorter than 12", "abc", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shortenID(tt.id)
			if result != tt.expected {
				t.Errorf("shortenID(%q) = %q, want %q", tt.id, result, tt.expected)
			}
		})
	}
}
