package scene

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		wantErr bool
	}{
		{
			name:    "simple topic",
			topic:   "zigbee2mqtt/light-living/set",
			wantErr: false,
		},
		{
			name:    "single level",
			topic:   "light",
			wantErr: false,
		},
		{
			name:    "empty topic",
			topic:   "",
			wantErr: true,
		},
		{
			name:    "plus wildcard",
			topic:   "zigbee2mqtt/+/set",
			wantErr: true,
		},
		{
			name:    "hash wildcard",
			topic:   "zigbee2mqtt/#",
			wantErr: true,
		},
		{
			name:    "dollar prefix",
			topic:   "$SYS/broker/load",
			wantErr: true,
		},
		{
			name:    "contains space",
			topic:   "a/b c",
			wantErr: true,
		},
		{
			name:    "contains tab",
			topic:   "a/b\tc",
			wantErr: true,
		},
		{
			name:    "contains newline",
			topic:   "a/b\nc",
			wantErr: true,
		},
		{
			name:    "contains control character",
			topic:   "a/b\x01c",
			wantErr: true,
		},
		{
			name:    "contains 0x19",
			topic:   "a/b\x19c",
			wantErr: true,
		},
		{
			name:    "non-breaking space",
			topic:   "a/b c",
			wantErr: true,
		},
		{
			name:    "at maximum length",
			topic:   strings.Repeat("a", 128),
			wantErr: false,
		},
		{
			name:    "over maximum length",
			topic:   strings.Repeat("a", 129),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopic(tt.topic)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTopic(%q) error = %v, wantErr %v", tt.topic, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTopic) {
				t.Errorf("ValidateTopic(%q) error = %v, want ErrInvalidTopic", tt.topic, err)
			}
		})
	}
}
