package channel_test

import (
	"testing"

	"go-salescrm/internal/channel"

	"github.com/stretchr/testify/assert"
)

func TestChannel_FeeRate(t *testing.T) {
	cases := []struct {
		name   string
		points float64
		want   string
	}{
		{"whole percentage", 5, "0.05"},
		{"fraction", 0.05, "0.05"},
		{"zero", 0, "0"},
		{"exactly one is a fraction", 1, "1"},
		{"large percentage", 12.5, "0.125"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := channel.Channel{Points: tc.points}
			assert.Equal(t, tc.want, c.FeeRate().String())
		})
	}
}
