package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-5, "0 bytes"},
		{0, "0 bytes"},
		{1, "1 bytes"},
		{512, "512 bytes"},
		{1023, "1023 bytes"},
		{1024, "1 kB"},
		{1126, "1.1 kB"},
		{1500, "1.46 kB"},
		{1536, "1.5 kB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{1073741824, "1 GB"},
		{1 << 40, "1 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t,
		"Exceeded maximum budget for foo.js. Budget 1 kB was exceeded by 512 bytes with a total of 1.5 kB.",
		maximumMessage("foo.js", 1024, 1536))
	assert.Equal(t,
		"Failed to meet minimum budget for bar.js. Budget 1 kB was not met by 512 bytes with a total of 512 bytes.",
		minimumMessage("bar.js", 1024, 512))
}
