package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	err := NewNotFoundError("Submission", "sub_1_abc")
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFoundError(errors.New("boom")))
	assert.False(t, IsNotFoundError(nil))
	assert.Equal(t, "Submission with ID 'sub_1_abc' not found", err.Error())
}

func TestClientInfoJSON_ValueScan(t *testing.T) {
	in := ClientInfoJSON{Device: "Phone", OS: "iOS 17.1", Browser: "Safari 17.1", IP: "10.0.0.1"}
	v, err := in.Value()
	require.NoError(t, err)

	var out ClientInfoJSON
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Equal(t, ClientInfoJSON{}, out)

	assert.Error(t, out.Scan(42))
}
