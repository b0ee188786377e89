package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/jsonx"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const fixedStamp = "2024-03-01T12:00:00.000Z"

func decode(t *testing.T, raw string) any {
	t.Helper()
	v, err := jsonx.Decode([]byte(raw))
	require.NoError(t, err)
	return v
}

func positional() *Validator {
	return NewValidator(ids.Positional())
}

func testFactory() *Factory {
	return NewFactory(WithIDs(ids.Positional()), WithClock(func() time.Time { return fixedTime }))
}
