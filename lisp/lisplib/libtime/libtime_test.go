package libtime_test

import (
	"testing"
	"time"

	"github.com/bmatsuo/gomal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeMS(t *testing.T) {
	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)

	before := time.Now().UnixNano() / int64(time.Millisecond)
	v := env.LoadString("test", "(time-ms)")
	after := time.Now().UnixNano() / int64(time.Millisecond)
	require.Equal(t, "int", v.Type.String())
	assert.True(t, int64(v.Int) >= before && int64(v.Int) <= after)
}

func TestRFC3339(t *testing.T) {
	tests := maltest.TestSuite{
		{"format and parse", maltest.TestSequence{
			{"(format-rfc3339 0)", `"1970-01-01T00:00:00Z"`},
			{"(format-rfc3339 1500)", `"1970-01-01T00:00:01.5Z"`},
			{`(parse-rfc3339 "1970-01-01T00:00:02Z")`, "2000"},
			{`(parse-rfc3339 (format-rfc3339 123456))`, "123456"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}
