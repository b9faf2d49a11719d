package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsNaiveAndZoned(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-05-01T10:00:00"`:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		`"2024-05-01T10:00:00.123456"`: time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC),
		`"2024-05-01T18:00:00+08:00"`:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		`"2024-05-01 10:00:00"`:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		`"2024-05-01T10:00:00.5Z"`:     time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC),
	}
	for in, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), in)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestUserSnapshotRoundTrip(t *testing.T) {
	raw := `{"username":"alice","is_admin":true,"devices":[{"name":"web","browser":"UA","last_login":"2024-05-01T10:00:00"}],"progress":[{"question_slug":"q1","score":1,"completed_at":"2024-05-02T09:30:00.25"}]}`
	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var again User
	require.NoError(t, json.Unmarshal(data, &again))
	assert.True(t, u.Devices[0].LastLogin.Equal(again.Devices[0].LastLogin.Time))
	assert.Equal(t, u.Progress[0].QuestionSlug, again.Progress[0].QuestionSlug)
	assert.Equal(t, "管理员", again.RoleLabel())
}
