package redact_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gxo-labs/logzen/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracker() *redact.SecretTracker {
	tracker := redact.NewSecretTracker()
	tracker.Add("s3cr3t_p@ssw0rd")
	tracker.Add("another-key-456")
	return tracker
}

func TestValue_SimpleString(t *testing.T) {
	tracker := setupTracker()

	out, was := redact.Value("s3cr3t_p@ssw0rd", tracker)
	assert.True(t, was)
	assert.Equal(t, redact.Placeholder, out)

	out, was = redact.Value("The API key is another-key-456 and should not be logged.", tracker)
	assert.True(t, was)
	assert.Equal(t, redact.Placeholder, out)

	out, was = redact.Value("This is a perfectly safe string.", tracker)
	assert.False(t, was)
	assert.Equal(t, "This is a perfectly safe string.", out)
}

func TestValue_NilInputs(t *testing.T) {
	out, was := redact.Value(nil, setupTracker())
	assert.False(t, was)
	assert.Nil(t, out)

	out, was = redact.Value("some data", nil)
	assert.False(t, was)
	assert.Equal(t, "some data", out)
}

func TestValue_NestedStructures(t *testing.T) {
	tracker := setupTracker()
	input := map[string]interface{}{
		"user": "justin",
		"port": 8080,
		"list": []interface{}{"safe", "another-key-456", 3},
		"nested": map[string]interface{}{
			"dsn": "user=admin;password=s3cr3t_p@ssw0rd;",
		},
	}

	out, was := redact.Value(input, tracker)
	require.True(t, was)
	m := out.(map[string]interface{})
	assert.Equal(t, "justin", m["user"])
	assert.Equal(t, 8080, m["port"])
	assert.Equal(t, []interface{}{"safe", redact.Placeholder, 3}, m["list"])
	assert.Equal(t, redact.Placeholder, m["nested"].(map[string]interface{})["dsn"])

	// The original is untouched.
	assert.Equal(t, "another-key-456", input["list"].([]interface{})[1])
}

func TestKeywords(t *testing.T) {
	kw := redact.NewKeywords([]string{" Password ", "TOKEN", ""})
	assert.Len(t, kw, 2)
	assert.True(t, kw.Matches("password"))
	assert.True(t, kw.Matches("Token"))
	assert.False(t, kw.Matches("email"))
	assert.False(t, redact.NewKeywords(nil).Matches("password"))
}

func TestKeywords_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer
	kw := redact.NewKeywords(redact.DefaultKeywords)
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{ReplaceAttr: kw.ReplaceAttr})
	slog.New(handler).Info("signed in", "email", "justinw@me.com", "password", "1ns3cure",
		slog.Group("req", slog.String("authorization", "Bearer abc")))

	out := buf.String()
	assert.Contains(t, out, "email=justinw@me.com")
	assert.Contains(t, out, "password="+redact.Placeholder)
	assert.Contains(t, out, "req.authorization="+redact.Placeholder)
	assert.NotContains(t, out, "1ns3cure")
	assert.NotContains(t, out, "abc")
}

func TestKeywords_RedactString(t *testing.T) {
	kw := redact.NewKeywords([]string{"password", "token"})

	assert.Equal(t, "user=justin password=[REDACTED]", kw.RedactString("user=justin password=1ns3cure"))
	assert.Equal(t, "Token: [REDACTED]\nsafe line", kw.RedactString("Token: abc password=x\nsafe line"))
	assert.Equal(t, "password:", kw.RedactString("password:"))
	assert.Equal(t, "nothing here", kw.RedactString("nothing here"))
	assert.Equal(t, "password=x", redact.NewKeywords(nil).RedactString("password=x"))
}

func TestKeywords_RedactStringNeedsSeparator(t *testing.T) {
	kw := redact.NewKeywords([]string{"token"})

	assert.Equal(t, "tokenizer started", kw.RedactString("tokenizer started"))
	assert.Equal(t, "tokenizer ready, token=[REDACTED]", kw.RedactString("tokenizer ready, token=abc123"))
	assert.Equal(t, "refresh token [REDACTED]", kw.RedactString("refresh token abc123"))
	assert.Equal(t, "tokens", kw.RedactString("tokens"))
}
