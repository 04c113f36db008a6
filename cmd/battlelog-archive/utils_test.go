package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookiesFile(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cookies.txt")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0600)
	require.NoError(t, err)
	return path
}

func TestParseCookiesFile(t *testing.T) {
	path := writeCookiesFile(t, []string{
		"# Netscape HTTP Cookie File",
		"",
		strings.Join([]string{".battlefield.com", "TRUE", "/", "TRUE", "1999999999", "beaker.session.id", "abc123"}, "\t"),
		strings.Join([]string{"#HttpOnly_.battlefield.com", "TRUE", "/", "TRUE", "1999999999", "sessionId", "secret"}, "\t"),
		strings.Join([]string{"battlelog.battlefield.com", "FALSE", "/", "TRUE", "1999999999", "gateway", "xyz"}, "\t"),
		strings.Join([]string{"othersite.com", "FALSE", "/", "FALSE", "0", "foo", "bar"}, "\t"),
		"malformed line without tabs",
	})

	cookiesMap, err := parseCookiesFile(path)
	require.NoError(t, err)

	require.Len(t, cookiesMap[".battlefield.com"], 2)
	require.Len(t, cookiesMap["battlelog.battlefield.com"], 1)
	require.Len(t, cookiesMap["othersite.com"], 1)

	session := cookiesMap[".battlefield.com"][0]
	assert.Equal(t, "beaker.session.id", session.Name)
	assert.Equal(t, "abc123", session.Value)
	assert.True(t, session.Secure)
	assert.False(t, session.HttpOnly)

	httpOnly := cookiesMap[".battlefield.com"][1]
	assert.Equal(t, "sessionId", httpOnly.Name)
	assert.True(t, httpOnly.HttpOnly)
}

func TestParseCookiesFile_Missing(t *testing.T) {
	_, err := parseCookiesFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestCookiesForHost(t *testing.T) {
	path := writeCookiesFile(t, []string{
		strings.Join([]string{".battlefield.com", "TRUE", "/", "TRUE", "1999999999", "beaker.session.id", "abc123"}, "\t"),
		strings.Join([]string{"battlelog.battlefield.com", "FALSE", "/", "TRUE", "1999999999", "gateway", "xyz"}, "\t"),
		strings.Join([]string{"othersite.com", "FALSE", "/", "FALSE", "0", "foo", "bar"}, "\t"),
	})

	cookiesMap, err := parseCookiesFile(path)
	require.NoError(t, err)

	cookies := cookiesForHost(cookiesMap, "battlelog.battlefield.com")
	require.Len(t, cookies, 2)

	names := []string{cookies[0].Name, cookies[1].Name}
	assert.Contains(t, names, "beaker.session.id")
	assert.Contains(t, names, "gateway")

	assert.Empty(t, cookiesForHost(cookiesMap, "example.org"))
}
