package battlelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	body := []byte(`{
		"context": {
			"activitystream": [
				{"persona": {"personaId": "177063446", "userId": "2832654694"}}
			],
			"profileCommon": {
				"club": {"id": "2951484812983462601", "name": "Some Club"}
			}
		}
	}`)

	identity, err := parseIdentity(body)
	require.NoError(t, err)
	assert.Equal(t, "177063446", identity.PersonaID)
	assert.Equal(t, "2832654694", identity.UserID)
	assert.Equal(t, "2951484812983462601", identity.ClubID)
}

func TestParseIdentity_NoClub(t *testing.T) {
	body := []byte(`{
		"context": {
			"activitystream": [
				{"persona": {"personaId": "177063446", "userId": "2832654694"}}
			],
			"profileCommon": {"club": null}
		}
	}`)

	identity, err := parseIdentity(body)
	require.NoError(t, err)
	assert.Equal(t, "177063446", identity.PersonaID)
	assert.Equal(t, "", identity.ClubID)
}

func TestParseIdentity_NoPersona(t *testing.T) {
	_, err := parseIdentity([]byte(`{"context": {"activitystream": []}}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no persona data")
}

func TestParseIdentity_InvalidJSON(t *testing.T) {
	_, err := parseIdentity([]byte(`<html>not json</html>`))
	assert.Error(t, err)
}
