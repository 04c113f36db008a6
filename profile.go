package battlelog

import (
	"encoding/json"
	"fmt"
)

// SoldierIdentity is the set of Battlelog IDs needed to address a
// soldier's stat endpoints. ClubID is empty when the soldier has no
// active club.
type SoldierIdentity struct {
	PersonaID string
	UserID    string
	ClubID    string
}

type profilePayload struct {
	Context struct {
		ActivityStream []struct {
			Persona struct {
				PersonaID string `json:"personaId"`
				UserID    string `json:"userId"`
			} `json:"persona"`
		} `json:"activitystream"`
		ProfileCommon struct {
			Club struct {
				ID string `json:"id"`
			} `json:"club"`
		} `json:"profileCommon"`
	} `json:"context"`
}

// parseIdentity extracts persona, user and club IDs from the profile
// overview payload.
func parseIdentity(body []byte) (SoldierIdentity, error) {
	var payload profilePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return SoldierIdentity{}, fmt.Errorf("decode profile: %w", err)
	}

	stream := payload.Context.ActivityStream
	if len(stream) == 0 || stream[0].Persona.PersonaID == "" {
		return SoldierIdentity{}, fmt.Errorf("profile has no persona data")
	}

	return SoldierIdentity{
		PersonaID: stream[0].Persona.PersonaID,
		UserID:    stream[0].Persona.UserID,
		ClubID:    payload.Context.ProfileCommon.Club.ID,
	}, nil
}
